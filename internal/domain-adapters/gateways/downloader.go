package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces"
	"github.com/ochairo/playport/internal/domain/interfaces/gateways"
)

const (
	// DefaultDownloadTimeout is long enough for installer and server jars on slow links
	DefaultDownloadTimeout = 5 * time.Minute

	downloadBufferSize = 32 * 1024
	partialSuffix      = ".part"
)

// DownloaderOptions configures a Downloader
type DownloaderOptions struct {
	Timeout    time.Duration
	UserAgent  string
	HTTPClient *http.Client // overrides Timeout when set
	Progress   gateways.ProgressReporter
	Logger     interfaces.Logger
}

// Downloader streams artifacts to disk
type Downloader struct {
	httpClient *http.Client
	userAgent  string
	progress   gateways.ProgressReporter
	logger     interfaces.Logger
}

// NewDownloader creates a new downloader
func NewDownloader(opts DownloaderOptions) *Downloader {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultDownloadTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Downloader{
		httpClient: client,
		userAgent:  userAgent,
		progress:   opts.Progress,
		logger:     interfaces.OrNoOp(opts.Logger),
	}
}

// Download fetches loc into destDir under loc.FileName, replacing any previous file
// of that name. The body is written to a ".part" file first and renamed on
// success, so a failed transfer never leaves a truncated artifact behind.
func (d *Downloader) Download(ctx context.Context, loc *entities.ArtifactLocation, destDir string) (*entities.AcquiredArtifact, error) {
	name, err := checkFileName(loc.FileName)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return nil, entities.NewError(entities.KindNetwork, "create target directory", err)
	}

	dest := filepath.Join(destDir, name)
	size, sum, err := d.downloadFile(ctx, loc.DownloadURL, dest)
	if err != nil {
		return nil, err
	}

	d.logger.Info("downloaded artifact",
		interfaces.F("file", name),
		interfaces.F("bytes", size),
		interfaces.F("sha256", sum))

	return &entities.AcquiredArtifact{
		LocalPath: dest,
		Size:      size,
		SHA256:    sum,
	}, nil
}

// downloadFile downloads url to dest and returns the byte count and SHA256
func (d *Downloader) downloadFile(ctx context.Context, url, dest string) (int64, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, "", entities.NewError(entities.KindNetwork, "build download request", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	d.logger.Debug("downloading", interfaces.F("url", url))

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, "", entities.NewError(entities.KindNetwork, "download "+url, err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, "", entities.NewError(entities.KindNotFound, "download "+url, fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, "", entities.NewError(entities.KindNetwork, "download "+url, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status))
	}

	part := dest + partialSuffix
	//nolint:gosec // G304: File path dest is built from the target directory and a checked file name
	out, err := os.Create(part)
	if err != nil {
		return 0, "", entities.NewError(entities.KindNetwork, "create "+filepath.Base(part), err)
	}

	hasher := sha256.New()
	writers := []io.Writer{out, hasher}
	if d.progress != nil {
		bar := d.progress.Start(filepath.Base(dest), resp.ContentLength)
		//nolint:errcheck // Defer close on progress display
		defer bar.Close()
		writers = append(writers, bar)
	}

	written, err := io.CopyBuffer(io.MultiWriter(writers...), resp.Body, make([]byte, downloadBufferSize))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(part)
		return 0, "", entities.NewError(entities.KindNetwork, "write "+filepath.Base(dest), err)
	}

	if resp.ContentLength > 0 && written != resp.ContentLength {
		_ = os.Remove(part)
		return 0, "", entities.NewError(entities.KindNetwork, "write "+filepath.Base(dest),
			fmt.Errorf("short body: got %d of %d bytes", written, resp.ContentLength))
	}

	if err := os.Rename(part, dest); err != nil {
		_ = os.Remove(part)
		return 0, "", entities.NewError(entities.KindNetwork, "finalize "+filepath.Base(dest), err)
	}

	return written, hex.EncodeToString(hasher.Sum(nil)), nil
}
