package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ochairo/playport/internal/domain/entities"
)

const (
	// DefaultMetadataTimeout bounds every listing and lookup call
	DefaultMetadataTimeout = 10 * time.Second
	// DefaultUserAgent is sent with every upstream request
	DefaultUserAgent = "playport/1.0"

	// maxMetadataBytes limits metadata documents (Forge's maven-metadata.xml is the largest, well below this)
	maxMetadataBytes = 32 << 20
)

// MetadataClientOptions configures a MetadataClient
type MetadataClientOptions struct {
	Timeout     time.Duration
	UserAgent   string
	GitHubToken string
	HTTPClient  *http.Client // overrides Timeout when set
}

// MetadataClient performs single best-effort GET requests against upstream
// metadata endpoints. It never retries.
type MetadataClient struct {
	httpClient  *http.Client
	userAgent   string
	githubToken string
}

// NewMetadataClient creates a new metadata client
func NewMetadataClient(opts MetadataClientOptions) *MetadataClient {
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultMetadataTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &MetadataClient{
		httpClient:  client,
		userAgent:   userAgent,
		githubToken: opts.GitHubToken,
	}
}

// GetBytes fetches rawURL and returns the body.
// A 404 is reported as NotFound, any other non-2xx or transport failure as Network.
func (c *MetadataClient) GetBytes(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, entities.NewError(entities.KindNetwork, "build request for "+rawURL, err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	if isGitHubAPI(rawURL) {
		req.Header.Set("Accept", "application/vnd.github+json")
		if c.githubToken != "" {
			req.Header.Set("Authorization", "Bearer "+c.githubToken)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, entities.NewError(entities.KindNetwork, "fetch "+rawURL, err)
	}
	//nolint:errcheck // Defer close
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, entities.NewError(entities.KindNotFound, "fetch "+rawURL, fmt.Errorf("HTTP %d", resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, entities.NewError(entities.KindNetwork, "fetch "+rawURL, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataBytes))
	if err != nil {
		return nil, entities.NewError(entities.KindNetwork, "read response from "+rawURL, err)
	}

	return body, nil
}

// GetJSON fetches rawURL and decodes it into v. Numbers decode as json.Number
// when v is an interface value.
func (c *MetadataClient) GetJSON(ctx context.Context, rawURL string, v interface{}) error {
	body, err := c.GetBytes(ctx, rawURL)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return entities.NewError(entities.KindParse, "decode JSON from "+rawURL, err)
	}
	return nil
}

// GetXML fetches rawURL and decodes it into v
func (c *MetadataClient) GetXML(ctx context.Context, rawURL string, v interface{}) error {
	body, err := c.GetBytes(ctx, rawURL)
	if err != nil {
		return err
	}

	if err := xml.Unmarshal(body, v); err != nil {
		return entities.NewError(entities.KindParse, "decode XML from "+rawURL, err)
	}
	return nil
}

func isGitHubAPI(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Host == "api.github.com"
}
