package gateways

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
)

// FixedNameDiscoverer reports the executable at a name the installer is known to write.
// It does not look at the directory.
type FixedNameDiscoverer struct{}

// NewFixedNameDiscoverer creates a new fixed-name discoverer
func NewFixedNameDiscoverer() *FixedNameDiscoverer {
	return &FixedNameDiscoverer{}
}

// Discover joins the configured name onto targetDir
func (d *FixedNameDiscoverer) Discover(p *entities.Provider, targetDir, _ string) (*entities.InstallationResult, error) {
	if p.Installer == nil || p.Installer.Output.Name == "" {
		return nil, entities.NewError(entities.KindOutputDiscovery, "discover output", fmt.Errorf("no output name configured"))
	}
	return &entities.InstallationResult{
		ExecutablePath: filepath.Join(targetDir, p.Installer.Output.Name),
	}, nil
}

// LargestJarDiscoverer picks the largest top-level .jar of the installed family,
// skipping anything named like an installer
type LargestJarDiscoverer struct{}

// NewLargestJarDiscoverer creates a new largest-jar discoverer
func NewLargestJarDiscoverer() *LargestJarDiscoverer {
	return &LargestJarDiscoverer{}
}

// Discover scans targetDir (not recursively) and returns the best candidate
func (d *LargestJarDiscoverer) Discover(p *entities.Provider, targetDir, _ string) (*entities.InstallationResult, error) {
	prefix := ""
	if p.Installer != nil {
		prefix = p.Installer.Output.Prefix
	}

	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return nil, entities.NewError(entities.KindOutputDiscovery, "scan install directory", err)
	}

	var best string
	var bestSize int64 = -1
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasSuffix(name, ".jar") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.Contains(strings.ToLower(name), "installer") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		// ReadDir is sorted by name, so ties keep the first name
		if info.Size() > bestSize {
			best = name
			bestSize = info.Size()
		}
	}

	if best == "" {
		return nil, entities.NewError(entities.KindOutputDiscovery, "scan install directory",
			fmt.Errorf("no %s*.jar written to %s", prefix, targetDir))
	}

	return &entities.InstallationResult{ExecutablePath: filepath.Join(targetDir, best)}, nil
}

// ReuseDownloadDiscoverer reports the downloaded artifact itself; the installer only
// wrote libraries and launch argument files next to it
type ReuseDownloadDiscoverer struct{}

// NewReuseDownloadDiscoverer creates a new reuse-download discoverer
func NewReuseDownloadDiscoverer() *ReuseDownloadDiscoverer {
	return &ReuseDownloadDiscoverer{}
}

// Discover returns downloadedPath
func (d *ReuseDownloadDiscoverer) Discover(_ *entities.Provider, _, downloadedPath string) (*entities.InstallationResult, error) {
	if downloadedPath == "" {
		return nil, entities.NewError(entities.KindOutputDiscovery, "discover output", fmt.Errorf("no downloaded artifact to reuse"))
	}
	return &entities.InstallationResult{ExecutablePath: downloadedPath, ReusedDownload: true}, nil
}
