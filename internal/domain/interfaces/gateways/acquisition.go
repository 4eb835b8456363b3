// Package gateways defines interfaces for external service adapters.
package gateways

import (
	"context"
	"io"

	"github.com/ochairo/playport/internal/domain/entities"
)

// VersionLister reads one listing shape into raw version identifiers.
// Normalization (ordering, de-duplication, cap, fallback) happens in the catalog.
type VersionLister interface {
	ListVersions(ctx context.Context, provider *entities.Provider) ([]string, error)
}

// ArtifactResolver turns a (provider, version) pair into a concrete download location
type ArtifactResolver interface {
	Resolve(ctx context.Context, provider *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error)
}

// OutputDiscoverer finds the server executable after an installer has run
type OutputDiscoverer interface {
	Discover(provider *entities.Provider, targetDir, downloadedPath string) (*entities.InstallationResult, error)
}

// CommandRunner runs an external program to completion in a working directory
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// SignatureVerifier checks a detached signature published at sigURL against a local file
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, filePath, sigURL string) error
}

// ProgressReporter creates a sink that receives downloaded bytes for display.
// total is -1 when the upstream did not announce a length.
type ProgressReporter interface {
	Start(description string, total int64) io.WriteCloser
}
