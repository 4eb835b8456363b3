// Package entities defines core domain models and data structures.
package entities

import "time"

// ArtifactKind distinguishes server binaries from installer packages
type ArtifactKind string

// Artifact kinds
const (
	KindDirectExecutable ArtifactKind = "direct-executable"
	KindInstallerPackage ArtifactKind = "installer-package"
)

// Checksum is an expected digest published by the upstream
type Checksum struct {
	Algorithm string // "sha1" or "sha256"
	Value     string // lowercase hex
}

// ArtifactLocation is one concrete downloadable URL for a (provider, version) pair.
// It is computed fresh for every acquisition and never cached.
type ArtifactLocation struct {
	DownloadURL  string
	FileName     string
	Checksum     *Checksum
	SignatureURL string
}

// AcquiredArtifact is a file on disk produced by the downloader
type AcquiredArtifact struct {
	LocalPath string
	Kind      ArtifactKind
	Size      int64
	SHA256    string
}

// InstallationResult is the outcome of running a vendor installer
type InstallationResult struct {
	ExecutablePath string
	// ReusedDownload is set when the installer only wrote support files and the
	// downloaded artifact itself remains the thing to launch.
	ReusedDownload bool
}

// AcquisitionRequest is one (software, version) acquisition into a target directory
type AcquisitionRequest struct {
	ID          string
	ProviderID  ProviderID
	Version     string
	GameVersion string // only required by some installer providers
	TargetDir   string
}

// AcquisitionResult contains the runnable artifact produced by the pipeline
type AcquisitionResult struct {
	RequestID        string
	Provider         *Provider
	Version          string
	Location         *ArtifactLocation
	Artifact         *AcquiredArtifact
	Installation     *InstallationResult
	ExecutablePath   string
	LaunchKind       LaunchKind
	JVMArgsFile      string
	ResolveDuration  time.Duration
	DownloadDuration time.Duration
	InstallDuration  time.Duration
	TotalDuration    time.Duration
}
