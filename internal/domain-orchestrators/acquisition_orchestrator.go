// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces"
	"github.com/ochairo/playport/internal/domain/interfaces/gateways"
	"github.com/ochairo/playport/internal/domain/interfaces/repositories"
)

// VersionCatalog interface for listing a provider's versions
type VersionCatalog interface {
	ListVersions(ctx context.Context, p *entities.Provider) entities.VersionList
}

// Downloader interface for fetching an artifact into a directory
type Downloader interface {
	Download(ctx context.Context, loc *entities.ArtifactLocation, destDir string) (*entities.AcquiredArtifact, error)
}

// InstallerRunner interface for running a vendor installer
type InstallerRunner interface {
	RunInstaller(ctx context.Context, p *entities.Provider, installerPath, targetDir, version, gameVersion string) (*entities.InstallationResult, error)
}

// ErrMissingTargetDir is returned when a request names no target directory
var ErrMissingTargetDir = errors.New("target directory is required")

// AcquisitionOrchestrator sequences resolve, download, verify and install for one
// (software, version) pair. Every stage failure ends the acquisition.
type AcquisitionOrchestrator struct {
	providers  repositories.ProviderRepository
	catalog    VersionCatalog
	resolver   gateways.ArtifactResolver
	downloader Downloader
	integrity  *IntegrityOrchestrator
	installer  InstallerRunner
	logger     interfaces.Logger
}

// NewAcquisitionOrchestrator creates a new acquisition orchestrator.
// integrity may be nil, which skips verification.
func NewAcquisitionOrchestrator(
	providers repositories.ProviderRepository,
	catalog VersionCatalog,
	resolver gateways.ArtifactResolver,
	downloader Downloader,
	integrity *IntegrityOrchestrator,
	installer InstallerRunner,
	logger interfaces.Logger,
) *AcquisitionOrchestrator {
	return &AcquisitionOrchestrator{
		providers:  providers,
		catalog:    catalog,
		resolver:   resolver,
		downloader: downloader,
		integrity:  integrity,
		installer:  installer,
		logger:     interfaces.OrNoOp(logger),
	}
}

// ListProviders returns every supported provider in catalog order
func (o *AcquisitionOrchestrator) ListProviders(ctx context.Context) ([]*entities.Provider, error) {
	return o.providers.ListProviders(ctx)
}

// ListVersions returns the newest-first versions of software.
// Upstream failures degrade to the fallback list; only an unknown software is an error.
func (o *AcquisitionOrchestrator) ListVersions(ctx context.Context, software string) (entities.VersionList, error) {
	p, err := o.providers.GetProvider(ctx, software)
	if err != nil {
		return entities.VersionList{}, err
	}
	return o.catalog.ListVersions(ctx, p), nil
}

// Resolve returns the download location of one version without fetching it
func (o *AcquisitionOrchestrator) Resolve(ctx context.Context, software, version string) (*entities.ArtifactLocation, error) {
	p, err := o.providers.GetProvider(ctx, software)
	if err != nil {
		return nil, err
	}
	return o.resolver.Resolve(ctx, p, &entities.AcquisitionRequest{ProviderID: p.ID, Version: version})
}

// Validate looks up the request's provider and checks the inputs it needs without
// touching the network or the target directory. ProviderID and Version are
// normalized in place.
func (o *AcquisitionOrchestrator) Validate(ctx context.Context, req *entities.AcquisitionRequest) (*entities.Provider, error) {
	p, err := o.providers.GetProvider(ctx, string(req.ProviderID))
	if err != nil {
		return nil, err
	}
	req.ProviderID = p.ID
	req.Version = strings.TrimSpace(req.Version)

	// Installers needing a game version fail before anything is fetched
	if p.RequiresGameVersion() && strings.TrimSpace(req.GameVersion) == "" {
		return nil, entities.WithContext(entities.NewError(entities.KindInstallerExecution, "validate request",
			fmt.Errorf("%s needs a game version to install against", p.Name)), p.ID, req.Version)
	}
	return p, nil
}

// Acquire runs the whole pipeline and returns the executable to launch.
// req.ProviderID may be a provider ID or display name; it is normalized in place.
func (o *AcquisitionOrchestrator) Acquire(ctx context.Context, req *entities.AcquisitionRequest) (*entities.AcquisitionResult, error) {
	startTime := time.Now()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if strings.TrimSpace(req.TargetDir) == "" {
		return nil, ErrMissingTargetDir
	}

	// Step 1: Load provider and validate the request
	p, err := o.Validate(ctx, req)
	if err != nil {
		return nil, err
	}

	log := o.logger.With(
		interfaces.F("request", req.ID),
		interfaces.F("provider", p.ID),
		interfaces.F("version", req.Version))

	result := &entities.AcquisitionResult{
		RequestID: req.ID,
		Provider:  p,
		Version:   req.Version,
	}

	// Step 2: Resolve download location
	resolveStart := time.Now()
	loc, err := o.resolver.Resolve(ctx, p, req)
	if err != nil {
		log.Error("resolve failed", interfaces.F("error", err))
		return nil, entities.WithContext(err, p.ID, req.Version)
	}
	result.Location = loc
	result.ResolveDuration = time.Since(resolveStart)
	log.Info("resolved artifact", interfaces.F("url", loc.DownloadURL))

	// Step 3: Download
	downloadStart := time.Now()
	artifact, err := o.downloader.Download(ctx, loc, req.TargetDir)
	if err != nil {
		log.Error("download failed", interfaces.F("error", err))
		return nil, entities.WithContext(err, p.ID, req.Version)
	}
	artifact.Kind = entities.KindDirectExecutable
	if p.IsInstallerBased() {
		artifact.Kind = entities.KindInstallerPackage
	}
	result.Artifact = artifact
	result.DownloadDuration = time.Since(downloadStart)
	log.Info("downloaded artifact",
		interfaces.F("path", artifact.LocalPath),
		interfaces.F("bytes", artifact.Size))

	// Step 4: Integrity checks
	if o.integrity != nil {
		integrity, err := o.integrity.VerifyArtifact(ctx, p, req.Version, loc, artifact)
		if err != nil {
			log.Error("integrity check failed", interfaces.F("error", err))
			return nil, err
		}
		log.Info(o.integrity.GetIntegritySummary(integrity))
	}

	// Step 5: Run installer when the download is not the server itself
	result.ExecutablePath = artifact.LocalPath
	if p.IsInstallerBased() {
		installStart := time.Now()
		installation, err := o.installer.RunInstaller(ctx, p, artifact.LocalPath, req.TargetDir, req.Version, req.GameVersion)
		if err != nil {
			log.Error("installer failed", interfaces.F("error", err))
			return nil, entities.WithContext(err, p.ID, req.Version)
		}
		result.Installation = installation
		result.ExecutablePath = installation.ExecutablePath
		result.InstallDuration = time.Since(installStart)
	}

	// Step 6: Launch details
	result.LaunchKind = p.Launch.Kind
	if result.LaunchKind == "" {
		result.LaunchKind = entities.LaunchJavaArchive
	}
	if p.Launch.JVMArgsFile != "" {
		result.JVMArgsFile = strings.ReplaceAll(p.Launch.JVMArgsFile, "{version}", req.Version)
	}

	result.TotalDuration = time.Since(startTime)
	log.Info("acquisition complete",
		interfaces.F("executable", result.ExecutablePath),
		interfaces.F("duration", result.TotalDuration.Round(time.Millisecond)))

	return result, nil
}

// GetAcquisitionSummary returns a human-readable summary of an acquisition
func GetAcquisitionSummary(r *entities.AcquisitionResult) string {
	summary := fmt.Sprintf(`%s %s
Executable: %s
Launch: %s
Resolve: %v
Download: %v`,
		r.Provider.Name,
		r.Version,
		r.ExecutablePath,
		r.LaunchKind,
		r.ResolveDuration.Round(time.Millisecond),
		r.DownloadDuration.Round(time.Millisecond),
	)

	if r.Installation != nil {
		summary += fmt.Sprintf("\nInstall: %v", r.InstallDuration.Round(time.Millisecond))
	}
	summary += fmt.Sprintf("\nTotal: %v", r.TotalDuration.Round(time.Millisecond))

	return summary
}
