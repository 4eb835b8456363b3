package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces"
	"github.com/ochairo/playport/internal/domain/interfaces/gateways"
)

// DefaultJavaPath is the runtime used when none is configured
const DefaultJavaPath = "java"

// InstallerRunner runs a vendor installer package and finds the server executable it produced
type InstallerRunner struct {
	runner     gateways.CommandRunner
	discoverer gateways.OutputDiscoverer
	javaPath   string
	logger     interfaces.Logger
}

// NewInstallerRunner creates a new installer runner
func NewInstallerRunner(runner gateways.CommandRunner, discoverer gateways.OutputDiscoverer, javaPath string, logger interfaces.Logger) *InstallerRunner {
	if javaPath == "" {
		javaPath = DefaultJavaPath
	}
	return &InstallerRunner{
		runner:     runner,
		discoverer: discoverer,
		javaPath:   javaPath,
		logger:     interfaces.OrNoOp(logger),
	}
}

// RunInstaller runs installerPath inside targetDir and waits for it without a time
// limit, then discovers the executable according to the provider's output mode.
func (r *InstallerRunner) RunInstaller(ctx context.Context, p *entities.Provider, installerPath, targetDir, version, gameVersion string) (*entities.InstallationResult, error) {
	if p.Installer == nil {
		return nil, entities.NewError(entities.KindInstallerExecution, "run installer", fmt.Errorf("provider %s has no installer", p.ID))
	}
	if _, err := os.Stat(installerPath); err != nil {
		return nil, entities.NewError(entities.KindInstallerExecution, "run installer", fmt.Errorf("installer not found: %w", err))
	}
	if p.Installer.RequiresGameVersion && gameVersion == "" {
		return nil, entities.NewError(entities.KindInstallerExecution, "run installer",
			fmt.Errorf("%s needs a game version to install against", p.Name))
	}

	args, err := r.InstallerArgs(p, installerPath, targetDir, version, gameVersion)
	if err != nil {
		return nil, err
	}

	r.logger.Info("running installer",
		interfaces.F("provider", p.ID),
		interfaces.F("installer", filepath.Base(installerPath)))

	start := time.Now()
	if err := r.runner.Run(ctx, targetDir, r.javaPath, args...); err != nil {
		return nil, entities.NewError(entities.KindInstallerExecution, "run installer", err)
	}
	r.logger.Info("installer finished",
		interfaces.F("provider", p.ID),
		interfaces.F("duration", time.Since(start).Round(time.Millisecond)))

	return r.discoverer.Discover(p, targetDir, installerPath)
}

// InstallerArgs expands the provider's installer argument template
func (r *InstallerRunner) InstallerArgs(p *entities.Provider, installerPath, targetDir, version, gameVersion string) ([]string, error) {
	absInstaller, err := filepath.Abs(installerPath)
	if err != nil {
		return nil, entities.NewError(entities.KindInstallerExecution, "run installer", err)
	}
	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return nil, entities.NewError(entities.KindInstallerExecution, "run installer", err)
	}

	vars := map[string]string{
		"installer":    absInstaller,
		"version":      version,
		"game_version": gameVersion,
		"target_dir":   absTarget,
	}

	args := make([]string, 0, len(p.Installer.Args))
	for _, a := range p.Installer.Args {
		args = append(args, ExpandTemplate(a, vars))
	}
	return args, nil
}
