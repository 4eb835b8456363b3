package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/ochairo/playport/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/playport/internal/domain-orchestrators"
	"github.com/ochairo/playport/internal/domain/interfaces"
	gatewayifaces "github.com/ochairo/playport/internal/domain/interfaces/gateways"
	"github.com/ochairo/playport/internal/domain/interfaces/repositories"
	"github.com/ochairo/playport/internal/domain/services"
	"github.com/ochairo/playport/internal/external-adapters/charmlog"
	"github.com/ochairo/playport/internal/external-adapters/filesystem"
	"github.com/ochairo/playport/internal/external-adapters/progress"
	"github.com/ochairo/playport/internal/external-adapters/yaml"
)

// app holds everything a command needs, built once from the configuration
type app struct {
	cfg          *yaml.Config
	logger       interfaces.Logger
	orchestrator *orchestrators.AcquisitionOrchestrator
	store        *filesystem.ServerStore
	scripts      *services.LaunchScriptService
	stdout       io.Writer
	stderr       io.Writer
}

func newApp(cfg *yaml.Config, verbose bool, stdout, stderr io.Writer) (*app, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := charmlog.New(stderr, level)
	if err != nil {
		return nil, err
	}

	var providers repositories.ProviderRepository
	if cfg.CatalogFile != "" {
		providers, err = yaml.NewProviderRepositoryFromFile(cfg.CatalogFile)
	} else {
		providers, err = yaml.NewProviderRepository()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load provider catalog: %w", err)
	}

	client := gateways.NewMetadataClient(gateways.MetadataClientOptions{
		Timeout:     cfg.MetadataTimeout,
		UserAgent:   cfg.UserAgent,
		GitHubToken: cfg.GitHubToken,
	})
	registry := gateways.NewStrategyRegistry(client)

	all, err := providers.ListProviders(context.Background())
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if err := registry.Supports(p); err != nil {
			return nil, err
		}
	}

	var reporter gatewayifaces.ProgressReporter
	if isTerminal(stderr) {
		reporter = progress.NewReporter(stderr)
	}
	downloader := gateways.NewDownloader(gateways.DownloaderOptions{
		Timeout:   cfg.DownloadTimeout,
		UserAgent: cfg.UserAgent,
		Progress:  reporter,
		Logger:    logger,
	})

	// Installer output is only shown when debugging
	var installerOutput io.Writer
	if level == "debug" {
		installerOutput = stderr
	}
	installer := gateways.NewInstallerRunner(
		gateways.NewExecCommandRunner(installerOutput, logger),
		registry,
		cfg.JavaPath,
		logger,
	)

	var signatures gatewayifaces.SignatureVerifier
	if cfg.Verify.Keyring != "" {
		verifier, err := gateways.NewGPGVerifier(cfg.Verify.Keyring, &http.Client{Timeout: cfg.MetadataTimeout})
		if err != nil {
			return nil, err
		}
		signatures = verifier
	}
	integrity := orchestrators.NewIntegrityOrchestrator(
		gateways.NewChecksumVerifier(),
		signatures,
		orchestrators.IntegrityOrchestratorConfig{VerifyChecksums: cfg.Verify.Checksums},
		logger,
	)

	orch := orchestrators.NewAcquisitionOrchestrator(
		providers,
		gateways.NewVersionCatalog(registry, logger),
		registry,
		downloader,
		integrity,
		installer,
		logger,
	)

	return &app{
		cfg:          cfg,
		logger:       logger,
		orchestrator: orch,
		store:        filesystem.NewServerStore(cfg.ServersDir),
		scripts:      services.NewLaunchScriptService(),
		stdout:       stdout,
		stderr:       stderr,
	}, nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
