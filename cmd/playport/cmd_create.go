package main

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/playport/internal/domain-orchestrators"
	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces"
	"github.com/ochairo/playport/internal/domain/services"
	"github.com/ochairo/playport/internal/external-adapters/filesystem"
)

// createOptions holds the flags of the create command
type createOptions struct {
	ramMB       int
	gameVersion string
	windows     bool
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	co := &createOptions{windows: runtime.GOOS == "windows"}

	cmd := &cobra.Command{
		Use:   "create <name> <software> <version>",
		Short: "Create a new server: download, install and write a start script",
		Long: `Create a new server directory, accept the EULA, acquire the requested
software version and write a start script for it.

Installer-based software that builds on a specific game release (Fabric, Quilt)
needs --game-version.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			return a.createServer(cmd, args[0], args[1], args[2], co)
		},
	}

	cmd.Flags().IntVar(&co.ramMB, "ram", 1024, "RAM allocation in MB for java servers")
	cmd.Flags().StringVar(&co.gameVersion, "game-version", "", "game version to install against (Fabric, Quilt)")
	cmd.Flags().BoolVar(&co.windows, "windows", co.windows, "write start.bat instead of start.sh")
	return cmd
}

func (a *app) createServer(cmd *cobra.Command, name, software, version string, co *createOptions) error {
	if err := filesystem.ValidateServerName(name); err != nil {
		return err
	}
	if co.ramMB <= 0 {
		return fmt.Errorf("--ram must be positive, got %d", co.ramMB)
	}

	req := &entities.AcquisitionRequest{
		ProviderID:  entities.ProviderID(software),
		Version:     version,
		GameVersion: co.gameVersion,
	}
	// Reject bad requests before the server directory exists, so a retry under the same name works
	if _, err := a.orchestrator.Validate(cmd.Context(), req); err != nil {
		return err
	}

	dir, err := a.store.Create(name)
	if err != nil {
		return err
	}
	if err := a.store.AcceptEULA(dir); err != nil {
		return fmt.Errorf("failed to write eula.txt: %w", err)
	}
	fmt.Fprintln(a.stdout, "EULA accepted automatically.")
	fmt.Fprintf(a.stdout, "Setting up server '%s' with %s version %s and %dMB RAM...\n", name, software, version, co.ramMB)

	req.TargetDir = dir
	result, err := a.orchestrator.Acquire(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("server setup aborted: %w", err)
	}
	a.logger.Debug(orchestrators.GetAcquisitionSummary(result))

	if result.LaunchKind == entities.LaunchPHPArchive {
		if _, err := exec.LookPath(a.cfg.PHPPath); err != nil {
			a.logger.Warn("php not found on PATH; install it before starting this server",
				interfaces.F("php", a.cfg.PHPPath))
		}
	}

	script, err := a.scripts.Render(services.LaunchScriptOptions{
		Result:  result,
		RAMMB:   co.ramMB,
		Windows: co.windows,
		JavaCmd: a.cfg.JavaPath,
		PHPCmd:  a.cfg.PHPPath,
	})
	if err != nil {
		return err
	}
	scriptPath, err := a.store.WriteLaunchScript(dir, script)
	if err != nil {
		return err
	}

	if err := a.store.WriteMetadata(dir, filesystem.ServerMetadata{
		Name:     name,
		Software: string(result.Provider.ID),
		Version:  result.Version,
		RAMMB:    co.ramMB,
	}); err != nil {
		return fmt.Errorf("failed to write server.properties: %w", err)
	}

	fmt.Fprintln(a.stdout, "Server setup complete!")
	fmt.Fprintln(a.stdout, "Start it with "+scriptPath)
	return nil
}
