// Package main provides the playport CLI for provisioning game servers.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/external-adapters/yaml"
)

// Version is set via -ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		stop()
		os.Exit(1) //nolint:gocritic // exitAfterDefer: stop is called above
	}
}

// rootOptions carries the persistent flags into the subcommands
type rootOptions struct {
	configPath string
	verbose    bool
	stdout     io.Writer
	stderr     io.Writer
}

// app loads the configuration and wires the pipeline
func (o *rootOptions) app() (*app, error) {
	cfg, err := yaml.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, o.verbose, o.stdout, o.stderr)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "playport",
		Short: "Provision game servers from their upstream distributions",
		Long: `playport resolves a server software and version against its upstream
distribution service, downloads it, runs the vendor installer when one is
needed and writes a start script.

Examples:
  playport providers
  playport versions paper
  playport resolve vanilla 1.20.4
  playport create lobby paper 1.20.4 --ram 2048
  playport create modded fabric 0.15.6 --game-version 1.20.4
  playport servers`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/playport/config.yml)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging and installer output")

	cmd.AddCommand(
		newProvidersCmd(opts),
		newVersionsCmd(opts),
		newResolveCmd(opts),
		newCreateCmd(opts),
		newServersCmd(opts),
	)
	return cmd
}

// describeError adds a hint for the acquisition failure kinds a user can act on
func describeError(err error) string {
	switch entities.KindOf(err) {
	case entities.KindNotFound:
		return err.Error() + " (check the name with `playport versions`)"
	case entities.KindNetwork:
		return err.Error() + " (upstream unreachable, try again later)"
	case entities.KindInstallerExecution:
		return err.Error() + " (run with --verbose to see the installer output)"
	}
	if errors.Is(err, context.Canceled) {
		return "interrupted"
	}
	return err.Error()
}
