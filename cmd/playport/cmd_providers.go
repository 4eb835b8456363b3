package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProvidersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List supported server software",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}

			providers, err := a.orchestrator.ListProviders(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Supported software (%d total):\n\n", len(providers))
			for _, p := range providers {
				mode := "direct download"
				if p.IsInstallerBased() {
					mode = "installer"
					if p.RequiresGameVersion() {
						mode += ", needs --game-version"
					}
				}
				fmt.Fprintf(a.stdout, "  %-16s %-14s %s (%s)\n", p.ID, p.Name, mode, p.Launch.Kind)
			}
			return nil
		},
	}
}
