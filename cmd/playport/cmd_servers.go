package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newServersCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List existing servers",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}

			servers, err := a.store.List()
			if err != nil {
				return err
			}
			if len(servers) == 0 {
				fmt.Fprintf(a.stdout, "No existing servers found in %s\n", a.store.Root())
				return nil
			}

			fmt.Fprintf(a.stdout, "Servers in %s:\n\n", a.store.Root())
			for _, s := range servers {
				details := "no metadata"
				if s.Metadata != nil {
					details = fmt.Sprintf("%s %s, %dMB", s.Metadata.Software, s.Metadata.Version, s.Metadata.RAMMB)
				}
				script := s.StartScript
				if script == "" {
					script = "no start script"
				}
				fmt.Fprintf(a.stdout, "  %-20s %s (%s)\n", s.Name, details, script)
			}
			return nil
		},
	}
}
