package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <software> <version>",
		Short: "Show the download location of a version without fetching it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}

			loc, err := a.orchestrator.Resolve(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "URL:       %s\n", loc.DownloadURL)
			fmt.Fprintf(a.stdout, "File:      %s\n", loc.FileName)
			if loc.Checksum != nil {
				fmt.Fprintf(a.stdout, "Checksum:  %s:%s\n", loc.Checksum.Algorithm, loc.Checksum.Value)
			}
			if loc.SignatureURL != "" {
				fmt.Fprintf(a.stdout, "Signature: %s\n", loc.SignatureURL)
			}
			return nil
		},
	}
}
