package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ochairo/playport/internal/domain/entities"
)

func newVersionsCmd(opts *rootOptions) *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "versions <software>",
		Short: "List available versions of a server software, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}

			list, err := a.orchestrator.ListVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if pageSize <= 0 {
				pageSize = 10
			}
			versions, total := list.Page(page, pageSize)
			if page < 1 || page > total {
				page = 1
			}
			fmt.Fprintf(a.stdout, "Versions of %s (page %d/%d):\n", list.Provider, page, total)
			for i, v := range versions {
				fmt.Fprintf(a.stdout, "  [%d] %s\n", (page-1)*pageSize+i+1, v)
			}
			if list.Source == entities.SourceFallback {
				fmt.Fprintln(a.stderr, "Warning: upstream listing unavailable, showing placeholder versions")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "versions per page")
	return cmd
}
