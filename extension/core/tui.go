// tui.go implements the "bookrab tui" command.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/internal/logging"
	"github.com/jpl-au/bookrab/internal/tui"
)

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive search",
		Long: `Open an interactive terminal UI: type a pattern, pick include/exclude
tags (space cycles a tag, / filters tags), or select a single book, then
press enter to search. The book and tag lists follow changes on disk.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			svc, err := cmd.Service(c.Context())
			if err != nil {
				return err
			}
			cfg := svc.Config()
			logging.Init(logging.FromConfig(cfg))
			defer logging.Shutdown()

			return tui.Run(c.Context(), svc, svc.Root(), cfg.SmartCase())
		},
	}
}
