// init.go implements the "bookrab init" command for workspace initialisation.
//
// Separated from extension.go to isolate init-specific logic. Init is special
// because it runs before a workspace exists and creates the book root.
//
// Design: A workspace is a .bookrab directory holding config.yaml, books/
// and the history files. Discovery walks up from the working directory, the
// way git finds .git. The --local flag keeps the book texts out of git.

package core

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/document"
	"github.com/jpl-au/bookrab/internal/log"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialise a bookrab workspace",
		Long: `Creates .bookrab/ with config.yaml and books/ in the current directory.

  bookrab init                 # workspace in the current directory
  bookrab init ~/library       # workspace in ~/library
  bookrab init --local         # gitignore books/ (texts stay private)

Without a workspace bookrab uses ~/.bookrab/ (global scope).`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
	c.Flags().BoolP(extension.FlagLocal, "l", false, "Gitignore the book texts")
	return c
}

func runInit(c *cobra.Command, args []string) error {
	local, _ := c.Flags().GetBool(extension.FlagLocal)
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	ws, err := document.Init(cmd.Force(), dir, local)

	log.Event("core:init", "init").
		Path(ws).
		Detail("local", local).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("init: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"workspace": ws, "local": local})
	}
	fmt.Fprintf(cmd.Out(), "Initialised bookrab workspace in %s\n", ws)
	return nil
}
