// export.go implements the "bookrab export" command.
//
// Design: export writes <title>.txt per book into a directory, the inverse
// of import. It takes the same tag filter as ls and search, so a subset of
// the collection can be copied out.

package book

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/exporter"
	"github.com/jpl-au/bookrab/internal/log"
)

func (e *Extension) newExportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "export <dir>",
		Short: "Write books to a directory as .txt files",
		Long: `Write each book's text to <dir>/<title>.txt. Existing files are kept
unless --force is given.

  bookrab export ./backup
  bookrab export ./poems --include poem --force`,
		Args: cobra.ExactArgs(1),
		RunE: e.runExport,
	}
	extension.AddTagFlags(c)
	return c
}

func (e *Extension) runExport(c *cobra.Command, args []string) error {
	dst := args[0]
	var opts exporter.Options
	var err error
	if opts.Include, opts.Exclude, err = extension.TagFlags(c); err != nil {
		return cmd.PrintJSONError(err)
	}
	opts.Force = cmd.Force()

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := exporter.Run(c.Context(), w, e.svc, dst, opts)

	log.Event("book:export", "export").
		Detail("dest", dst).
		Detail("count", result.Exported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("export to %q: %w", dst, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	fmt.Fprintf(cmd.Out(), "\nExported %d book(s)\n", result.Exported)
	return nil
}
