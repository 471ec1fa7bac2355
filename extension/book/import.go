// import.go implements the "bookrab import" command for bulk uploads.
//
// Separated from upload.go because a directory walk has its own flags and
// progress output. The walk itself lives in internal/importer.

package book

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/importer"
	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/tag"
)

func (e *Extension) newImportCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <dir>",
		Short: "Upload every .txt file in a directory",
		Long: `Recursively upload plain-text files as books. Each title is the file name
without its extension; an existing book with the same title is replaced.

  bookrab import ./library --tags classic
  bookrab import ./library --dir-tags --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: e.runImport,
	}
	c.Flags().String(extension.FlagTags, "", "Comma separated tags for every book")
	c.Flags().Bool(extension.FlagDirTags, false, "Also tag books with their directory names")
	c.Flags().BoolP(extension.FlagHidden, "H", false, "Include hidden files and directories")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Show what would be imported")
	return c
}

func (e *Extension) runImport(c *cobra.Command, args []string) error {
	src := args[0]
	var opts importer.Options
	rawTags, _ := c.Flags().GetString(extension.FlagTags)
	opts.Tags = tag.Parse(rawTags)
	opts.DirTags, _ = c.Flags().GetBool(extension.FlagDirTags)
	opts.Hidden, _ = c.Flags().GetBool(extension.FlagHidden)
	opts.DryRun, _ = c.Flags().GetBool(extension.FlagDryRun)

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}
	result, err := importer.Run(c.Context(), w, e.svc, src, opts)

	log.Event("book:import", "import").
		Detail("source", src).
		Detail("count", result.Imported).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("import %q: %w", src, err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	if len(result.Titles) == 0 {
		fmt.Fprintf(cmd.Out(), "No %s files found in %q\n", importer.Ext, src)
		return nil
	}
	if !opts.DryRun {
		fmt.Fprintf(cmd.Out(), "\nImported %d book(s)\n", result.Imported)
	}
	return nil
}
