// ls.go implements the "bookrab ls" command for listing books.
//
// Separated from book.go to isolate listing and tag filtering.
//
// Design: Ls takes the same --include/--exclude filter as search, so a user
// can preview which books a tag search will cover. -l adds the text size,
// read with a stat of the book's txt file.

package book

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/format"
	"github.com/jpl-au/bookrab/internal/log"
)

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls",
		Short: "List books",
		Long: `List books and their tags, optionally filtered by tag.

  bookrab ls
  bookrab ls -l
  bookrab ls --include poem,epic --include-mode all --exclude draft`,
		Args: cobra.NoArgs,
		RunE: e.runLs,
	}
	c.Flags().BoolP(extension.FlagLong, "l", false, "Long format with sizes")
	extension.AddTagFlags(c)
	return c
}

func (e *Extension) runLs(c *cobra.Command, _ []string) error {
	ctx := c.Context()
	long, _ := c.Flags().GetBool(extension.FlagLong)

	include, exclude, err := extension.TagFlags(c)
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	var docs []book.Document
	if include.Empty() && exclude.Empty() {
		docs, err = e.svc.List(ctx)
	} else {
		docs, err = e.svc.ListByTags(ctx, include, exclude)
	}

	log.Event("book:ls", "list").
		Detail("include", include.Tags).
		Detail("exclude", exclude.Tags).
		Detail("count", len(docs)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("ls: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(docs)
	}
	if !long {
		return format.List(cmd.Out(), docs)
	}

	sized := make([]format.Sized, len(docs))
	for i, d := range docs {
		sized[i] = format.Sized{Document: d}
		if info, err := os.Stat(filepath.Join(e.svc.Root(), d.Title, book.TextFile)); err == nil {
			sized[i].Size = info.Size()
		}
	}
	return format.Long(cmd.Out(), sized)
}
