// upload.go implements the "bookrab upload" command.
//
// Separated from book.go to isolate input handling (file argument or stdin)
// and the diff preview.
//
// Design: The title defaults to the file name without its extension, the
// same rule the REST upload uses. --diff prints what would change against
// the stored text; combined with --dry-run nothing is written.

package book

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/diff"
	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/tag"
)

type uploadResult struct {
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
	Bytes   int      `json:"bytes"`
	DryRun  bool     `json:"dry_run,omitempty"`
	Added   int      `json:"added,omitempty"`
	Removed int      `json:"removed,omitempty"`
}

func (e *Extension) newUploadCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "upload <file|->",
		Short: "Upload a plain-text book",
		Long: `Store a plain-text file as a book, replacing any book with the same title.

  bookrab upload lusiadas.txt --tags poem,portuguese
  bookrab upload notes.txt --title "Field Notes" --diff
  cat draft.txt | bookrab upload - --title draft --dry-run --diff`,
		Args: cobra.ExactArgs(1),
		RunE: e.runUpload,
	}
	c.Flags().String(extension.FlagTitle, "", "Book title (default: file name without extension)")
	c.Flags().String(extension.FlagTags, "", "Comma separated tags")
	c.Flags().BoolP(extension.FlagDiff, "d", false, "Show changes against the stored text")
	c.Flags().BoolP(extension.FlagDryRun, "n", false, "Do not write anything")
	return c
}

func (e *Extension) runUpload(c *cobra.Command, args []string) error {
	ctx := c.Context()
	src := args[0]
	title, _ := c.Flags().GetString(extension.FlagTitle)
	rawTags, _ := c.Flags().GetString(extension.FlagTags)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
	dryRun, _ := c.Flags().GetBool(extension.FlagDryRun)

	var data []byte
	var err error
	if src == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("read %q: %w", src, err))
	}

	if title == "" {
		if src == "-" {
			return cmd.PrintJSONError(fmt.Errorf("--title is required when reading stdin"))
		}
		base := filepath.Base(src)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	tags := tag.Parse(rawTags)
	text := string(data)
	res := uploadResult{Title: title, Tags: tags, Bytes: len(data), DryRun: dryRun}

	if showDiff {
		w := cmd.Out()
		if cmd.JSON() {
			w = io.Discard
		}
		r, derr := diff.Run(ctx, w, e.svc, title, text, term.IsTerminal(int(os.Stdout.Fd())))
		if derr != nil {
			return cmd.PrintJSONError(fmt.Errorf("diff %q: %w", title, derr))
		}
		res.Added, res.Removed = r.Added, r.Removed
	}

	if !dryRun {
		err = e.svc.Upload(ctx, title, text, tags)
		log.Event("book:upload", "upload").
			Path(title).
			Detail("bytes", len(data)).
			Detail("tags", strings.Join(tags, ",")).
			Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("upload %q: %w", title, err))
		}
	}

	if !cmd.JSON() {
		verb := "Uploaded"
		if dryRun {
			verb = "Would upload"
		}
		fmt.Fprintf(cmd.Out(), "%s %s (%d bytes)\n", verb, title, len(data))
	}
	return cmd.PrintJSON(res)
}
