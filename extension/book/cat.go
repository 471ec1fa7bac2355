// cat.go implements the "bookrab cat" command for reading a book's text.
//
// Design: Terminal output gets glamour rendering unless --raw is set, the
// same convention as "bookrab guide"; pipes always get the text untouched.

package book

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/log"
)

type catResult struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Text  string   `json:"text"`
}

func (e *Extension) newCatCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "cat <title>",
		Short: "Print a book's text",
		Args:  cobra.ExactArgs(1),
		RunE:  e.runCat,
	}
	c.Flags().Bool(extension.FlagRaw, false, "Output raw text without rendering")
	return c
}

func (e *Extension) runCat(c *cobra.Command, args []string) error {
	ctx := c.Context()
	title := args[0]
	raw, _ := c.Flags().GetBool(extension.FlagRaw)

	text, err := e.svc.Text(ctx, title)
	log.Event("book:cat", "read").Path(title).Detail("bytes", len(text)).Write(err)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", title, err))
	}

	if cmd.JSON() {
		doc, err := e.svc.Get(ctx, title)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("cat %q: %w", title, err))
		}
		return cmd.PrintJSON(catResult{Title: doc.Title, Tags: doc.Tags, Text: text})
	}

	if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(text, "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return nil
		}
	}
	fmt.Fprint(cmd.Out(), text)
	return nil
}
