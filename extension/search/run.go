// run.go implements the "bookrab search" command.
//
// Separated from search.go to isolate flag parsing and output selection.
//
// Design: With a title the search covers that one book; without one it
// covers every book that passes the tag filter, and an empty filter means
// every book. Either way the service records the search in history. Match
// markers are turned into ANSI bold on a terminal, left as-is on a pipe,
// and rendered as markdown with --pretty.

package search

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/format"
	"github.com/jpl-au/bookrab/internal/log"
	booksearch "github.com/jpl-au/bookrab/internal/search"
)

func (e *Extension) newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search <pattern> [title]",
		Short: "Search books using regex",
		Long: `Search one book, or every book passing a tag filter, with a regular
expression (RE2 syntax). Matches are wrapped in [matched]...[/matched].

  bookrab search "Tejo" lusiadas1         # one book
  bookrab search -B 1 -A 2 "mar"          # every book, with context
  bookrab search -i "amor" --include poem --exclude draft
  bookrab search "Rei" --include epic,poem --include-mode all --pretty`,
		Args: cobra.RangeArgs(1, 2),
		RunE: e.runSearch,
	}
	c.Flags().IntP(extension.FlagBefore, "B", 0, "Lines of context before each match")
	c.Flags().IntP(extension.FlagAfter, "A", 0, "Lines of context after each match")
	c.Flags().IntP(extension.FlagContext, "C", 0, "Lines of context before and after each match")
	c.Flags().BoolP(extension.FlagIgnoreCase, "i", false, "Ignore case distinctions")
	c.Flags().BoolP(extension.FlagSmartCase, "S", false, "Ignore case unless the pattern has uppercase (default from search.smart_case)")
	c.Flags().Bool(extension.FlagPretty, false, "Render results as markdown")
	extension.AddTagFlags(c)
	return c
}

func (e *Extension) runSearch(c *cobra.Command, args []string) error {
	ctx := c.Context()
	q, err := e.query(c, args[0])
	if err != nil {
		return cmd.PrintJSONError(err)
	}

	title := ""
	if len(args) > 1 {
		title = args[1]
	}

	var results []booksearch.Results
	if title != "" {
		var r booksearch.Results
		r, err = e.svc.Search(ctx, title, q)
		results = []booksearch.Results{r}
	} else {
		include, exclude, ferr := extension.TagFlags(c)
		if ferr != nil {
			return cmd.PrintJSONError(ferr)
		}
		results, err = e.svc.SearchByTags(ctx, include, exclude, q)
	}

	log.Event("search:run", "search").
		Path(title).
		Detail("pattern", q.Pattern).
		Detail("books", len(results)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("search %q: %w", q.Pattern, err))
	}

	if cmd.JSON() {
		if title != "" {
			return cmd.PrintJSON(results[0])
		}
		return cmd.PrintJSON(results)
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	pretty, _ := c.Flags().GetBool(extension.FlagPretty)
	if pretty {
		if tty {
			fmt.Fprint(cmd.Out(), format.RenderMarkdown(results))
		} else {
			fmt.Fprint(cmd.Out(), format.Markdown(results))
		}
		return nil
	}
	return format.Results(cmd.Out(), results, tty)
}

// query builds the search query from flags. -C sets both windows; an
// explicit -B or -A overrides its side.
func (e *Extension) query(c *cobra.Command, pattern string) (booksearch.Query, error) {
	q := booksearch.Query{Pattern: pattern}
	ctxLines, _ := c.Flags().GetInt(extension.FlagContext)
	q.Before, q.After = ctxLines, ctxLines
	if c.Flags().Changed(extension.FlagBefore) {
		q.Before, _ = c.Flags().GetInt(extension.FlagBefore)
	}
	if c.Flags().Changed(extension.FlagAfter) {
		q.After, _ = c.Flags().GetInt(extension.FlagAfter)
	}
	q.IgnoreCase, _ = c.Flags().GetBool(extension.FlagIgnoreCase)
	q.SmartCase = e.cfg.SmartCase()
	if c.Flags().Changed(extension.FlagSmartCase) {
		q.SmartCase, _ = c.Flags().GetBool(extension.FlagSmartCase)
	}
	return q, q.Validate()
}
