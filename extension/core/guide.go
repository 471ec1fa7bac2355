// guide.go implements the "bookrab guide" command for documentation access.
//
// Separated from extension.go to isolate documentation rendering logic
// including terminal detection and glamour markdown formatting.
//
// Design: Guides are embedded in the binary via the guide package, so
// documentation is always available without external files. Terminal output
// gets glamour rendering for readability; pipe/redirect gets raw markdown
// for machine consumption and LLM context loading.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/guide"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the bookrab usage guide",
		Long: `Outputs the bookrab guide for humans and LLMs.

  bookrab guide           # main guide
  bookrab guide search    # search syntax, context windows, tag filters
  bookrab guide config    # configuration keys and history backends`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			printMarkdown(content)
			return nil
		},
	}
}

// printMarkdown renders md with glamour on a terminal and writes it raw
// otherwise.
func printMarkdown(md string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, err := glamour.Render(md, "dark")
		if err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return
		}
	}
	fmt.Fprint(cmd.Out(), md)
}
