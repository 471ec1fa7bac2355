// tags.go implements the "bookrab tags" command.

package book

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/internal/format"
	"github.com/jpl-au/bookrab/internal/log"
)

func (e *Extension) newTagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			tags, err := e.svc.Tags(c.Context())
			log.Event("book:tags", "list").Detail("count", len(tags)).Write(err)
			if err != nil {
				return cmd.PrintJSONError(fmt.Errorf("tags: %w", err))
			}
			if cmd.JSON() {
				return cmd.PrintJSON(tags)
			}
			return format.Tags(cmd.Out(), tags)
		},
	}
}
