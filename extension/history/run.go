// run.go implements the "bookrab history" command.
//
// Design: Without flags the command prints recorded searches from the first
// configured history backend, oldest first. --audit switches to the audit
// log, which records every command, REST request and MCP call, newest first.

package history

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/format"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/log"
)

func (e *Extension) newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history",
		Short: "Show recorded searches",
		Long: `Show recorded searches, or the audit log with --audit.

  bookrab history              # every recorded search
  bookrab history -n 5         # the last five
  bookrab history --title lusiadas1
  bookrab history --audit -n 20`,
		Args: cobra.NoArgs,
		RunE: e.runHistory,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Limit number of entries shown")
	c.Flags().String(extension.FlagTitle, "", "Only searches of this book")
	c.Flags().Bool(extension.FlagAudit, false, "Show the audit log instead")
	return c
}

func (e *Extension) runHistory(c *cobra.Command, _ []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	title, _ := c.Flags().GetString(extension.FlagTitle)
	audit, _ := c.Flags().GetBool(extension.FlagAudit)

	if limit < 0 {
		return cmd.PrintJSONError(fmt.Errorf("limit must be >= 0, got %d", limit))
	}

	if audit {
		return runAudit(limit)
	}

	entries, err := e.svc.History(c.Context())
	if err == nil {
		entries = filter(entries, title, limit)
	}

	log.Event("history:history", "list").
		Path(title).
		Detail("count", len(entries)).
		Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("history: %w", err))
	}
	if cmd.JSON() {
		return cmd.PrintJSON(entries)
	}
	return format.History(cmd.Out(), entries)
}

func runAudit(limit int) error {
	if limit == 0 {
		limit = defaultAuditLimit
	}
	entries, err := log.Recent(limit)
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("audit: %w", err))
	}
	if cmd.JSON() {
		if entries == nil {
			entries = []log.Entry{}
		}
		return cmd.PrintJSON(entries)
	}
	return format.Audit(cmd.Out(), entries)
}

// filter keeps entries for title (all when empty) and then the last limit
// of them (all when zero).
func filter(entries []history.Entry, title string, limit int) []history.Entry {
	if title != "" {
		kept := entries[:0:0]
		for _, en := range entries {
			if en.Title == title {
				kept = append(kept, en)
			}
		}
		entries = kept
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries
}
