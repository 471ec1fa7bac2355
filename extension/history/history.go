// Package history provides access to recorded searches and the audit log.
// Registers commands: history. Contributes the book_audit MCP tool and logs
// upload and search events to the operational log.
package history

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/logging"
	"github.com/jpl-au/bookrab/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// defaultAuditLimit caps audit entries when no limit is given.
const defaultAuditLimit = 50

// Extension implements the history extension.
type Extension struct {
	svc service.Service
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "history".
func (e *Extension) Name() string { return "history" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the history command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{e.newHistoryCmd()}
}

// MCPTools returns book_audit.
func (e *Extension) MCPTools() []extension.MCPTool {
	return []extension.MCPTool{{
		Tool: mcp.NewTool("book_audit",
			mcp.WithDescription("Recent bookrab operations for this book root, newest first."),
			mcp.WithNumber("limit", mcp.Description("Maximum entries (default 50)")),
		),
		Handler: auditTool,
	}}
}

// HandleEvent writes uploads and searches to the operational log.
func (e *Extension) HandleEvent(_ extension.Context, ev extension.Event) error {
	l := logging.ForComponent(logging.CompHistory)
	switch ev := ev.(type) {
	case extension.BookUploadEvent:
		l.Info("book uploaded",
			slog.String("title", ev.Title),
			slog.Int("bytes", ev.Bytes),
			slog.Bool("replaced", ev.Replaced))
	case extension.SearchCompleteEvent:
		l.Info("search recorded",
			slog.String("pattern", ev.Pattern),
			slog.Int("books", len(ev.Books)),
			slog.Int("chunks", ev.Chunks))
	}
	return nil
}

func auditTool(_ context.Context, _ extension.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := defaultAuditLimit
	if args, ok := req.Params.Arguments.(map[string]any); ok {
		if v, ok := args["limit"].(float64); ok {
			limit = int(v)
		}
	}
	if limit <= 0 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}
	entries, err := log.Recent(limit)
	log.Event("mcp:book_audit", "list").Detail("limit", limit).Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if entries == nil {
		entries = []log.Entry{}
	}
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
