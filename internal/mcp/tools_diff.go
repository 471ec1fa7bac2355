// tools_diff.go implements the MCP tool for previewing an upload.
//
// Diff lets an LLM see what replacing a book would change before it calls
// book_upload.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/bookrab/internal/log"
)

// diffBook handles book_diff tool calls.
func (h *handlers) diffBook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil //nolint:nilerr
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil //nolint:nilerr
	}

	r, err := h.svc.Diff(ctx, title, text)

	log.Event("mcp:book_diff", "diff").Path(title).Detail("added", r.Added).Detail("removed", r.Removed).Write(err)

	if err != nil {
		return errorResult(err), nil
	}

	return jsonResult(map[string]any{
		"old":     r.Old,
		"new":     r.New,
		"diff":    r.Format(false),
		"added":   r.Added,
		"removed": r.Removed,
	})
}
