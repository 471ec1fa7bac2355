// tools_tags.go implements the MCP tool for tag discovery.
//
// Separated from tools_books.go because an LLM typically lists tags first
// to build the include/exclude filters it then passes to book_search.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/bookrab/internal/log"
)

// listTags handles book_tags tool calls.
func (h *handlers) listTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := h.svc.Tags(ctx)

	log.Event("mcp:book_tags", "list").Detail("count", len(tags)).Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(tags)
}
