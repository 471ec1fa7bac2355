// tools_guide.go implements the MCP tool for accessing help content.
//
// The guide tool gives LLMs the same embedded documentation as
// "bookrab guide", so they can learn the search syntax without leaving the
// session.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/bookrab/guide"
	"github.com/jpl-au/bookrab/internal/log"
)

// getGuide handles book_guide tool calls.
func (h *handlers) getGuide(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := getString(req, "topic", "")

	content, err := guide.Get(topic)

	log.Event("mcp:book_guide", "read").Detail("topic", topic).Write(err)

	if err != nil {
		topics, listErr := guide.Topics()
		if listErr != nil {
			return nil, fmt.Errorf("listing guides: %w", listErr)
		}
		return jsonResult(map[string]any{
			"error":            err.Error(),
			"available_topics": topics,
		})
	}

	return mcp.NewToolResultText(content), nil
}
