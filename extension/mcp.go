// mcp.go defines how extensions contribute MCP tools.
//
// Tools are collected by Tools in registry.go and registered after the
// server's built-in book_* tools. A handler gets the request context for
// cancellation and the extension Context for the book service and config.

package extension

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// MCPTool pairs an MCP tool definition with its handler.
type MCPTool struct {
	Tool    mcp.Tool
	Handler MCPHandler
}

// MCPHandler answers one tool call.
type MCPHandler func(ctx context.Context, extCtx Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
