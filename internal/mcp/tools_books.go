// tools_books.go implements MCP tools for listing, reading and uploading
// books.
//
// Separated from server.go to keep the tool table apart from the handlers.
// These tools mirror the CLI commands (ls, cat, upload) but return
// structured JSON for LLM consumption rather than human-readable text.
//
// Errors return MCP tool error results rather than Go errors, so the LLM
// receives feedback it can act on instead of a protocol-level failure.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/log"
)

// listBooks handles book_list tool calls.
func (h *handlers) listBooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	include, err := getTagQuery(req, "include")
	if err != nil {
		return errorResult(err), nil
	}
	exclude, err := getTagQuery(req, "exclude")
	if err != nil {
		return errorResult(err), nil
	}

	var docs []book.Document
	if include.Empty() && exclude.Empty() {
		docs, err = h.svc.List(ctx)
	} else {
		docs, err = h.svc.ListByTags(ctx, include, exclude)
	}

	log.Event("mcp:book_list", "list").
		Detail("include", include.Tags).
		Detail("exclude", exclude.Tags).
		Detail("count", len(docs)).
		Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	if docs == nil {
		docs = []book.Document{}
	}
	return jsonResult(docs)
}

// readBookTool handles book_read tool calls.
func (h *handlers) readBookTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil //nolint:nilerr
	}

	text, err := h.svc.Text(ctx, title)

	log.Event("mcp:book_read", "read").Path(title).Detail("bytes", len(text)).Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(text), nil
}

// uploadBook handles book_upload tool calls.
func (h *handlers) uploadBook(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title is required"), nil //nolint:nilerr
	}
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError("text is required"), nil //nolint:nilerr
	}
	tags := getTags(req, "tags")
	if tags == nil {
		tags = []string{}
	}

	err = h.svc.Upload(ctx, title, text, tags)

	log.Event("mcp:book_upload", "write").Path(title).Detail("tags", tags).Detail("bytes", len(text)).Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("uploaded %s (%d bytes, %d tags)", title, len(text), len(tags))), nil
}

// history handles book_history tool calls.
func (h *handlers) history(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := getInt(req, "limit", 0)

	entries, err := h.svc.History(ctx)

	log.Event("mcp:book_history", "list").Detail("limit", limit).Detail("count", len(entries)).Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return jsonResult(entries)
}
