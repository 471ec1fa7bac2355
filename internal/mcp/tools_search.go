// tools_search.go implements the MCP tool for regex search.
//
// Separated from tools_books.go because search has two modes. With a title
// the tool searches that one book and returns a single result object.
// Without one it searches every book passing the tag filter and returns an
// array. Both modes record history exactly as the CLI does.

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/search"
)

// searchBooks handles book_search tool calls.
func (h *handlers) searchBooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := req.RequireString("pattern")
	if err != nil {
		return mcp.NewToolResultError("pattern is required"), nil //nolint:nilerr
	}

	q := search.Query{
		Pattern:    pattern,
		IgnoreCase: getBool(req, "ignore_case", false),
		SmartCase:  getBool(req, "smart_case", h.cfg.SmartCase()),
		Before:     getInt(req, "before", 0),
		After:      getInt(req, "after", 0),
	}

	if title := getString(req, "title", ""); title != "" {
		res, err := h.svc.Search(ctx, title, q)

		log.Event("mcp:book_search", "search").Path(title).
			Detail("pattern", pattern).
			Detail("chunks", len(res.Results)).
			Write(err)

		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(res)
	}

	include, err := getTagQuery(req, "include")
	if err != nil {
		return errorResult(err), nil
	}
	exclude, err := getTagQuery(req, "exclude")
	if err != nil {
		return errorResult(err), nil
	}

	results, err := h.svc.SearchByTags(ctx, include, exclude, q)

	log.Event("mcp:book_search", "search").
		Detail("pattern", pattern).
		Detail("include", include.Tags).
		Detail("exclude", exclude.Tags).
		Detail("books", len(results)).
		Write(err)

	if err != nil {
		return errorResult(err), nil
	}
	if results == nil {
		results = []search.Results{}
	}
	return jsonResult(results)
}
