// Package mcp implements the Model Context Protocol server, exposing bookrab
// operations to LLMs. This lets AI assistants list, upload and search books
// through a standardised protocol.
package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/logging"
	"github.com/jpl-au/bookrab/internal/service"
)

// Version is advertised to clients for capability negotiation.
const Version = "1.0.0"

// BuiltinTools names the tools registered by registerTools. Extension tools
// may not reuse them.
var BuiltinTools = []string{
	"book_list", "book_tags", "book_read", "book_upload", "book_search",
	"book_diff", "book_history", "book_guide", "book_config_get", "book_config_set",
}

// Serve starts the MCP server over stdio.
// Uses stdio transport for compatibility with Claude Desktop and other MCP clients.
//
// Tools contributed by extensions are registered after the built-in ones.
// stdout is reserved for JSON-RPC, so diagnostics go through the slog
// logger configured by internal/logging.
func Serve(svc service.Service, cfg *config.Config, tools []extension.MCPTool) error {
	log := logging.ForComponent(logging.CompMCP)

	s := NewServer(svc, cfg, tools)
	log.Info("bookrab MCP server ready", "version", Version, "transport", "stdio", "root", svc.Root())

	err := server.ServeStdio(s)
	if errors.Is(err, context.Canceled) {
		log.Info("server stopped")
		return nil
	}
	return err
}

// NewServer builds the MCP server with every resource and tool registered.
func NewServer(svc service.Service, cfg *config.Config, tools []extension.MCPTool) *server.MCPServer {
	h := &handlers{svc: svc, cfg: cfg}

	s := server.NewMCPServer(
		"bookrab",
		Version,
		server.WithResourceCapabilities(true, false),
		server.WithToolCapabilities(true),
	)

	registerResources(s, h)
	registerTools(s, h)

	extCtx := extension.NewContext(svc, cfg)
	for _, t := range tools {
		handler := t.Handler
		s.AddTool(t.Tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handler(ctx, extCtx, req)
		})
	}
	return s
}

// handlers provides MCP request handlers with access to the book service.
type handlers struct {
	svc service.Service
	cfg *config.Config
}

// reloader is implemented by services that can re-read configuration.
type reloader interface {
	ReloadConfig(ctx context.Context) error
}

// registerResources adds URI-based read access to book text.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"bookrab://books/{title}",
			"Book",
			mcp.WithTemplateDescription("Read a book's full text by title"),
			mcp.WithTemplateMIMEType("text/plain"),
		),
		h.readBook,
	)
}

// registerTools exposes bookrab operations as MCP tools for LLM invocation.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcp.NewTool("book_list",
			mcp.WithDescription("List books with their tags. Optionally filter by include/exclude tags."),
			mcp.WithString("include", mcp.Description("Comma-separated tags a book must carry")),
			mcp.WithString("include_mode", mcp.Description("'any' (default) or 'all'")),
			mcp.WithString("exclude", mcp.Description("Comma-separated tags that remove a book")),
			mcp.WithString("exclude_mode", mcp.Description("'any' (default) or 'all'")),
		),
		h.listBooks,
	)

	s.AddTool(
		mcp.NewTool("book_tags",
			mcp.WithDescription("List every tag used by any book"),
		),
		h.listTags,
	)

	s.AddTool(
		mcp.NewTool("book_read",
			mcp.WithDescription("Read a book's full text"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Book title")),
		),
		h.readBookTool,
	)

	s.AddTool(
		mcp.NewTool("book_upload",
			mcp.WithDescription("Store a plain-text book, replacing any book with the same title"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Book title (also its directory name)")),
			mcp.WithString("text", mcp.Required(), mcp.Description("UTF-8 text")),
			mcp.WithString("tags", mcp.Description("Comma-separated tags")),
		),
		h.uploadBook,
	)

	s.AddTool(
		mcp.NewTool("book_search",
			mcp.WithDescription("Regex search over one book (title) or every book passing a tag filter. "+
				"Matches are wrapped in [matched]...[/matched]."),
			mcp.WithString("pattern", mcp.Required(), mcp.Description("RE2 regular expression")),
			mcp.WithString("title", mcp.Description("Search only this book; tag filters are ignored")),
			mcp.WithString("include", mcp.Description("Comma-separated tags a book must carry")),
			mcp.WithString("include_mode", mcp.Description("'any' (default) or 'all'")),
			mcp.WithString("exclude", mcp.Description("Comma-separated tags that remove a book")),
			mcp.WithString("exclude_mode", mcp.Description("'any' (default) or 'all'")),
			mcp.WithNumber("before", mcp.Description("Context lines before each match")),
			mcp.WithNumber("after", mcp.Description("Context lines after each match")),
			mcp.WithBoolean("ignore_case", mcp.Description("Case insensitive search")),
			mcp.WithBoolean("smart_case", mcp.Description("Case insensitive unless the pattern has uppercase")),
		),
		h.searchBooks,
	)

	s.AddTool(
		mcp.NewTool("book_diff",
			mcp.WithDescription("Show how new text differs from a stored book before uploading it"),
			mcp.WithString("title", mcp.Required(), mcp.Description("Book title")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Replacement text")),
		),
		h.diffBook,
	)

	s.AddTool(
		mcp.NewTool("book_history",
			mcp.WithDescription("List recorded searches, oldest first"),
			mcp.WithNumber("limit", mcp.Description("Return only the most recent N entries")),
		),
		h.history,
	)

	s.AddTool(
		mcp.NewTool("book_guide",
			mcp.WithDescription("Get help/guide content for bookrab commands"),
			mcp.WithString("topic", mcp.Description("Guide topic (e.g., 'search', 'config') or empty for index")),
		),
		h.getGuide,
	)

	s.AddTool(
		mcp.NewTool("book_config_get",
			mcp.WithDescription("Get a configuration value"),
			mcp.WithString("key", mcp.Description("Config key (e.g. search.workers) or empty for all")),
		),
		h.configGet,
	)

	s.AddTool(
		mcp.NewTool("book_config_set",
			mcp.WithDescription("Set a configuration value"),
			mcp.WithString("key", mcp.Required(), mcp.Description("Config key")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to set")),
		),
		h.configSet,
	)
}

// readBook handles bookrab://books/{title} resource requests.
func (h *handlers) readBook(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return h.readBookResource(ctx, req.Params.URI)
}
