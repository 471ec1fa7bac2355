package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/document"
	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/search"
)

func setupHandlers(t *testing.T) *handlers {
	t.Helper()
	t.Setenv(config.EnvDir, "")
	dir := t.TempDir()
	cfg := &config.Config{BookPath: filepath.Join(dir, "books")}
	cfg.History.JSONPath = filepath.Join(dir, "history.json")
	require.NoError(t, cfg.Set("history.backends", "json"))

	svc, err := document.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return &handlers{svc: svc, cfg: cfg}
}

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return tc.Text
}

func upload(t *testing.T, h *handlers, title, body string, tags any) {
	t.Helper()
	res, err := h.uploadBook(context.Background(), request(map[string]any{
		"title": title, "text": body, "tags": tags,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
}

func TestUploadAndList(t *testing.T) {
	h := setupHandlers(t)
	upload(t, h, "a", "rio Tejo\n", "poem, pt")
	upload(t, h, "b", "o tejo\n", []any{"poem"})

	res, err := h.listBooks(context.Background(), request(nil))
	require.NoError(t, err)
	var docs []book.Document
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &docs))
	assert.Equal(t, []book.Document{
		{Title: "a", Tags: []string{"poem", "pt"}},
		{Title: "b", Tags: []string{"poem"}},
	}, docs)

	res, err = h.listBooks(context.Background(), request(map[string]any{"exclude": "pt"}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "b", docs[0].Title)

	res, err = h.listTags(context.Background(), request(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `["poem","pt"]`, text(t, res))
}

func TestEmptyListIsArray(t *testing.T) {
	h := setupHandlers(t)
	res, err := h.listBooks(context.Background(), request(map[string]any{"include": "none"}))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, text(t, res))
}

func TestUploadInvalidTitle(t *testing.T) {
	h := setupHandlers(t)
	res, err := h.uploadBook(context.Background(), request(map[string]any{"title": "a/b", "text": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.True(t, strings.HasPrefix(text(t, res), fault.CodeBadInput+": "))

	res, err = h.uploadBook(context.Background(), request(map[string]any{"title": "a"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "text is required", text(t, res))
}

func TestSearchModes(t *testing.T) {
	h := setupHandlers(t)
	upload(t, h, "a", "one\nrio Tejo\nthree\n", "poem,pt")
	upload(t, h, "b", "o tejo\n", "poem")

	res, err := h.searchBooks(context.Background(), request(map[string]any{
		"pattern": "Tejo", "title": "a", "before": float64(1),
	}))
	require.NoError(t, err)
	var one search.Results
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &one))
	assert.Equal(t, []string{"one\nrio [matched]Tejo[/matched]\n"}, one.Results)

	res, err = h.searchBooks(context.Background(), request(map[string]any{
		"pattern": "tejo", "ignore_case": true, "include": "poem", "include_mode": "all",
	}))
	require.NoError(t, err)
	var many []search.Results
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &many))
	require.Len(t, many, 2)
	assert.Equal(t, "a", many[0].Title)
	assert.Equal(t, []string{"o [matched]tejo[/matched]\n"}, many[1].Results)

	res, err = h.history(context.Background(), request(map[string]any{"limit": float64(2)}))
	require.NoError(t, err)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "tejo", entries[0].Pattern)
}

func TestSearchErrors(t *testing.T) {
	h := setupHandlers(t)
	upload(t, h, "a", "x\n", nil)

	res, err := h.searchBooks(context.Background(), request(map[string]any{"pattern": "(", "title": "a"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), fault.CodeBadPattern)

	res, err = h.searchBooks(context.Background(), request(map[string]any{"pattern": "x", "title": "nope"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), fault.CodeNoSuchBook)

	res, err = h.searchBooks(context.Background(), request(map[string]any{"pattern": "x", "include_mode": "most"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.searchBooks(context.Background(), request(nil))
	require.NoError(t, err)
	assert.Equal(t, "pattern is required", text(t, res))
}

func TestDiffAndRead(t *testing.T) {
	h := setupHandlers(t)
	upload(t, h, "a", "one\ntwo\n", nil)

	res, err := h.diffBook(context.Background(), request(map[string]any{"title": "a", "text": "one\nthree\n"}))
	require.NoError(t, err)
	var d map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &d))
	assert.EqualValues(t, 1, d["added"])
	assert.EqualValues(t, 1, d["removed"])

	res, err = h.readBookTool(context.Background(), request(map[string]any{"title": "a"}))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", text(t, res))

	contents, err := h.readBookResource(context.Background(), "bookrab://books/a")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "one\ntwo\n", contents[0].(mcp.TextResourceContents).Text)
}

func TestConfigGet(t *testing.T) {
	h := setupHandlers(t)
	res, err := h.configGet(context.Background(), request(map[string]any{"key": "history.backends"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"history.backends":"json"}`, text(t, res))

	res, err = h.configGet(context.Background(), request(map[string]any{"key": "nope"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = h.configGet(context.Background(), request(nil))
	require.NoError(t, err)
	var all map[string]string
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &all))
	assert.Len(t, all, len(config.ValidKeys()))
}

func TestParseBookURI(t *testing.T) {
	title, err := parseBookURI("bookrab://books/Os%20Lus%C3%ADadas")
	require.NoError(t, err)
	assert.Equal(t, "Os Lusíadas", title)

	_, err = parseBookURI("bookrab://books/")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = parseBookURI("file:///books/x")
	assert.ErrorIs(t, err, ErrInvalidURI)
}

func TestNewServerRegistersExtensionTools(t *testing.T) {
	h := setupHandlers(t)
	var called bool
	tool := extension.MCPTool{
		Tool: mcp.NewTool("ext_ping"),
		Handler: func(_ context.Context, extCtx extension.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			called = extCtx.Service() != nil
			return mcp.NewToolResultText("pong"), nil
		},
	}
	s := NewServer(h.svc, h.cfg, []extension.MCPTool{tool})
	require.NotNil(t, s)

	res, err := tool.Handler(context.Background(), extension.NewContext(h.svc, h.cfg), request(nil))
	require.NoError(t, err)
	assert.Equal(t, "pong", text(t, res))
	assert.True(t, called)
}
