// tools_config.go implements MCP tools for configuration management.
//
// Separated because config operations modify persistent settings that
// affect all subsequent operations, and they must reload the service after
// changes.
//
// Design: Config changes trigger ReloadConfig() so the running MCP server
// uses new settings (book root, history backends, limits) immediately.

package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/log"
)

// configGet handles book_config_get tool calls. Values come from the
// configuration the server is running with.
func (h *handlers) configGet(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := getString(req, "key", "")
	if key == "" {
		log.Event("mcp:config_get", "list").Write(nil)
		return jsonResult(h.cfg.All())
	}

	v, err := h.cfg.Get(key)

	log.Event("mcp:config_get", "get").Detail("key", key).Write(err)

	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(map[string]string{key: v})
}

// configSet handles book_config_set tool calls.
func (h *handlers) configSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError("key is required"), nil //nolint:nilerr
	}

	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value is required"), nil //nolint:nilerr
	}

	l := log.Event("mcp:config_set", "set").Detail("key", key).Detail("value", value)

	cfg, err := config.Load()
	if err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := cfg.Set(key, value); err != nil {
		l.Write(err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	err = cfg.Save()
	l.Write(err)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	h.cfg = cfg

	if r, ok := h.svc.(reloader); ok {
		if err := r.ReloadConfig(ctx); err != nil {
			log.Event("mcp:config_set", "reload").Write(err)
			return mcp.NewToolResultText(fmt.Sprintf("%s = %s (warning: reload failed, restart server to apply: %v)", key, value, err)), nil
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s = %s", key, value)), nil
}
