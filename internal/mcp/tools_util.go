// tools_util.go provides helper functions for MCP tool parameter extraction.
//
// Separated to centralise the boilerplate of extracting typed parameters from
// MCP's generic argument map. These helpers return defaults when optional
// parameters are missing, because LLMs frequently omit optional parameters
// or send them in unexpected formats.

package mcp

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/tag"
)

// getString extracts a string parameter, returning def if it is missing or
// not a string.
func getString(req mcp.CallToolRequest, name, def string) string {
	if v, err := req.RequireString(name); err == nil {
		return v
	}
	return def
}

// getBool extracts a boolean parameter from the raw argument map.
func getBool(req mcp.CallToolRequest, name string, def bool) bool { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(bool); ok {
		return v
	}
	return def
}

// getInt extracts an integer parameter. JSON numbers decode as float64.
func getInt(req mcp.CallToolRequest, name string, def int) int { //nolint:unparam
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return def
	}
	if v, ok := args[name].(float64); ok {
		return int(v)
	}
	return def
}

// getTags accepts either a JSON array of strings or a comma-separated
// string. Non-string array elements are skipped.
func getTags(req mcp.CallToolRequest, name string) []string {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	switch v := args[name].(type) {
	case string:
		return tag.Parse(v)
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// getTagQuery reads "<prefix>" and "<prefix>_mode".
func getTagQuery(req mcp.CallToolRequest, prefix string) (tag.Query, error) {
	q := tag.Query{Tags: getTags(req, prefix)}
	if m := getString(req, prefix+"_mode", ""); m != "" {
		mode, err := tag.ParseMode(m)
		if err != nil {
			return q, err
		}
		q.Mode = mode
	}
	return q, nil
}

// jsonResult serialises v as indented JSON in an MCP text result. LLMs
// parse indented output more reliably than compact JSON.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult reports err to the client, prefixed with its stable code when
// it has one.
func errorResult(err error) *mcp.CallToolResult {
	if code := fault.CodeOf(err); code != "" {
		return mcp.NewToolResultError(code + ": " + err.Error())
	}
	return mcp.NewToolResultError(err.Error())
}
