// mcp.go implements the "bookrab mcp" command for MCP server operation.
//
// Separated from serve.go because the transport is stdio, not HTTP: stdout
// carries JSON-RPC, so nothing else may be printed there and operational
// logs go to the rotating file only.

package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/cmd"
	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/logging"
	"github.com/jpl-au/bookrab/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio for LLM integration.

Tools: book_list, book_tags, book_read, book_upload, book_search, book_diff,
book_history, book_guide, book_config_get, book_config_set, plus any tools
contributed by extensions.

Example client config:
  {"command": "bookrab", "args": ["mcp"]}`,
		RunE: runMCP,
	}
}

func runMCP(c *cobra.Command, _ []string) error {
	svc, err := cmd.Service(c.Context())
	if err != nil {
		return err
	}
	cfg := svc.Config()

	logging.Init(logging.FromConfig(cfg))
	defer logging.Shutdown()

	tools, err := extension.Tools(mcp.BuiltinTools...)
	if err != nil {
		return err
	}
	return mcp.Serve(svc, cfg, tools)
}
