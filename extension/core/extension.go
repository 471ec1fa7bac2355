// Package core provides the core extension for bookrab.
// It registers commands: init, config, guide, llm, serve, mcp, tui, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension = (*Extension)(nil)
	_ extension.Storeless = (*Extension)(nil)
)

// Name returns "core" - this extension provides the workspace and server commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newInitCmd(),
		newConfigCmd(),
		newGuideCmd(),
		newLlmCmd(),
		newServeCmd(),
		newMCPCmd(),
		newTUICmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil - the built-in tools live in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// NoStoreCommands returns commands that manage their own service lifecycle.
// serve, mcp and tui set up operational logging before opening the service.
// version displays build info and needs nothing.
func (e *Extension) NoStoreCommands() []string {
	return []string{"serve", "mcp", "tui", "version"}
}
