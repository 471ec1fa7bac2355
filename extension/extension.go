// Package extension is bookrab's plugin layer. Each front-end feature (book
// management, search, history) is an extension that registers itself at
// init time and contributes cobra commands, MCP tools and event handlers.
// extension/all imports the standard set.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for bookrab extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions can perform setup once the service exists.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Storeless extensions list commands that must run before, or without, the
// shared book service: init and guide work with no history backend, and
// serve/mcp/tui open the service themselves after configuring logging.
type Storeless interface {
	NoStoreCommands() []string
}
