// Package book provides the book extension for the collection itself.
// Registers commands: upload, import, export, ls, tags, cat.
//
// Each command file is separated to isolate its specific flag handling and
// output formatting logic.

package book

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the book extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "book".
func (e *Extension) Name() string { return "book" }

// Init connects to the shared service.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the collection commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newUploadCmd(),
		e.newImportCmd(),
		e.newExportCmd(),
		e.newLsCmd(),
		e.newTagsCmd(),
		e.newCatCmd(),
	}
}

// MCPTools returns nil - book MCP tools are provided by internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
