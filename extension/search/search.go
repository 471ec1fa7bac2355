// Package search provides regex searching over the book collection.
// Registers commands: search.
package search

import (
	"github.com/spf13/cobra"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/service"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the search extension.
type Extension struct {
	svc service.Service
	cfg *config.Config
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "search".
func (e *Extension) Name() string { return "search" }

// Init connects to the shared service for search operations.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	e.cfg = ctx.Config()
	return nil
}

// Commands returns the search command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSearchCmd(),
	}
}

// MCPTools returns nil - book_search is in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}
