// Package validate provides input validation for bookrab's domain types.
//
// Validation sits at the boundary between user input (CLI, REST, MCP, TUI)
// and the on-disk book layout. Each function returns nil on success or an
// error wrapping one of the sentinels in errors.go.
//
// Titles become directory names under the book root, so they are checked for
// separators and traversal. Tags are free-form labels and only clearly broken
// values are rejected.
//
//	if errors.Is(err, validate.ErrInvalidTitle) {
//	    // handle invalid title
//	}
package validate
