// Package service defines the shared interface for book operations.
// Commands, extensions and the REST, MCP and TUI front-ends depend on this
// interface rather than on the concrete implementation in internal/document.
package service

import (
	"context"

	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/diff"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/search"
	"github.com/jpl-au/bookrab/internal/tag"
)

// Service defines all book operations.
//
// Extensions should use document.New() to obtain a Service implementation.
// Always call Close() when done (use defer).
//
// Example:
//
//	svc, err := document.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//	res, err := svc.Search(ctx, "lusiadas1", search.Query{Pattern: "Tejo"})
type Service interface {
	// Close releases history backends. Always defer this after New().
	Close() error

	// Root returns the book root directory.
	Root() string

	// List returns every book, sorted by title. A missing root is created
	// and yields an empty list.
	List(ctx context.Context) ([]book.Document, error)

	// ListByTags returns the books whose tags pass include and not exclude.
	ListByTags(ctx context.Context, include, exclude tag.Query) ([]book.Document, error)

	// Get returns one book's metadata.
	// Returns a fault.NotFound error if the book doesn't exist.
	Get(ctx context.Context, title string) (*book.Document, error)

	// Tags returns the sorted union of every book's tags.
	Tags(ctx context.Context) ([]string, error)

	// Text returns a book's full text.
	Text(ctx context.Context, title string) (string, error)

	// Upload stores text and tags under title, replacing an existing book.
	Upload(ctx context.Context, title, text string, tags []string) error

	// Diff compares the stored text of title with text. A missing book
	// diffs against the empty string.
	Diff(ctx context.Context, title, text string) (diff.Result, error)

	// Search runs q over one book and records it in history.
	Search(ctx context.Context, title string, q search.Query) (search.Results, error)

	// SearchByTags runs q over every book passing the tag filter and
	// records the batch in history once.
	SearchByTags(ctx context.Context, include, exclude tag.Query, q search.Query) ([]search.Results, error)

	// History returns every recorded search, oldest first.
	History(ctx context.Context) ([]history.Entry, error)
}
