// read.go implements the read-only book operations.

package document

import (
	"context"
	"errors"

	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/diff"
	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/tag"
)

// List returns every book, sorted by title.
func (s *Service) List(ctx context.Context) ([]book.Document, error) {
	return s.books.List(ctx)
}

// ListByTags returns the books passing the tag filter.
func (s *Service) ListByTags(ctx context.Context, include, exclude tag.Query) ([]book.Document, error) {
	return s.books.ListByTags(ctx, include, exclude)
}

// Get returns one book's metadata.
func (s *Service) Get(ctx context.Context, title string) (*book.Document, error) {
	return s.books.Get(ctx, title)
}

// Tags returns the union of all book tags.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return s.books.Tags(ctx)
}

// Text returns a book's full text.
func (s *Service) Text(ctx context.Context, title string) (string, error) {
	return s.books.Text(ctx, title)
}

// Diff compares the stored text of title with text.
func (s *Service) Diff(ctx context.Context, title, text string) (diff.Result, error) {
	old, err := s.books.Text(ctx, title)
	if err != nil && !errors.Is(err, fault.ErrNotFound) {
		return diff.Result{}, err
	}
	return diff.Compute(old, text, title+" (stored)", title+" (upload)"), nil
}
