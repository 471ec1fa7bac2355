// search.go delegates searches to the orchestrator and announces them.

package document

import (
	"context"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/search"
	"github.com/jpl-au/bookrab/internal/tag"
)

// Search runs q over one book and records it.
func (s *Service) Search(ctx context.Context, title string, q search.Query) (search.Results, error) {
	res, err := s.search.Search(ctx, title, q)
	if err != nil {
		return search.Results{}, err
	}
	s.fireEvent(extension.SearchCompleteEvent{
		Title:   title,
		Pattern: q.Pattern,
		Books:   []string{title},
		Chunks:  len(res.Results),
	})
	return res, nil
}

// SearchByTags runs q over every book passing the filter and records the
// batch once.
func (s *Service) SearchByTags(ctx context.Context, include, exclude tag.Query, q search.Query) ([]search.Results, error) {
	results, err := s.search.SearchByTags(ctx, include, exclude, q)
	if err != nil {
		return nil, err
	}
	ev := extension.SearchCompleteEvent{Pattern: q.Pattern, Books: make([]string, len(results))}
	for i, r := range results {
		ev.Books[i] = r.Title
		ev.Chunks += len(r.Results)
	}
	s.fireEvent(ev)
	return results, nil
}

// History returns every recorded search, oldest first.
func (s *Service) History(ctx context.Context) ([]history.Entry, error) {
	return s.history.ReadAll(ctx)
}
