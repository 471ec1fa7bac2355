// search.go implements the search orchestrator.
//
// The orchestrator searches one book by title, or every book that survives
// a tag filter. Each call is one history transaction: Search records a
// single Results, SearchByTags records the whole batch once after every book
// has been searched. A failure on any book aborts the batch without
// recording it.

package search

import (
	"context"
	"errors"
	"io/fs"

	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/grep"
	"github.com/jpl-au/bookrab/internal/tag"
	"github.com/jpl-au/bookrab/internal/validate"
)

// Library is the part of the book store the orchestrator reads.
type Library interface {
	TextPath(title string) string
	ListByTags(ctx context.Context, include, exclude tag.Query) ([]book.Document, error)
}

// Recorder persists completed searches. history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, pattern string, results []Results) error
}

// Options tunes the orchestrator.
type Options struct {
	// Workers bounds how many books SearchByTags searches at once.
	// Values below 2 search sequentially.
	Workers int
	// MaxLineLength bounds a single line; 0 uses the engine default.
	MaxLineLength int
}

// Orchestrator runs searches against a Library and records them.
type Orchestrator struct {
	books    Library
	recorder Recorder
	opts     Options
}

// New returns an Orchestrator. A nil recorder disables history.
func New(books Library, rec Recorder, opts Options) *Orchestrator {
	return &Orchestrator{books: books, recorder: rec, opts: opts}
}

// Search runs q over the book called title and records the result.
func (o *Orchestrator) Search(ctx context.Context, title string, q Query) (Results, error) {
	m, s, err := o.prepare(q)
	if err != nil {
		return Results{}, err
	}
	res, err := o.searchBook(ctx, title, m, s)
	if err != nil {
		return Results{}, err
	}
	if err := o.record(ctx, q.Pattern, []Results{res}); err != nil {
		return Results{}, err
	}
	return res, nil
}

// SearchByTags runs q over every book passing the tag filter, in listing
// order, and records the batch as one entry set.
func (o *Orchestrator) SearchByTags(ctx context.Context, include, exclude tag.Query, q Query) ([]Results, error) {
	m, s, err := o.prepare(q)
	if err != nil {
		return nil, err
	}
	docs, err := o.books.ListByTags(ctx, include, exclude)
	if err != nil {
		return nil, err
	}

	results := make([]Results, len(docs))
	if o.opts.Workers < 2 || len(docs) < 2 {
		for i, d := range docs {
			r, err := o.searchBook(ctx, d.Title, m, s)
			if err != nil {
				return nil, err
			}
			results[i] = r
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(o.opts.Workers)
		for i, d := range docs {
			g.Go(func() error {
				r, err := o.searchBook(gctx, d.Title, m, s)
				if err != nil {
					return err
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	if err := o.record(ctx, q.Pattern, results); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Orchestrator) prepare(q Query) (*grep.Matcher, *grep.Searcher, error) {
	if err := q.Validate(); err != nil {
		return nil, nil, err
	}
	m, err := grep.Compile(q.Pattern, q.matcherOptions())
	if err != nil {
		return nil, nil, err
	}
	return m, &grep.Searcher{Before: q.Before, After: q.After, MaxLineLength: o.opts.MaxLineLength}, nil
}

// searchBook annotates one book without recording it.
func (o *Orchestrator) searchBook(ctx context.Context, title string, m *grep.Matcher, s *grep.Searcher) (Results, error) {
	if err := validate.StoredTitle(title); err != nil {
		return Results{}, fault.Input(fault.CodeBadInput, "search", title, err)
	}
	path := o.books.TextPath(title)
	res := Results{Title: title}
	err := s.SearchFile(ctx, m, path, newAnnotator(m, &res, path))
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, fs.ErrNotExist):
		return Results{}, fault.NotFound(title)
	case fault.KindOf(err) != 0, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Results{}, err
	default:
		return Results{}, fault.IO(fault.CodeSearchFailed, "search", path, err)
	}
}

func (o *Orchestrator) record(ctx context.Context, pattern string, results []Results) error {
	if o.recorder == nil {
		return nil
	}
	return o.recorder.Record(ctx, pattern, results)
}
