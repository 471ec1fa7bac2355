// Package history records completed searches.
//
// A Store appends one Entry per searched book and reads every entry back in
// insertion order. Backends are interchangeable: a JSON file, the
// relational stores in internal/store, or several at once through Multi.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jpl-au/bookrab/internal/search"
)

// Entry is one recorded search result for one book.
type Entry struct {
	Title   string    `json:"title"`
	Pattern string    `json:"pattern"`
	Results []string  `json:"results"`
	Date    time.Time `json:"date"`
}

// Store persists and reads search history.
type Store interface {
	// Record appends one entry per element of results, all stamped with the
	// same date.
	Record(ctx context.Context, pattern string, results []search.Results) error
	// ReadAll returns every recorded entry, oldest first.
	ReadAll(ctx context.Context) ([]Entry, error)
	Close() error
}

// Entries expands a Record call into entries stamped with date.
func Entries(pattern string, results []search.Results, date time.Time) []Entry {
	out := make([]Entry, len(results))
	for i, r := range results {
		chunks := r.Results
		if chunks == nil {
			chunks = []string{}
		}
		out[i] = Entry{Title: r.Title, Pattern: pattern, Results: chunks, Date: date}
	}
	return out
}

// Now is the clock used to stamp entries. Tests replace it.
var Now = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// Nop discards history. Used when no backend is configured.
type Nop struct{}

func (Nop) Record(context.Context, string, []search.Results) error { return nil }
func (Nop) ReadAll(context.Context) ([]Entry, error)               { return []Entry{}, nil }
func (Nop) Close() error                                            { return nil }

// Multi mirrors history into several stores.
//
// Record writes to every store even when one fails; failures are joined.
// Stores are not rolled back, so they may diverge. ReadAll reads the first
// store only.
type Multi []Store

func (m Multi) Record(ctx context.Context, pattern string, results []search.Results) error {
	var errs []error
	for _, s := range m {
		if err := s.Record(ctx, pattern, results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) ReadAll(ctx context.Context) ([]Entry, error) {
	if len(m) == 0 {
		return []Entry{}, nil
	}
	return m[0].ReadAll(ctx)
}

func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close history: %w", err))
		}
	}
	return errors.Join(errs...)
}

var (
	_ Store = Nop{}
	_ Store = Multi(nil)
	_ Store = (*JSONFile)(nil)

	_ search.Recorder = Store(nil)
)
