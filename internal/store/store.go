// Package store persists search history in relational databases.
//
// Two backends share one table layout: a row per recorded search result in
// search_history, and a child row per result chunk in search_results,
// ordered by position. SQLiteStore embeds the database in a local file;
// PGStore talks to PostgreSQL. Both satisfy history.Store.
package store

import (
	"time"

	"github.com/jpl-au/bookrab/internal/history"
)

// Compile-time interface compliance checks.
var (
	_ history.Store = (*SQLiteStore)(nil)
	_ history.Store = (*PGStore)(nil)
)

// entryRow is one search_history row joined with its result chunks.
type entryRow struct {
	id      int64
	title   string
	pattern string
	date    time.Time
}

// collector folds joined (history, result) rows into entries. Rows must be
// ordered by history id, then result position. A NULL result marks an entry
// without chunks.
type collector struct {
	entries []history.Entry
	lastID  int64
}

func (c *collector) add(r entryRow, result *string) {
	if len(c.entries) == 0 || r.id != c.lastID {
		c.entries = append(c.entries, history.Entry{
			Title:   r.title,
			Pattern: r.pattern,
			Results: []string{},
			Date:    r.date.UTC(),
		})
		c.lastID = r.id
	}
	if result != nil {
		e := &c.entries[len(c.entries)-1]
		e.Results = append(e.Results, *result)
	}
}

func (c *collector) result() []history.Entry {
	if c.entries == nil {
		return []history.Entry{}
	}
	return c.entries
}
