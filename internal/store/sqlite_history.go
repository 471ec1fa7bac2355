// sqlite_history.go implements history.Store on SQLite.

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/search"
)

// Record inserts one search_history row per result and its chunks, all in
// a single transaction.
func (s *SQLiteStore) Record(ctx context.Context, pattern string, results []search.Results) error {
	if len(results) == 0 {
		return nil
	}
	date := history.Now().UnixMicro()
	err := s.Tx(ctx, func(tx *sql.Tx) error {
		for _, r := range results {
			res, err := tx.ExecContext(ctx,
				`INSERT INTO search_history (title, pattern, date) VALUES (?, ?, ?)`,
				r.Title, pattern, date)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for pos, chunk := range r.Results {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO search_results (search_history_id, position, result) VALUES (?, ?, ?)`,
					id, pos, chunk); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fault.Backend("record sqlite history", err)
	}
	return nil
}

// ReadAll returns every entry in insertion order.
func (s *SQLiteStore) ReadAll(ctx context.Context) ([]history.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.id, h.title, h.pattern, h.date, r.result
		FROM search_history h
		LEFT JOIN search_results r ON r.search_history_id = h.id
		ORDER BY h.id, r.position`)
	if err != nil {
		return nil, fault.Backend("read sqlite history", err)
	}
	defer rows.Close()

	var c collector
	for rows.Next() {
		var (
			row    entryRow
			micros int64
			result sql.NullString
		)
		if err := rows.Scan(&row.id, &row.title, &row.pattern, &micros, &result); err != nil {
			return nil, fault.Backend("scan sqlite history", err)
		}
		row.date = time.UnixMicro(micros)
		if result.Valid {
			c.add(row, &result.String)
		} else {
			c.add(row, nil)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Backend("read sqlite history", err)
	}
	return c.result(), nil
}
