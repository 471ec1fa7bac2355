// pg.go implements history.Store on PostgreSQL through a pgx pool.
//
// Schema changes are applied by Migrate (pg_migrate.go) before the pool is
// used, so the store never creates tables itself.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/search"
)

// PGConfig configures a PostgreSQL history store.
type PGConfig struct {
	URL            string
	MaxConns       int32         // 0 means 4
	ConnectTimeout time.Duration // 0 means 10s
}

// PGStore records search history in PostgreSQL.
type PGStore struct {
	pool *pgxpool.Pool
}

// OpenPG migrates the database at cfg.URL and opens a connection pool.
func OpenPG(ctx context.Context, cfg PGConfig) (*PGStore, error) {
	if cfg.URL == "" {
		return nil, fault.Backend("open postgres history", fmt.Errorf("database url is required"))
	}
	if cfg.MaxConns == 0 {
		cfg.MaxConns = 4
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	if err := Migrate(cfg.URL); err != nil {
		return nil, fault.Backend("migrate postgres history", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fault.Backend("parse database url", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	timeoutCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(timeoutCtx, poolCfg)
	if err != nil {
		return nil, fault.Backend("connect postgres", err)
	}
	if err := pool.Ping(timeoutCtx); err != nil {
		pool.Close()
		return nil, fault.Backend("ping postgres", err)
	}
	return &PGStore{pool: pool}, nil
}

// Record inserts one search_history row per result and copies its chunks,
// all in one transaction.
func (p *PGStore) Record(ctx context.Context, pattern string, results []search.Results) error {
	if len(results) == 0 {
		return nil
	}
	date := history.Now()
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for _, r := range results {
			var id int64
			if err := tx.QueryRow(ctx,
				`INSERT INTO search_history (title, pattern, date) VALUES ($1, $2, $3) RETURNING id`,
				r.Title, pattern, date).Scan(&id); err != nil {
				return err
			}
			if len(r.Results) == 0 {
				continue
			}
			rows := make([][]any, len(r.Results))
			for pos, chunk := range r.Results {
				rows[pos] = []any{id, pos, chunk}
			}
			if _, err := tx.CopyFrom(ctx,
				pgx.Identifier{"search_results"},
				[]string{"search_history_id", "position", "result"},
				pgx.CopyFromRows(rows)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fault.Backend("record postgres history", err)
	}
	return nil
}

// ReadAll returns every entry in insertion order.
func (p *PGStore) ReadAll(ctx context.Context) ([]history.Entry, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT h.id, h.title, h.pattern, h.date, r.result
		FROM search_history h
		LEFT JOIN search_results r ON r.search_history_id = h.id
		ORDER BY h.id, r.position`)
	if err != nil {
		return nil, fault.Backend("read postgres history", err)
	}
	defer rows.Close()

	var c collector
	for rows.Next() {
		var (
			row    entryRow
			result *string
		)
		if err := rows.Scan(&row.id, &row.title, &row.pattern, &row.date, &result); err != nil {
			return nil, fault.Backend("scan postgres history", err)
		}
		c.add(row, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fault.Backend("read postgres history", err)
	}
	return c.result(), nil
}

// Close releases the pool.
func (p *PGStore) Close() error {
	p.pool.Close()
	return nil
}
