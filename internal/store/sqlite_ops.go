// sqlite_ops.go provides SQLite connection management and low-level operations.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver registration)
// from the history queries. This is the only file that imports the SQLite
// driver.
//
// Design: WAL mode with a busy timeout lets the REST server and a CLI
// invocation record history into the same file concurrently. Pragmas go in
// the DSN because a plain Exec would only reach one pooled connection.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	// Register sqlite driver
	_ "modernc.org/sqlite"

	"github.com/jpl-au/bookrab/internal/fault"
)

// SQLiteStore records search history in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// historyPragmas apply to every pooled connection.
var historyPragmas = []string{
	// Concurrent readers while writing. Creates -wal and -shm files.
	"journal_mode(WAL)",
	// Wait up to 5s for a lock rather than failing with "database is locked".
	"busy_timeout(5000)",
	// With WAL, NORMAL is safe against corruption; only the last
	// transaction can be lost on OS crash.
	"synchronous(NORMAL)",
	"foreign_keys(ON)",
}

// DSN builds a modernc sqlite data source name for path. The driver runs
// each _pragma on every new connection, so settings hold across the
// database/sql pool.
func DSN(path string, pragmas ...string) string {
	q := url.Values{}
	for _, p := range pragmas {
		q.Add("_pragma", p)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// Open opens the SQLite database file at path and returns a configured
// SQLiteStore. Call Init before first use and Close when done.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", DSN(path, historyPragmas...))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	// sql.Open is lazy; connect now so a bad path or pragma fails here.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// OpenInit opens path and creates the schema.
func OpenInit(path string) (*SQLiteStore, error) {
	s, err := Open(path)
	if err != nil {
		return nil, fault.Backend("open sqlite history", err)
	}
	if err := s.Init(); err != nil {
		s.db.Close()
		return nil, fault.Backend("init sqlite history", err)
	}
	return s, nil
}

// Init brings the history schema up to date. Safe to call on every open.
func (s *SQLiteStore) Init() error {
	return migrate(context.Background(), s.db)
}

// Close checkpoints the WAL and releases the connection.
func (s *SQLiteStore) Close() error {
	ckErr := s.Checkpoint(context.Background())
	if err := s.db.Close(); err != nil {
		return err
	}
	return ckErr
}

// DB exposes the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Tx executes fn within a database transaction, handling Begin/Commit/Rollback.
// If fn returns an error the transaction is rolled back; otherwise it is
// committed. Context cancellation aborts the transaction at the next call.
//
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    if _, err := tx.ExecContext(ctx, `INSERT ...`); err != nil {
//	        return err  // triggers rollback
//	    }
//	    return nil  // triggers commit
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
