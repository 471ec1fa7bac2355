// schema.go applies the embedded SQLite history schema.
//
// Files under sql/ are numbered and applied in name order. PRAGMA
// user_version records how many have run, so reopening a history database
// only applies the files it has not seen. Each file runs in its own
// transaction together with the version bump.

package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed sql/*.sql
var schemas embed.FS

// schemaFiles returns the embedded schema file names in apply order.
func schemaFiles() ([]string, error) {
	entries, err := fs.ReadDir(schemas, "sql")
	if err != nil {
		return nil, fmt.Errorf("read schema directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

// schemaVersion reads PRAGMA user_version.
func schemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// migrate applies every schema file newer than the database's version.
func migrate(ctx context.Context, db *sql.DB) error {
	names, err := schemaFiles()
	if err != nil {
		return err
	}
	v, err := schemaVersion(ctx, db)
	if err != nil {
		return err
	}
	if v > len(names) {
		return fmt.Errorf("history schema version %d is newer than this build (%d)", v, len(names))
	}

	for i := v; i < len(names); i++ {
		data, err := schemas.ReadFile("sql/" + names[i])
		if err != nil {
			return fmt.Errorf("read %s: %w", names[i], err)
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin %s: %w", names[i], err)
		}
		if _, err := tx.ExecContext(ctx, string(data)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec %s: %w", names[i], err)
		}
		// PRAGMA does not take bind parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("set schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", names[i], err)
		}
	}
	return nil
}
