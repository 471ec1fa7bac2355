// checkpoint.go implements WAL checkpoint operations for SQLite.
//
// TRUNCATE mode flushes the WAL fully and removes the -wal/-shm files. It
// runs on Close so a history database left behind is a single file.

package store

import (
	"context"
	"fmt"
)

// Checkpoint writes all WAL data back to the main database file and truncates
// the WAL.
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}
