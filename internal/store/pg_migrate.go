// pg_migrate.go applies the embedded PostgreSQL migrations.
//
// golang-migrate drives the schema through a database/sql connection on the
// lib/pq driver; the pgx pool in pg.go is only used once migrations are done.

package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	gomigrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	// Register the "postgres" database/sql driver used by migrations.
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrations embed.FS

// migrationsTable keeps bookrab's version row apart from other tools sharing
// the database.
const migrationsTable = "bookrab_schema_migrations"

// Migrate applies every pending migration to the database at url.
func Migrate(url string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	m, err := gomigrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, gomigrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
