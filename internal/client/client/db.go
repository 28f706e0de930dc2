package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/linkkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/linkkeeper/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// RunMigrations applies the embedded migrations to db. It is idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// InitDatabase opens (creating if needed) the SQLite state file at path and
// migrates it. The parent directory is created when missing.
func InitDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// One connection keeps in-memory databases coherent and serialises writers.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
