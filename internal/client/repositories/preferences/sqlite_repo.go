package preferences

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/linkkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, key Key) (string, bool, error) {
	return get(ctx, r.db, key)
}

func (r *SQLiteRepository) Set(ctx context.Context, key Key, value string) error {
	return set(ctx, r.db, key, value)
}

// Seed writes every default whose key is still absent, in one transaction.
// Existing values are left untouched.
func (r *SQLiteRepository) Seed(ctx context.Context, defaults map[Key]string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for k, v := range defaults {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO preferences (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO NOTHING
			`, string(k), v); err != nil {
				return fmt.Errorf("failed to seed preference[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context, key Key) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, string(key))
	if err != nil {
		return fmt.Errorf("failed to delete preference[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[Key]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	result := make(map[Key]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference row: %w", err)
		}
		result[Key(key)] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate preference rows: %w", err)
	}

	return result, nil
}

func get(ctx context.Context, db dbx.DBTX, key Key) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get preference[%s]: %w", key, err)
	}
	return value, true, nil
}

func set(ctx context.Context, db dbx.DBTX, key Key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value)
	if err != nil {
		return fmt.Errorf("failed to set preference[%s]: %w", key, err)
	}
	return nil
}
