package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/icanacademy/eduspace/internal/db"
)

// SQLiteStateRepo implements StateRepo using a SQLite database.
type SQLiteStateRepo struct {
	db db.DBTX
}

// NewSQLiteStateRepo creates a new SQLiteStateRepo.
func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) Get(ctx context.Context, key string) (string, error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key)

	var value string
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("state key %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("scanning state key %q: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteStateRepo) Put(ctx context.Context, key, value string) error {
	query := `INSERT OR REPLACE INTO app_state (key, value, updated_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("storing state key %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteStateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting state key %q: %w", key, err)
	}
	return nil
}
