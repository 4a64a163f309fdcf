package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresPrefsRepository persists dashboard preferences as key/value
// rows. Values are opaque JSON documents.
type PostgresPrefsRepository struct {
	db *sql.DB
}

func NewPostgresPrefsRepository(db *sql.DB) *PostgresPrefsRepository {
	return &PostgresPrefsRepository{db: db}
}

func (r *PostgresPrefsRepository) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM preferences WHERE key = $1`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying preference %q: %w", key, err)
	}

	return value, nil
}

func (r *PostgresPrefsRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO preferences (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("saving preference %q: %w", key, err)
	}

	return nil
}
