package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"storeadmin/internal/domain"
)

// PostgresBrandingRepository keeps the branding document as one JSONB
// row. The table holds at most a single row; saving upserts it.
type PostgresBrandingRepository struct {
	db *sql.DB
}

func NewPostgresBrandingRepository(db *sql.DB) *PostgresBrandingRepository {
	return &PostgresBrandingRepository{db: db}
}

func (r *PostgresBrandingRepository) Get(ctx context.Context) (*domain.Branding, error) {
	query := `SELECT id, document, updated_at FROM branding ORDER BY id LIMIT 1`

	var (
		id        int
		doc       []byte
		updatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx, query).Scan(&id, &doc, &updatedAt)
	if err == sql.ErrNoRows {
		// A fresh install has no branding yet; serve an empty document.
		return &domain.Branding{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying branding: %w", err)
	}

	var branding domain.Branding
	if err := json.Unmarshal(doc, &branding); err != nil {
		return nil, fmt.Errorf("decoding branding document: %w", err)
	}

	// The document may carry stale id/updated_at values from the client
	// that saved it; the columns are authoritative.
	branding.ID = id
	branding.UpdatedAt = updatedAt

	return &branding, nil
}

func (r *PostgresBrandingRepository) Save(ctx context.Context, branding *domain.Branding) error {
	doc, err := json.Marshal(branding)
	if err != nil {
		return fmt.Errorf("encoding branding document: %w", err)
	}

	query := `
		INSERT INTO branding (id, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`
	if _, err := r.db.ExecContext(ctx, query, doc); err != nil {
		return fmt.Errorf("saving branding: %w", err)
	}

	return nil
}
