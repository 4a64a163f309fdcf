package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storeadmin/internal/domain"
	"storeadmin/internal/errors"
)

type PostgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT id, name, image_url, is_published, created_at, updated_at
		FROM categories
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var cat domain.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.IsPublished, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (r *PostgresCategoryRepository) FindByID(ctx context.Context, id int) (*domain.Category, error) {
	query := `
		SELECT id, name, image_url, is_published, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var cat domain.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&cat.ID, &cat.Name, &cat.ImageURL, &cat.IsPublished, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying category by id: %w", err)
	}

	return &cat, nil
}

func (r *PostgresCategoryRepository) Insert(ctx context.Context, cat *domain.Category) (int, error) {
	query := `
		INSERT INTO categories (name, image_url, is_published)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int
	if err := r.db.QueryRowContext(ctx, query, cat.Name, cat.ImageURL, cat.IsPublished).Scan(&id); err != nil {
		return 0, fmt.Errorf("inserting category: %w", err)
	}

	return id, nil
}

func (r *PostgresCategoryRepository) Update(ctx context.Context, cat *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $1, image_url = $2, is_published = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, cat.Name, cat.ImageURL, cat.IsPublished, cat.ID)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", cat.ID))
	}

	return nil
}

func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("category with id %d not found", id))
	}

	return nil
}
