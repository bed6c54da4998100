package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/shop-service/internal/models"
)

// CreateCategory inserts a category
func (r *Repository) CreateCategory(ctx context.Context, c *models.Category) error {
	query := `
		INSERT INTO categories (name, description, created_at, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Description).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by id
func (r *Repository) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c := &models.Category{}
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if known := classify(err); known == ErrNotFound {
			return nil, known
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// ListCategories returns all categories
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	query := `
		SELECT id, name, description, created_at, updated_at
		FROM categories
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory sets the supplied fields in a single statement
func (r *Repository) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	c := &models.Category{}
	query := `
		UPDATE categories
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, name, description, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, id, in.Name, in.Description).
		Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if known := classify(err); known == ErrNotFound {
			return nil, known
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category; categories still holding products are kept
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if known := classify(err); known == ErrReferenceViolation {
			return fmt.Errorf("failed to delete category: %w", known)
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
