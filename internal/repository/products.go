package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/shop-service/internal/models"
)

const productColumns = `
		p.id, p.name, p.description, p.price, p.stock, p.category_id, p.created_at, p.updated_at,
		c.id, c.name, c.description, c.created_at, c.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{Category: &models.Category{}}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
		&p.Category.ID, &p.Category.Name, &p.Category.Description, &p.Category.CreatedAt, &p.Category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProducts returns all products together with their category
func (r *Repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := `SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product and its category by product id
func (r *Repository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if known := classify(err); known == ErrNotFound {
			return nil, known
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// CreateProduct inserts a product
func (r *Repository) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, stock, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.Price, p.Stock, p.CategoryID).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if known := classify(err); known == ErrReferenceViolation || known == ErrOutOfRange {
			return fmt.Errorf("failed to create product: %w", known)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// UpdateProduct sets the supplied fields in a single statement
func (r *Repository) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	p := &models.Product{}
	query := `
		UPDATE products
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    price = COALESCE($4, price),
		    stock = COALESCE($5, stock),
		    category_id = COALESCE($6, category_id),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, name, description, price, stock, category_id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, id, in.Name, in.Description, in.Price, in.Stock, in.CategoryID).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if known := classify(err); known != nil {
			return nil, fmt.Errorf("failed to update product: %w", known)
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes a product
func (r *Repository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
