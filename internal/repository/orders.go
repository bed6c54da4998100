package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/shop-service/internal/models"
)

const orderColumns = `
		o.id, o.user_id, o.total, o.status, o.created_at, o.updated_at,
		u.id, u.name, u.email`

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{User: &models.UserSummary{}}
	err := row.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		&o.User.ID, &o.User.Name, &o.User.Email)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrders returns every order with its owner
func (r *Repository) ListOrders(ctx context.Context) ([]models.Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.id`
	return r.queryOrders(ctx, query)
}

// ListOrdersByUser returns the orders owned by userID
func (r *Repository) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.id`
	return r.queryOrders(ctx, query, userID)
}

// GetOrder retrieves an order by id, restricted to orders owned by userID
func (r *Repository) GetOrder(ctx context.Context, id, userID int64) (*models.Order, error) {
	query := `SELECT` + orderColumns + `
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1 AND o.user_id = $2`
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if known := classify(err); known == ErrNotFound {
			return nil, known
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return o, nil
}

// CreateOrder inserts an order for order.UserID
func (r *Repository) CreateOrder(ctx context.Context, o *models.Order) error {
	query := `
		INSERT INTO orders (user_id, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, o.UserID, o.Total, o.Status).
		Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if known := classify(err); known == ErrReferenceViolation || known == ErrOutOfRange {
			return fmt.Errorf("failed to create order: %w", known)
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateOrder sets the supplied fields on an order owned by userID
func (r *Repository) UpdateOrder(ctx context.Context, id, userID int64, in models.OrderInput) (*models.Order, error) {
	o := &models.Order{}
	query := `
		UPDATE orders
		SET total = COALESCE($3, total),
		    status = COALESCE($4, status),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, total, status, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, id, userID, in.Total, in.Status).
		Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		switch known := classify(err); known {
		case ErrNotFound:
			return nil, known
		case ErrOutOfRange:
			return nil, fmt.Errorf("failed to update order: %w", known)
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return o, nil
}

// DeleteOrder removes an order owned by userID
func (r *Repository) DeleteOrder(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
