package service

import (
	"context"

	"github.com/Dan9191/shop-service/internal/models"
)

func validateOrder(in models.OrderInput, create bool) error {
	if create && in.Total == nil {
		return invalid("Total é obrigatório.")
	}
	if in.Total != nil && *in.Total < 0 {
		return invalid("Total não pode ser negativo.")
	}
	if in.Total != nil && *in.Total > maxAmount {
		return invalid(msgOutOfRange)
	}
	if in.Status != nil && !models.ValidOrderStatus(*in.Status) {
		return invalid("Status inválido.")
	}
	return nil
}

// CreateOrder places an order owned by userID
func (s *Service) CreateOrder(ctx context.Context, userID int64, in models.OrderInput) (*models.Order, error) {
	if err := validateOrder(in, true); err != nil {
		return nil, err
	}
	o := &models.Order{
		UserID: userID,
		Total:  *in.Total,
		Status: models.OrderPending,
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	if err := s.store.CreateOrder(ctx, o); err != nil {
		return nil, storeErr("failed to create order", err)
	}
	s.log.Infof("Order %d created for user %d", o.ID, userID)
	return o, nil
}

// GetOrder returns an order owned by userID
func (s *Service) GetOrder(ctx context.Context, id, userID int64) (*models.Order, error) {
	o, err := s.store.GetOrder(ctx, id, userID)
	if err != nil {
		return nil, storeErr("failed to get order", err)
	}
	return o, nil
}

// ListOrders returns every order
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, storeErr("failed to list orders", err)
	}
	return orders, nil
}

// ListUserOrders returns only the orders owned by userID
func (s *Service) ListUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	orders, err := s.store.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("failed to list user orders", err)
	}
	return orders, nil
}

// UpdateOrder changes the supplied fields of an order owned by userID
func (s *Service) UpdateOrder(ctx context.Context, id, userID int64, in models.OrderInput) (*models.Order, error) {
	if err := validateOrder(in, false); err != nil {
		return nil, err
	}
	o, err := s.store.UpdateOrder(ctx, id, userID, in)
	if err != nil {
		return nil, storeErr("failed to update order", err)
	}
	return o, nil
}

// DeleteOrder removes an order owned by userID
func (s *Service) DeleteOrder(ctx context.Context, id, userID int64) error {
	if err := s.store.DeleteOrder(ctx, id, userID); err != nil {
		return storeErr("failed to delete order", err)
	}
	s.log.Infof("Order %d deleted by user %d", id, userID)
	return nil
}
