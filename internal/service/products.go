package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Dan9191/shop-service/internal/models"
	"github.com/Dan9191/shop-service/internal/repository"
)

func validateProduct(in models.ProductInput, create bool) error {
	if create && (in.Name == nil || in.Price == nil || in.CategoryID == nil) {
		return invalid("Nome, preço e categoria são obrigatórios.")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("Nome é obrigatório.")
	}
	if in.Price != nil && *in.Price < 0 {
		return invalid("Preço não pode ser negativo.")
	}
	if in.Price != nil && *in.Price > maxAmount {
		return invalid(msgOutOfRange)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return invalid("Estoque não pode ser negativo.")
	}
	if in.Stock != nil && *in.Stock > maxStock {
		return invalid(msgOutOfRange)
	}
	if in.CategoryID != nil && *in.CategoryID <= 0 {
		return invalid("Categoria inválida.")
	}
	return nil
}

func productStoreErr(op string, err error) error {
	if errors.Is(err, repository.ErrReferenceViolation) {
		return invalid("Categoria inválida.")
	}
	return storeErr(op, err)
}

// CreateProduct stores a new product
func (s *Service) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	if err := validateProduct(in, true); err != nil {
		return nil, err
	}
	p := &models.Product{
		Name:       *in.Name,
		Price:      *in.Price,
		CategoryID: *in.CategoryID,
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return nil, productStoreErr("failed to create product", err)
	}
	s.log.Infof("Product created: %d", p.ID)
	return p, nil
}

// GetProduct returns a product with its category
func (s *Service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, storeErr("failed to get product", err)
	}
	return p, nil
}

// ListProducts returns all products with their categories
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, storeErr("failed to list products", err)
	}
	return products, nil
}

// UpdateProduct changes the supplied fields of a product
func (s *Service) UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	if err := validateProduct(in, false); err != nil {
		return nil, err
	}
	p, err := s.store.UpdateProduct(ctx, id, in)
	if err != nil {
		return nil, productStoreErr("failed to update product", err)
	}
	return p, nil
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return storeErr("failed to delete product", err)
	}
	s.log.Infof("Product deleted: %d", id)
	return nil
}
