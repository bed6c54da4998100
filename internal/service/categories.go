package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Dan9191/shop-service/internal/models"
	"github.com/Dan9191/shop-service/internal/repository"
)

func validateCategory(in models.CategoryInput, create bool) error {
	if create && in.Name == nil {
		return invalid("Nome é obrigatório.")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("Nome é obrigatório.")
	}
	return nil
}

// CreateCategory stores a new category
func (s *Service) CreateCategory(ctx context.Context, in models.CategoryInput) (*models.Category, error) {
	if err := validateCategory(in, true); err != nil {
		return nil, err
	}
	c := &models.Category{Name: *in.Name}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return nil, storeErr("failed to create category", err)
	}
	s.log.Infof("Category created: %d", c.ID)
	return c, nil
}

// GetCategory returns one category
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, storeErr("failed to get category", err)
	}
	return c, nil
}

// ListCategories returns all categories
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, storeErr("failed to list categories", err)
	}
	return categories, nil
}

// UpdateCategory changes the supplied fields of a category
func (s *Service) UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	if err := validateCategory(in, false); err != nil {
		return nil, err
	}
	c, err := s.store.UpdateCategory(ctx, id, in)
	if err != nil {
		return nil, storeErr("failed to update category", err)
	}
	return c, nil
}

// DeleteCategory removes a category that no product references
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReferenceViolation) {
			return invalid("Categoria possui produtos.")
		}
		return storeErr("failed to delete category", err)
	}
	s.log.Infof("Category deleted: %d", id)
	return nil
}
