package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Dan9191/shop-service/internal/auth"
	"github.com/Dan9191/shop-service/internal/models"
	"github.com/Dan9191/shop-service/internal/repository"
	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateIdentity  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
)

// Column limits: NUMERIC(12,2) for money, INTEGER for stock
const (
	maxAmount = 9999999999.99
	maxStock  = math.MaxInt32
)

const msgOutOfRange = "Valor fora do intervalo permitido."

// ValidationError carries a message that is safe to show to clients
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// UserStore persists users
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

// CategoryStore persists categories
type CategoryStore interface {
	CreateCategory(ctx context.Context, c *models.Category) error
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id int64, in models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// ProductStore persists products
type ProductStore interface {
	CreateProduct(ctx context.Context, p *models.Product) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, id int64, in models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// OrderStore persists orders; single-order access is always scoped to an owner
type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id, userID int64) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	UpdateOrder(ctx context.Context, id, userID int64, in models.OrderInput) (*models.Order, error)
	DeleteOrder(ctx context.Context, id, userID int64) error
}

// Store is everything the service needs from persistence
type Store interface {
	UserStore
	CategoryStore
	ProductStore
	OrderStore
}

// Service handles business logic
type Service struct {
	store  Store
	hasher *auth.PasswordHasher
	tokens *auth.TokenIssuer
	log    *logrus.Logger
}

// NewService initializes a new service
func NewService(store Store, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer, log *logrus.Logger) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens, log: log}
}

// storeErr turns repository absence into ErrNotFound and wraps everything else
func storeErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repository.ErrOutOfRange) {
		return invalid(msgOutOfRange)
	}
	return fmt.Errorf("%s: %w", op, err)
}
