// Package repotest provides an in-memory store with the same constraints as
// the postgres schema, for tests of the layers above the repository.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dan9191/shop-service/internal/models"
	"github.com/Dan9191/shop-service/internal/repository"
)

// Store is a concurrency safe in-memory store
type Store struct {
	mu         sync.RWMutex
	nextID     int64
	users      map[int64]models.User
	categories map[int64]models.Category
	products   map[int64]models.Product
	orders     map[int64]models.Order
	calls      int
}

// New returns an empty store
func New() *Store {
	return &Store{
		users:      make(map[int64]models.User),
		categories: make(map[int64]models.Category),
		products:   make(map[int64]models.Product),
		orders:     make(map[int64]models.Order),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// CreateUser implements service.UserStore
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	user.ID = s.id()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[user.ID] = *user
	return nil
}

// FindUserByEmail implements service.UserStore
func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListUsers implements service.UserStore
func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	users := make([]models.User, 0, len(s.users))
	for _, id := range sortedKeys(s.users) {
		u := s.users[id]
		u.PasswordHash = ""
		users = append(users, u)
	}
	return users, nil
}

// CountUsersByEmail reports how many stored users have email
func (s *Store) CountUsersByEmail(email string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, u := range s.users {
		if u.Email == email {
			n++
		}
	}
	return n
}

// CreateCategory implements service.CategoryStore
func (s *Store) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	now := time.Now().UTC()
	c.ID = s.id()
	c.CreatedAt, c.UpdatedAt = now, now
	s.categories[c.ID] = *c
	return nil
}

// GetCategory implements service.CategoryStore
func (s *Store) GetCategory(_ context.Context, id int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

// ListCategories implements service.CategoryStore
func (s *Store) ListCategories(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	out := make([]models.Category, 0, len(s.categories))
	for _, id := range sortedKeys(s.categories) {
		out = append(out, s.categories[id])
	}
	return out, nil
}

// UpdateCategory implements service.CategoryStore
func (s *Store) UpdateCategory(_ context.Context, id int64, in models.CategoryInput) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	c.UpdatedAt = time.Now().UTC()
	s.categories[id] = c
	return &c, nil
}

// DeleteCategory implements service.CategoryStore
func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range s.products {
		if p.CategoryID == id {
			return repository.ErrReferenceViolation
		}
	}
	delete(s.categories, id)
	return nil
}

func (s *Store) withCategory(p models.Product) models.Product {
	c := s.categories[p.CategoryID]
	p.Category = &c
	return p
}

// CreateProduct implements service.ProductStore
func (s *Store) CreateProduct(_ context.Context, p *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, ok := s.categories[p.CategoryID]; !ok {
		return repository.ErrReferenceViolation
	}
	now := time.Now().UTC()
	p.ID = s.id()
	p.CreatedAt, p.UpdatedAt = now, now
	stored := *p
	stored.Category = nil
	s.products[p.ID] = stored
	return nil
}

// GetProduct implements service.ProductStore
func (s *Store) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = s.withCategory(p)
	return &p, nil
}

// ListProducts implements service.ProductStore
func (s *Store) ListProducts(_ context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	out := make([]models.Product, 0, len(s.products))
	for _, id := range sortedKeys(s.products) {
		out = append(out, s.withCategory(s.products[id]))
	}
	return out, nil
}

// UpdateProduct implements service.ProductStore
func (s *Store) UpdateProduct(_ context.Context, id int64, in models.ProductInput) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	p, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if in.CategoryID != nil {
		if _, ok := s.categories[*in.CategoryID]; !ok {
			return nil, repository.ErrReferenceViolation
		}
		p.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	p.UpdatedAt = time.Now().UTC()
	s.products[id] = p
	return &p, nil
}

// DeleteProduct implements service.ProductStore
func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, ok := s.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.products, id)
	return nil
}

func (s *Store) withUser(o models.Order) models.Order {
	u := s.users[o.UserID]
	o.User = &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	return o
}

// CreateOrder implements service.OrderStore
func (s *Store) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if _, ok := s.users[o.UserID]; !ok {
		return repository.ErrReferenceViolation
	}
	now := time.Now().UTC()
	o.ID = s.id()
	o.CreatedAt, o.UpdatedAt = now, now
	stored := *o
	stored.User = nil
	s.orders[o.ID] = stored
	return nil
}

// GetOrder implements service.OrderStore
func (s *Store) GetOrder(_ context.Context, id, userID int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, repository.ErrNotFound
	}
	o = s.withUser(o)
	return &o, nil
}

// ListOrders implements service.OrderStore
func (s *Store) ListOrders(_ context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	out := make([]models.Order, 0, len(s.orders))
	for _, id := range sortedKeys(s.orders) {
		out = append(out, s.withUser(s.orders[id]))
	}
	return out, nil
}

// ListOrdersByUser implements service.OrderStore
func (s *Store) ListOrdersByUser(_ context.Context, userID int64) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	out := make([]models.Order, 0)
	for _, id := range sortedKeys(s.orders) {
		if o := s.orders[id]; o.UserID == userID {
			out = append(out, s.withUser(o))
		}
	}
	return out, nil
}

// UpdateOrder implements service.OrderStore
func (s *Store) UpdateOrder(_ context.Context, id, userID int64, in models.OrderInput) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return nil, repository.ErrNotFound
	}
	if in.Total != nil {
		o.Total = *in.Total
	}
	if in.Status != nil {
		o.Status = *in.Status
	}
	o.UpdatedAt = time.Now().UTC()
	s.orders[id] = o
	return &o, nil
}

// DeleteOrder implements service.OrderStore
func (s *Store) DeleteOrder(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	o, ok := s.orders[id]
	if !ok || o.UserID != userID {
		return repository.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

// CallCount returns the number of store calls made so far
func (s *Store) CallCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}
