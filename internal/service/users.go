package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dan9191/shop-service/internal/models"
	"github.com/Dan9191/shop-service/internal/repository"
)

// bcrypt ignores input past this length
const maxPasswordBytes = 72

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, invalid("Nome, e-mail e senha são obrigatórios.")
	}
	if len(password) > maxPasswordBytes {
		return nil, invalid("A senha deve ter no máximo 72 bytes.")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateIdentity
		}
		return nil, storeErr("failed to create user", err)
	}

	s.log.Infof("User registered: %d", user.ID)
	return user, nil
}

// Login authenticates a user and returns a signed token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		s.hasher.CompareDummy(password)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}

	s.log.Infof("User logged in: %d", user.ID)
	return token, nil
}

// ListUsers returns the public view of every user
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
