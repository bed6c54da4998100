package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dan9191/shop-service/internal/auth"
	"github.com/Dan9191/shop-service/internal/models"
	"github.com/Dan9191/shop-service/internal/repository/repotest"
)

func newTestService(t *testing.T) (*Service, *repotest.Store, *auth.TokenIssuer) {
	t.Helper()
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	store := repotest.New()
	log, _ := test.NewNullLogger()
	return NewService(store, hasher, tokens, log), store, tokens
}

func ptr[T any](v T) *T { return &v }

type failingUserStore struct {
	*repotest.Store
	err error
}

func (f *failingUserStore) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, f.err
}

func TestRegister(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@x.com", user.Email)
	assert.False(t, user.Admin)

	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
	cost, err := bcrypt.Cost([]byte(user.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	_, err = svc.Register(ctx, "Ana Again", "ana@x.com", "other")
	require.ErrorIs(t, err, ErrDuplicateIdentity)
	assert.Equal(t, 1, store.CountUsersByEmail("ana@x.com"))
}

func TestRegister_Validation(t *testing.T) {
	svc, store, _ := newTestService(t)

	tests := []struct {
		name, user, email, password string
	}{
		{"no name", "", "a@x.com", "pw"},
		{"blank email", "Ana", "  ", "pw"},
		{"no password", "Ana", "a@x.com", ""},
		{"password too long", "Ana", "a@x.com", string(make([]byte, 73))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.user, tc.email, tc.password)
			require.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Message)
		})
	}
	assert.Zero(t, store.CallCount())
}

func TestLogin(t *testing.T) {
	svc, _, tokens := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "ana@x.com", "secret123")
	require.NoError(t, err)

	userID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestLogin_InvalidCredentialsAreUndifferentiated(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "ana@x.com", "secret124")
	_, unknownEmail := svc.Login(ctx, "bia@x.com", "secret123")
	_, otherCase := svc.Login(ctx, "ANA@x.com", "secret123")

	for _, err := range []error{wrongPassword, unknownEmail, otherCase} {
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Equal(t, ErrInvalidCredentials, err)
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	hasher, err := auth.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)
	log, _ := test.NewNullLogger()
	store := &failingUserStore{Store: repotest.New(), err: errors.New("connection refused")}
	svc := NewService(store, hasher, auth.NewTokenIssuer("k", time.Hour), log)

	_, err = svc.Login(context.Background(), "ana@x.com", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestListUsers_NoHash(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@x.com", "secret123")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Bia", "bia@x.com", "secret123")
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}
