package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	require.NoError(t, h.Compare(hash, "secret123"))
	require.ErrorIs(t, h.Compare(hash, "secret124"), ErrPasswordMismatch)
	require.ErrorIs(t, h.Compare("not-a-hash", "secret123"), ErrPasswordMismatch)
}

func TestPasswordHasher_Salted(t *testing.T) {
	h, err := NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewPasswordHasher_InvalidCost(t *testing.T) {
	_, err := NewPasswordHasher(bcrypt.MaxCost + 1)
	require.Error(t, err)
}
