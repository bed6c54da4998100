package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dan9191/shop-service/internal/models"
)

const insertUserQuery = `(?s)^\s*INSERT\s+INTO\s+users\s*\(name,\s*email,\s*password_hash,\s*admin,.*RETURNING\s+id,\s*created_at,\s*updated_at\s*$`

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(insertUserQuery).
		WithArgs("Ana", "ana@x.com", "hash", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	u := &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, now, u.CreatedAt)
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).
		WithArgs("Ana", "ana@x.com", "hash", false).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.CreateUser(context.Background(), &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestCreateUser_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertUserQuery).WillReturnError(errors.New("db down"))

	err := repo.CreateUser(context.Background(), &models.User{Name: "Ana", Email: "ana@x.com", PasswordHash: "hash"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
	assert.Contains(t, err.Error(), "db down")
}

func TestFindUserByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	q := `(?s)^\s*SELECT\s+id,\s*name,\s*email,\s*password_hash,\s*admin,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("ana@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "admin", "created_at", "updated_at"}).
			AddRow(int64(3), "Ana", "ana@x.com", "hash", true, now, now))

	u, err := repo.FindUserByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.True(t, u.Admin)
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+email`).WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindUserByEmail(context.Background(), "ghost@x.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers_OmitsHash(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,\s*name,\s*email,\s*admin,\s*created_at,\s*updated_at\s+FROM\s+users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "admin", "created_at", "updated_at"}).
			AddRow(int64(1), "Ana", "ana@x.com", false, now, now).
			AddRow(int64(2), "Bia", "bia@x.com", true, now, now))

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestListUsers_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "admin", "created_at", "updated_at"}))

	users, err := repo.ListUsers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}
