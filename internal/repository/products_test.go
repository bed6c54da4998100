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

var productRowColumns = []string{
	"id", "name", "description", "price", "stock", "category_id", "created_at", "updated_at",
	"c_id", "c_name", "c_description", "c_created_at", "c_updated_at",
}

func TestListProducts_WithCategory(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM\s+products\s+p\s+JOIN\s+categories\s+c\s+ON\s+c\.id\s*=\s*p\.category_id\s+ORDER\s+BY\s+p\.id`).
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow(int64(1), "Livro", "Capa dura", 59.9, 3, int64(2), now, now, int64(2), "Livros", "", now, now))

	products, err := repo.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 59.9, products[0].Price)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Livros", products[0].Category.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+p\.id\s*=\s*\$1`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	_, err := repo.GetProduct(context.Background(), 4)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProduct(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT\s+INTO\s+products`).
		WithArgs("Livro", "", 10.0, 1, int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(8), now, now))

	p := &models.Product{Name: "Livro", Price: 10, Stock: 1, CategoryID: 2}
	require.NoError(t, repo.CreateProduct(context.Background(), p))
	assert.Equal(t, int64(8), p.ID)
}

func TestCreateProduct_MissingCategory(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+products`).WillReturnError(&pq.Error{Code: "23503"})

	err := repo.CreateProduct(context.Background(), &models.Product{Name: "Livro", CategoryID: 99})
	require.ErrorIs(t, err, ErrReferenceViolation)
}

func TestUpdateProduct(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()
	price := 12.5

	mock.ExpectQuery(`(?s)UPDATE\s+products.*price\s*=\s*COALESCE\(\$4,\s*price\).*WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(1), nil, nil, 12.5, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "category_id", "created_at", "updated_at"}).
			AddRow(int64(1), "Livro", "", 12.5, 3, int64(2), now, now))

	p, err := repo.UpdateProduct(context.Background(), 1, models.ProductInput{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.Price)
	assert.Equal(t, "Livro", p.Name)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`UPDATE\s+products`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.UpdateProduct(context.Background(), 1, models.ProductInput{})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProduct_OutOfRange(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	stock := 3000000000

	mock.ExpectQuery(`UPDATE\s+products`).WillReturnError(&pq.Error{Code: "22003"})

	_, err := repo.UpdateProduct(context.Background(), 1, models.ProductInput{Stock: &stock})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDeleteProduct(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE\s+FROM\s+products\s+WHERE\s+id\s*=\s*\$1`).WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+products`).WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE\s+FROM\s+products`).WithArgs(int64(3)).
		WillReturnError(errors.New("conn reset"))

	require.NoError(t, repo.DeleteProduct(context.Background(), 1))
	require.ErrorIs(t, repo.DeleteProduct(context.Background(), 2), ErrNotFound)

	err := repo.DeleteProduct(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
