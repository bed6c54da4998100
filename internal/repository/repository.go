package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the lookup
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a user with the same email exists
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrReferenceViolation is returned when a write breaks a foreign key,
	// either pointing at a missing row or deleting a row still referenced
	ErrReferenceViolation = errors.New("reference violation")
	// ErrOutOfRange is returned when a value does not fit its column
	ErrOutOfRange = errors.New("value out of range")
)

// postgres SQLSTATE codes
const (
	codeNumericOutOfRange   = "22003"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// classify maps driver errors onto repository sentinels, returning nil for
// errors it does not recognize
func classify(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return ErrDuplicateEmail
		case codeForeignKeyViolation:
			return ErrReferenceViolation
		case codeNumericOutOfRange:
			return ErrOutOfRange
		}
	}
	return nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
