package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/dsmovie/internal/store"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrIntegrityViolation reports a write rejected by a foreign key.
	ErrIntegrityViolation = errors.New("repository: integrity violation")
)

// foreignKeyViolation is the SQLSTATE postgres raises for a broken reference.
const foreignKeyViolation = "23503"

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies *MoviesRepository
	Scores *ScoresRepository
	Users  *UsersRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Movies: &MoviesRepository{pool: pool},
		Scores: &ScoresRepository{pool: pool},
		Users:  &UsersRepository{pool: pool},
	}
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return errors.Join(ErrIntegrityViolation, err)
	}
	return err
}
