// Package service holds the movie, score and user business operations.
package service

import (
	"context"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

// MovieRepository persists movies.
type MovieRepository interface {
	Search(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.Movie], error)
	FindByID(ctx context.Context, id int64) (domain.Movie, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Insert(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	Update(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	UpdateScore(ctx context.Context, id int64, score float64, count int) (domain.Movie, error)
	DeleteByID(ctx context.Context, id int64) error
}

// ScoreRepository persists scores keyed by (movie, user).
type ScoreRepository interface {
	Save(ctx context.Context, score domain.Score) (domain.Score, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]domain.Score, error)
}

// UserRepository reads users and their roles.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	SearchUserAndRolesByUsername(ctx context.Context, username string) ([]domain.UserDetailsProjection, error)
}

// UsernameSource yields the username of the caller behind ctx.
type UsernameSource interface {
	Username(ctx context.Context) (string, error)
}

// Authenticator resolves the user behind ctx.
type Authenticator interface {
	Authenticated(ctx context.Context) (domain.User, error)
}
