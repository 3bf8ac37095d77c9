package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

// ScoresRepository stores user scores keyed by (movie, user).
type ScoresRepository struct {
	pool *pgxpool.Pool
}

// Save inserts the score or overwrites the user's previous value for the movie.
func (r *ScoresRepository) Save(ctx context.Context, score domain.Score) (domain.Score, error) {
	const query = `
        INSERT INTO scores (movie_id, user_id, value)
        VALUES ($1,$2,$3)
        ON CONFLICT (movie_id, user_id)
        DO UPDATE SET value = EXCLUDED.value, updated_at = now()
        RETURNING movie_id, user_id, value
    `

	var saved domain.Score
	err := r.pool.QueryRow(ctx, query, score.MovieID, score.UserID, score.Value).Scan(
		&saved.MovieID,
		&saved.UserID,
		&saved.Value,
	)
	if err != nil {
		return domain.Score{}, translateError(err)
	}
	return saved, nil
}

// FindByMovieID lists every score attached to a movie, ordered by user.
func (r *ScoresRepository) FindByMovieID(ctx context.Context, movieID int64) ([]domain.Score, error) {
	const query = `
        SELECT movie_id, user_id, value
        FROM scores
        WHERE movie_id = $1
        ORDER BY user_id
    `

	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]domain.Score, 0)
	for rows.Next() {
		var s domain.Score
		if err := rows.Scan(&s.MovieID, &s.UserID, &s.Value); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return scores, nil
}
