package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `id, title, score, count, image`

// Search returns one page of movies whose title contains title, ignoring case.
// An empty title matches every movie. Results are ordered by id.
func (r *MoviesRepository) Search(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.Movie], error) {
	req = req.Normalize()
	pattern := "%" + escapeLike(strings.TrimSpace(title)) + "%"

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM movies WHERE title ILIKE $1`, pattern).Scan(&total); err != nil {
		return domain.Page[domain.Movie]{}, fmt.Errorf("count movies: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s FROM movies
        WHERE title ILIKE $1
        ORDER BY id
        LIMIT $2 OFFSET $3
    `, movieColumns)

	rows, err := r.pool.Query(ctx, query, pattern, req.Size, req.Offset())
	if err != nil {
		return domain.Page[domain.Movie]{}, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0, req.Size)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return domain.Page[domain.Movie]{}, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Movie]{}, err
	}

	return domain.NewPage(items, req, total), nil
}

// FindByID fetches a movie by its identifier.
func (r *MoviesRepository) FindByID(ctx context.Context, id int64) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// ExistsByID reports whether a movie with id is stored.
func (r *MoviesRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Insert stores a new movie and returns it with its generated id.
func (r *MoviesRepository) Insert(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	query := fmt.Sprintf(`
        INSERT INTO movies (title, score, count, image)
        VALUES ($1,$2,$3,$4)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, movie.Title, movie.Score, movie.Count, movie.Image)
	return scanMovie(row)
}

// Update writes the title and image of the movie identified by movie.ID. The
// score aggregate is left untouched; see UpdateScore.
func (r *MoviesRepository) Update(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movies
        SET title = $2,
            image = $3,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	return updateMovie(r.pool.QueryRow(ctx, query, movie.ID, movie.Title, movie.Image))
}

// UpdateScore stores the mean score and score count of the movie with id.
func (r *MoviesRepository) UpdateScore(ctx context.Context, id int64, score float64, count int) (domain.Movie, error) {
	query := fmt.Sprintf(`
        UPDATE movies
        SET score = $2,
            count = $3,
            updated_at = now()
        WHERE id = $1
        RETURNING %s
    `, movieColumns)

	return updateMovie(r.pool.QueryRow(ctx, query, id, score, count))
}

func updateMovie(row pgx.Row) (domain.Movie, error) {
	updated, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return updated, nil
}

// DeleteByID removes a movie. A movie that still has scores is rejected with
// ErrIntegrityViolation.
func (r *MoviesRepository) DeleteByID(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Score,
		&movie.Count,
		&movie.Image,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
