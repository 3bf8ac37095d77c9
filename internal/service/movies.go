package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/dsmovie/internal/domain"
	"github.com/Clark-Hu/dsmovie/internal/logging"
	"github.com/Clark-Hu/dsmovie/internal/repository"
)

// MovieService implements movie lookup and maintenance.
type MovieService struct {
	movies MovieRepository
	logger *logrus.Logger
}

// NewMovieService wires a MovieService. A nil logger discards output.
func NewMovieService(movies MovieRepository, logger *logrus.Logger) *MovieService {
	return &MovieService{movies: movies, logger: logging.OrDiscard(logger)}
}

// FindAll returns a page of movies whose title contains title.
func (s *MovieService) FindAll(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.MovieDTO], error) {
	page, err := s.movies.Search(ctx, title, req)
	if err != nil {
		return domain.Page[domain.MovieDTO]{}, fmt.Errorf("search movies: %w", err)
	}
	return domain.MapPage(page, domain.NewMovieDTO), nil
}

// FindByID returns the movie with id.
func (s *MovieService) FindByID(ctx context.Context, id int64) (domain.MovieDTO, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return domain.MovieDTO{}, movieLookupError(id, err)
	}
	return domain.NewMovieDTO(movie), nil
}

// Insert stores a new movie. Its score and count start at zero.
func (s *MovieService) Insert(ctx context.Context, dto domain.MovieDTO) (domain.MovieDTO, error) {
	movie, err := s.movies.Insert(ctx, domain.Movie{
		Title: dto.Title,
		Image: dto.Image,
	})
	if err != nil {
		return domain.MovieDTO{}, fmt.Errorf("insert movie: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"movie_id": movie.ID, "title": movie.Title}).Info("movie created")
	return domain.NewMovieDTO(movie), nil
}

// Update replaces the title and image of the movie with id.
func (s *MovieService) Update(ctx context.Context, id int64, dto domain.MovieDTO) (domain.MovieDTO, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return domain.MovieDTO{}, movieLookupError(id, err)
	}

	movie.Title = dto.Title
	movie.Image = dto.Image

	updated, err := s.movies.Update(ctx, movie)
	if err != nil {
		return domain.MovieDTO{}, movieLookupError(id, err)
	}
	s.logger.WithField("movie_id", id).Info("movie updated")
	return domain.NewMovieDTO(updated), nil
}

// Delete removes the movie with id. Movies that were already scored cannot be
// deleted.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	exists, err := s.movies.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("check movie %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("%w: movie %d", ErrResourceNotFound, id)
	}

	if err := s.movies.DeleteByID(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrIntegrityViolation):
			s.logger.WithField("movie_id", id).Warn("movie delete rejected: movie has scores")
			return fmt.Errorf("%w: movie %d has scores", ErrDatabase, id)
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%w: movie %d", ErrResourceNotFound, id)
		default:
			return fmt.Errorf("delete movie %d: %w", id, err)
		}
	}
	s.logger.WithField("movie_id", id).Info("movie deleted")
	return nil
}

func movieLookupError(id int64, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: movie %d", ErrResourceNotFound, id)
	}
	return fmt.Errorf("load movie %d: %w", id, err)
}
