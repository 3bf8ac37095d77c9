package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/dsmovie/internal/domain"
	"github.com/Clark-Hu/dsmovie/internal/logging"
)

// ScoreService records user scores and keeps movie aggregates current.
type ScoreService struct {
	movies MovieRepository
	scores ScoreRepository
	users  Authenticator
	logger *logrus.Logger
}

// NewScoreService wires a ScoreService. A nil logger discards output.
func NewScoreService(movies MovieRepository, scores ScoreRepository, users Authenticator, logger *logrus.Logger) *ScoreService {
	return &ScoreService{movies: movies, scores: scores, users: users, logger: logging.OrDiscard(logger)}
}

// SaveScore stores the caller's score for a movie, replacing any earlier
// score from the same user, and returns the movie with its recomputed mean
// and count.
func (s *ScoreService) SaveScore(ctx context.Context, dto domain.ScoreDTO) (domain.MovieDTO, error) {
	user, err := s.users.Authenticated(ctx)
	if err != nil {
		return domain.MovieDTO{}, err
	}

	movie, err := s.movies.FindByID(ctx, dto.MovieID)
	if err != nil {
		return domain.MovieDTO{}, movieLookupError(dto.MovieID, err)
	}

	if _, err := s.scores.Save(ctx, domain.Score{MovieID: movie.ID, UserID: user.ID, Value: dto.Score}); err != nil {
		return domain.MovieDTO{}, fmt.Errorf("save score: %w", err)
	}

	scores, err := s.scores.FindByMovieID(ctx, movie.ID)
	if err != nil {
		return domain.MovieDTO{}, fmt.Errorf("load scores of movie %d: %w", movie.ID, err)
	}
	mean, count := domain.Aggregate(scores)

	updated, err := s.movies.UpdateScore(ctx, movie.ID, mean, count)
	if err != nil {
		return domain.MovieDTO{}, movieLookupError(movie.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"movie_id": movie.ID,
		"user_id":  user.ID,
		"score":    dto.Score,
		"mean":     updated.Score,
		"count":    updated.Count,
	}).Info("score saved")
	return domain.NewMovieDTO(updated), nil
}
