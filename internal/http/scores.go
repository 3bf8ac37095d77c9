package httpserver

import (
	"net/http"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

type scoreRequest struct {
	MovieID int64    `json:"movieId" validate:"required,gt=0"`
	Score   *float64 `json:"score" validate:"required,gte=0,lte=5"`
}

func (req scoreRequest) toDTO() domain.ScoreDTO {
	return domain.ScoreDTO{MovieID: req.MovieID, Score: *req.Score}
}

func (s *Server) handleSaveScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if s.respondValidation(w, req) {
		return
	}

	movie, err := s.svc.Scores.SaveScore(r.Context(), req.toDTO())
	if err != nil {
		s.respondServiceError(w, r, err, "save score")
		return
	}
	s.respondJSON(w, http.StatusOK, movie)
}
