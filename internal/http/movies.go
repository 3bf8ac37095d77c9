package httpserver

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

type movieRequest struct {
	Title string `json:"title" validate:"required,min=5,max=80"`
	Image string `json:"image" validate:"omitempty,url"`
}

// movieQuery is the parsed query string of the movie listing.
type movieQuery struct {
	Title string
	Page  domain.PageRequest
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	q, err := buildMovieQuery(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	page, err := s.svc.Movies.FindAll(r.Context(), q.Title, q.Page)
	if err != nil {
		s.respondServiceError(w, r, err, "list movies")
		return
	}
	s.respondJSON(w, http.StatusOK, page)
}

func buildMovieQuery(query url.Values) (movieQuery, error) {
	q := movieQuery{Title: strings.TrimSpace(query.Get("title"))}

	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil || page < 0 {
			return q, fmt.Errorf("invalid page value")
		}
		q.Page.Page = page
	}
	if val := strings.TrimSpace(query.Get("size")); val != "" {
		size, err := strconv.Atoi(val)
		if err != nil || size <= 0 {
			return q, fmt.Errorf("invalid size value")
		}
		q.Page.Size = size
	}
	q.Page = q.Page.Normalize()
	return q, nil
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	movie, err := s.svc.Movies.FindByID(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err, "fetch movie")
		return
	}
	s.respondJSON(w, http.StatusOK, movie)
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	req.normalize()
	if s.respondValidation(w, req) {
		return
	}

	movie, err := s.svc.Movies.Insert(r.Context(), req.toDTO())
	if err != nil {
		s.respondServiceError(w, r, err, "create movie")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/movies/%d", movie.ID))
	s.respondJSON(w, http.StatusCreated, movie)
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	var req movieRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	req.normalize()
	if s.respondValidation(w, req) {
		return
	}

	movie, err := s.svc.Movies.Update(r.Context(), id, req.toDTO())
	if err != nil {
		s.respondServiceError(w, r, err, "update movie")
		return
	}
	s.respondJSON(w, http.StatusOK, movie)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := decodeIDParam(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}

	if err := s.svc.Movies.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err, "delete movie")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *movieRequest) normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Image = strings.TrimSpace(m.Image)
}

func (m movieRequest) toDTO() domain.MovieDTO {
	return domain.MovieDTO{Title: m.Title, Image: m.Image}
}

func decodeIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, fmt.Errorf("missing id parameter")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id parameter")
	}
	return id, nil
}
