package httpserver

import (
	"net/http"
	"strings"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

type loginRequest struct {
	GrantType string `json:"grant_type"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// handleLogin exchanges a username and password for a bearer token. It
// accepts a form-encoded password grant or the same fields as JSON.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		if err := r.ParseForm(); err != nil {
			s.respondError(w, http.StatusBadRequest, "BAD_REQUEST", "Unable to parse form")
			return
		}
		req = loginRequest{
			GrantType: r.PostForm.Get("grant_type"),
			Username:  r.PostForm.Get("username"),
			Password:  r.PostForm.Get("password"),
		}
	} else if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	if req.GrantType != "" && req.GrantType != "password" {
		s.respondError(w, http.StatusBadRequest, "UNSUPPORTED_GRANT_TYPE", "Only the password grant is supported")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if s.respondValidation(w, req) {
		return
	}

	details, err := s.svc.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondServiceError(w, r, err, "log in")
		return
	}

	token, err := s.tokens.Issue(details)
	if err != nil {
		s.respondServiceError(w, r, err, "issue token")
		return
	}
	s.respondJSON(w, http.StatusOK, token)
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.Users.Authenticated(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err, "load user")
		return
	}
	s.respondJSON(w, http.StatusOK, domain.NewUserDTO(user))
}
