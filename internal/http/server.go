package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/dsmovie/internal/auth"
	"github.com/Clark-Hu/dsmovie/internal/config"
	"github.com/Clark-Hu/dsmovie/internal/domain"
	"github.com/Clark-Hu/dsmovie/internal/logging"
)

// MovieService is the movie behaviour the handlers depend on.
type MovieService interface {
	FindAll(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.MovieDTO], error)
	FindByID(ctx context.Context, id int64) (domain.MovieDTO, error)
	Insert(ctx context.Context, dto domain.MovieDTO) (domain.MovieDTO, error)
	Update(ctx context.Context, id int64, dto domain.MovieDTO) (domain.MovieDTO, error)
	Delete(ctx context.Context, id int64) error
}

// ScoreService is the score behaviour the handlers depend on.
type ScoreService interface {
	SaveScore(ctx context.Context, dto domain.ScoreDTO) (domain.MovieDTO, error)
}

// UserService is the user behaviour the handlers depend on.
type UserService interface {
	Authenticated(ctx context.Context) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.UserDetails, error)
}

// TokenManager issues and verifies bearer tokens.
type TokenManager interface {
	Issue(details domain.UserDetails) (auth.Token, error)
	Parse(token string) (auth.Principal, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services groups the business services exposed over HTTP.
type Services struct {
	Movies MovieService
	Scores ScoreService
	Users  UserService
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	health   HealthChecker
	svc      Services
	tokens   TokenManager
	validate *validator.Validate
	logger   *logrus.Logger
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, health HealthChecker, svc Services, tokens TokenManager, logger *logrus.Logger) *Server {
	logger = logging.OrDiscard(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if cfg.HTTPLogEnabled {
		r.Use(requestLogger(logger))
	}
	r.Use(middleware.Recoverer)

	s := &Server{
		cfg:      cfg,
		health:   health,
		svc:      svc,
		tokens:   tokens,
		validate: newValidator(),
		logger:   logger,
		router:   r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Post("/oauth/token", s.handleLogin)

	s.router.Route("/movies", func(r chi.Router) {
		r.Get("/", s.handleListMovies)
		r.Get("/{id}", s.handleGetMovie)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Use(s.requireAnyRole(domain.RoleAdmin))
			r.Post("/", s.handleCreateMovie)
			r.Put("/{id}", s.handleUpdateMovie)
			r.Delete("/{id}", s.handleDeleteMovie)
		})
	})

	s.router.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.With(s.requireAnyRole(domain.RoleAdmin, domain.RoleClient)).Put("/scores", s.handleSaveScore)
		r.Get("/users/me", s.handleGetMe)
	})
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start boots the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.httpSrv.Addr).Info("http server listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.health == nil {
		s.respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "store not configured")
		return
	}
	if err := s.health.HealthCheck(ctx); err != nil {
		s.logger.WithError(err).Warn("health check failed")
		s.respondError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
