package httpserver

import (
	"context"
	"testing"
	"time"

	"github.com/Clark-Hu/dsmovie/internal/auth"
	"github.com/Clark-Hu/dsmovie/internal/config"
	"github.com/Clark-Hu/dsmovie/internal/domain"
	"github.com/Clark-Hu/dsmovie/internal/logging"
)

const testSecret = "0123456789abcdef-secret"

type fakeMovies struct {
	FindAllFn  func(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.MovieDTO], error)
	FindByIDFn func(ctx context.Context, id int64) (domain.MovieDTO, error)
	InsertFn   func(ctx context.Context, dto domain.MovieDTO) (domain.MovieDTO, error)
	UpdateFn   func(ctx context.Context, id int64, dto domain.MovieDTO) (domain.MovieDTO, error)
	DeleteFn   func(ctx context.Context, id int64) error
}

func (f *fakeMovies) FindAll(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.MovieDTO], error) {
	if f.FindAllFn != nil {
		return f.FindAllFn(ctx, title, req)
	}
	return domain.NewPage[domain.MovieDTO](nil, req, 0), nil
}

func (f *fakeMovies) FindByID(ctx context.Context, id int64) (domain.MovieDTO, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return domain.MovieDTO{ID: id}, nil
}

func (f *fakeMovies) Insert(ctx context.Context, dto domain.MovieDTO) (domain.MovieDTO, error) {
	if f.InsertFn != nil {
		return f.InsertFn(ctx, dto)
	}
	dto.ID = 1
	return dto, nil
}

func (f *fakeMovies) Update(ctx context.Context, id int64, dto domain.MovieDTO) (domain.MovieDTO, error) {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, dto)
	}
	dto.ID = id
	return dto, nil
}

func (f *fakeMovies) Delete(ctx context.Context, id int64) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeScores struct {
	SaveScoreFn func(ctx context.Context, dto domain.ScoreDTO) (domain.MovieDTO, error)
}

func (f *fakeScores) SaveScore(ctx context.Context, dto domain.ScoreDTO) (domain.MovieDTO, error) {
	if f.SaveScoreFn != nil {
		return f.SaveScoreFn(ctx, dto)
	}
	return domain.MovieDTO{ID: dto.MovieID, Score: dto.Score, Count: 1}, nil
}

type fakeUsers struct {
	AuthenticatedFn func(ctx context.Context) (domain.User, error)
	LoginFn         func(ctx context.Context, username, password string) (domain.UserDetails, error)
}

func (f *fakeUsers) Authenticated(ctx context.Context) (domain.User, error) {
	if f.AuthenticatedFn != nil {
		return f.AuthenticatedFn(ctx)
	}
	return domain.User{}, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (domain.UserDetails, error) {
	if f.LoginFn != nil {
		return f.LoginFn(ctx, username, password)
	}
	return domain.UserDetails{Username: username}, nil
}

type fakeHealth struct{ err error }

func (f fakeHealth) HealthCheck(context.Context) error { return f.err }

func testConfig() config.Config {
	return config.Config{
		Port:             "0",
		ReadTimeoutSecs:  15,
		WriteTimeoutSecs: 15,
		IdleTimeoutSecs:  60,
	}
}

func buildTestServer(tb testing.TB, svc Services) *Server {
	tb.Helper()
	if svc.Movies == nil {
		svc.Movies = &fakeMovies{}
	}
	if svc.Scores == nil {
		svc.Scores = &fakeScores{}
	}
	if svc.Users == nil {
		svc.Users = &fakeUsers{}
	}
	tokens := auth.NewTokenManager(testSecret, "dsmovie", time.Hour)
	return New(testConfig(), fakeHealth{}, svc, tokens, logging.Discard())
}

func bearerFor(tb testing.TB, srv *Server, username string, authorities ...string) string {
	tb.Helper()
	details := domain.UserDetails{Username: username}
	for i, a := range authorities {
		details.Authorities = append(details.Authorities, domain.Role{ID: int64(i + 1), Authority: a})
	}
	token, err := srv.tokens.Issue(details)
	if err != nil {
		tb.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token.AccessToken
}
