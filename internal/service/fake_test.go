package service

import (
	"context"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

// ------------------------
// Fake Movie Repo
// ------------------------

// FakeMovieRepository is a programmable stub for MovieRepository.
type FakeMovieRepository struct {
	trace []string

	SearchFn     func(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.Movie], error)
	FindByIDFn   func(ctx context.Context, id int64) (domain.Movie, error)
	ExistsByIDFn func(ctx context.Context, id int64) (bool, error)
	InsertFn     func(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	UpdateFn     func(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	DeleteByIDFn func(ctx context.Context, id int64) error

	UpdateScoreFn func(ctx context.Context, id int64, score float64, count int) (domain.Movie, error)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeMovieRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMovieRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeMovieRepository) Search(ctx context.Context, title string, req domain.PageRequest) (domain.Page[domain.Movie], error) {
	f.record("Search")
	if f.SearchFn != nil {
		return f.SearchFn(ctx, title, req)
	}
	return domain.NewPage[domain.Movie](nil, req, 0), nil
}

func (f *FakeMovieRepository) FindByID(ctx context.Context, id int64) (domain.Movie, error) {
	f.record("FindByID")
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return domain.Movie{}, nil
}

func (f *FakeMovieRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	f.record("ExistsByID")
	if f.ExistsByIDFn != nil {
		return f.ExistsByIDFn(ctx, id)
	}
	return false, nil
}

func (f *FakeMovieRepository) Insert(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	f.record("Insert")
	if f.InsertFn != nil {
		return f.InsertFn(ctx, movie)
	}
	return movie, nil
}

func (f *FakeMovieRepository) Update(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	f.record("Update")
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, movie)
	}
	return movie, nil
}

func (f *FakeMovieRepository) UpdateScore(ctx context.Context, id int64, score float64, count int) (domain.Movie, error) {
	f.record("UpdateScore")
	if f.UpdateScoreFn != nil {
		return f.UpdateScoreFn(ctx, id, score, count)
	}
	return domain.Movie{ID: id, Score: score, Count: count}, nil
}

func (f *FakeMovieRepository) DeleteByID(ctx context.Context, id int64) error {
	f.record("DeleteByID")
	if f.DeleteByIDFn != nil {
		return f.DeleteByIDFn(ctx, id)
	}
	return nil
}

// ------------------------
// Fake Score Repo
// ------------------------

// FakeScoreRepository is a programmable stub for ScoreRepository.
type FakeScoreRepository struct {
	trace []string

	SaveFn          func(ctx context.Context, score domain.Score) (domain.Score, error)
	FindByMovieIDFn func(ctx context.Context, movieID int64) ([]domain.Score, error)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepository) Save(ctx context.Context, score domain.Score) (domain.Score, error) {
	f.record("Save")
	if f.SaveFn != nil {
		return f.SaveFn(ctx, score)
	}
	return score, nil
}

func (f *FakeScoreRepository) FindByMovieID(ctx context.Context, movieID int64) ([]domain.Score, error) {
	f.record("FindByMovieID")
	if f.FindByMovieIDFn != nil {
		return f.FindByMovieIDFn(ctx, movieID)
	}
	return nil, nil
}

// ------------------------
// Fake User Repo
// ------------------------

// FakeUserRepository is a programmable stub for UserRepository.
type FakeUserRepository struct {
	trace []string

	FindByUsernameFn               func(ctx context.Context, username string) (domain.User, error)
	SearchUserAndRolesByUsernameFn func(ctx context.Context, username string) ([]domain.UserDetailsProjection, error)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeUserRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeUserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	f.record("FindByUsername")
	if f.FindByUsernameFn != nil {
		return f.FindByUsernameFn(ctx, username)
	}
	return domain.User{}, nil
}

func (f *FakeUserRepository) SearchUserAndRolesByUsername(ctx context.Context, username string) ([]domain.UserDetailsProjection, error) {
	f.record("SearchUserAndRolesByUsername")
	if f.SearchUserAndRolesByUsernameFn != nil {
		return f.SearchUserAndRolesByUsernameFn(ctx, username)
	}
	return nil, nil
}

// ------------------------
// Fake collaborators
// ------------------------

// FakeUsernameSource returns a fixed username or error.
type FakeUsernameSource struct {
	Name string
	Err  error
}

func (f FakeUsernameSource) Username(context.Context) (string, error) {
	return f.Name, f.Err
}

// FakeAuthenticator is a programmable stub for Authenticator.
type FakeAuthenticator struct {
	AuthenticatedFn func(ctx context.Context) (domain.User, error)
}

func (f *FakeAuthenticator) Authenticated(ctx context.Context) (domain.User, error) {
	if f.AuthenticatedFn != nil {
		return f.AuthenticatedFn(ctx)
	}
	return domain.User{}, nil
}

// ------------------------
// Factories
// ------------------------

func newFaker() *gofakeit.Faker {
	return gofakeit.New(42)
}

func newMovie(f *gofakeit.Faker, id int64) domain.Movie {
	return domain.Movie{
		ID:    id,
		Title: f.MovieName(),
		Image: f.URL(),
	}
}

func newMovieDTO(f *gofakeit.Faker) domain.MovieDTO {
	return domain.MovieDTO{
		Title: f.MovieName(),
		Image: f.URL(),
	}
}

func newUser(f *gofakeit.Faker, id int64, authorities ...string) domain.User {
	user := domain.User{
		ID:       id,
		Name:     f.Name(),
		Username: f.Email(),
		Password: f.Password(true, true, true, false, false, 12),
	}
	for i, a := range authorities {
		user.Roles = append(user.Roles, domain.Role{ID: int64(i + 1), Authority: a})
	}
	return user
}
