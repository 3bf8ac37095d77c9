package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/dsmovie/internal/domain"
	"github.com/Clark-Hu/dsmovie/internal/repository"
)

const (
	existingID  int64 = 1
	nonExisting int64 = 1000
	dependentID int64 = 2
)

func newMovieFixture(t *testing.T) (*MovieService, *FakeMovieRepository, domain.Movie) {
	t.Helper()
	f := newFaker()
	stored := newMovie(f, existingID)

	repo := &FakeMovieRepository{
		FindByIDFn: func(_ context.Context, id int64) (domain.Movie, error) {
			if id == existingID {
				return stored, nil
			}
			return domain.Movie{}, repository.ErrNotFound
		},
		ExistsByIDFn: func(_ context.Context, id int64) (bool, error) {
			return id == existingID || id == dependentID, nil
		},
		DeleteByIDFn: func(_ context.Context, id int64) error {
			if id == dependentID {
				return repository.ErrIntegrityViolation
			}
			return nil
		},
	}
	return NewMovieService(repo, nil), repo, stored
}

func TestMovieService_FindAll(t *testing.T) {
	f := newFaker()
	movies := []domain.Movie{newMovie(f, 1), newMovie(f, 2)}

	var gotTitle string
	var gotReq domain.PageRequest
	repo := &FakeMovieRepository{
		SearchFn: func(_ context.Context, title string, req domain.PageRequest) (domain.Page[domain.Movie], error) {
			gotTitle, gotReq = title, req
			return domain.NewPage(movies, req, 12), nil
		},
	}
	svc := NewMovieService(repo, nil)

	req := domain.PageRequest{Page: 1, Size: 2}
	page, err := svc.FindAll(context.Background(), "star", req)
	require.NoError(t, err)

	assert.Equal(t, "star", gotTitle)
	assert.Equal(t, req, gotReq)

	want := domain.Page[domain.MovieDTO]{
		Content:       []domain.MovieDTO{domain.NewMovieDTO(movies[0]), domain.NewMovieDTO(movies[1])},
		Page:          1,
		Size:          2,
		TotalElements: 12,
		TotalPages:    6,
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Fatalf("FindAll mismatch (-want +got):\n%s", diff)
	}
}

func TestMovieService_FindAllPropagatesRepositoryFailure(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &FakeMovieRepository{
		SearchFn: func(context.Context, string, domain.PageRequest) (domain.Page[domain.Movie], error) {
			return domain.Page[domain.Movie]{}, boom
		},
	}
	_, err := NewMovieService(repo, nil).FindAll(context.Background(), "", domain.PageRequest{})
	assert.ErrorIs(t, err, boom)
}

func TestMovieService_FindByID(t *testing.T) {
	svc, _, stored := newMovieFixture(t)

	t.Run("existing id", func(t *testing.T) {
		got, err := svc.FindByID(context.Background(), existingID)
		require.NoError(t, err)
		assert.Equal(t, stored.ID, got.ID)
		assert.Equal(t, stored.Title, got.Title)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.FindByID(context.Background(), nonExisting)
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func TestMovieService_Insert(t *testing.T) {
	f := newFaker()
	dto := newMovieDTO(f)
	dto.Score = 4.5
	dto.Count = 9

	var inserted domain.Movie
	repo := &FakeMovieRepository{
		InsertFn: func(_ context.Context, movie domain.Movie) (domain.Movie, error) {
			inserted = movie
			movie.ID = 77
			return movie, nil
		},
	}

	got, err := NewMovieService(repo, nil).Insert(context.Background(), dto)
	require.NoError(t, err)

	assert.Equal(t, domain.Movie{Title: dto.Title, Image: dto.Image}, inserted)
	assert.Equal(t, domain.MovieDTO{ID: 77, Title: dto.Title, Image: dto.Image}, got)
	assert.Equal(t, []string{"Insert"}, repo.Trace())
}

func TestMovieService_Update(t *testing.T) {
	t.Run("existing id merges title and image", func(t *testing.T) {
		svc, repo, stored := newMovieFixture(t)
		stored.Score, stored.Count = 3.5, 2
		repo.FindByIDFn = func(context.Context, int64) (domain.Movie, error) { return stored, nil }

		dto := newMovieDTO(newFaker())
		dto.Title = "Updated Title"
		dto.Score = 0.5
		dto.Count = 100

		got, err := svc.Update(context.Background(), existingID, dto)
		require.NoError(t, err)

		want := domain.MovieDTO{ID: existingID, Title: "Updated Title", Score: 3.5, Count: 2, Image: dto.Image}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("Update mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []string{"FindByID", "Update"}, repo.Trace())
	})

	t.Run("missing id", func(t *testing.T) {
		svc, repo, _ := newMovieFixture(t)

		_, err := svc.Update(context.Background(), nonExisting, newMovieDTO(newFaker()))
		assert.ErrorIs(t, err, ErrResourceNotFound)
		assert.Equal(t, []string{"FindByID"}, repo.Trace())
	})

	t.Run("row vanishes before update", func(t *testing.T) {
		svc, repo, _ := newMovieFixture(t)
		repo.UpdateFn = func(context.Context, domain.Movie) (domain.Movie, error) {
			return domain.Movie{}, repository.ErrNotFound
		}

		_, err := svc.Update(context.Background(), existingID, newMovieDTO(newFaker()))
		assert.ErrorIs(t, err, ErrResourceNotFound)
	})
}

func TestMovieService_Delete(t *testing.T) {
	t.Run("existing id deletes once", func(t *testing.T) {
		svc, repo, _ := newMovieFixture(t)

		require.NoError(t, svc.Delete(context.Background(), existingID))
		assert.Equal(t, []string{"ExistsByID", "DeleteByID"}, repo.Trace())
	})

	t.Run("missing id", func(t *testing.T) {
		svc, repo, _ := newMovieFixture(t)

		err := svc.Delete(context.Background(), nonExisting)
		assert.ErrorIs(t, err, ErrResourceNotFound)
		assert.NotContains(t, repo.Trace(), "DeleteByID")
	})

	t.Run("dependent id", func(t *testing.T) {
		svc, _, _ := newMovieFixture(t)

		err := svc.Delete(context.Background(), dependentID)
		assert.ErrorIs(t, err, ErrDatabase)
		assert.NotErrorIs(t, err, ErrResourceNotFound)
	})

	t.Run("existence check fails", func(t *testing.T) {
		svc, repo, _ := newMovieFixture(t)
		boom := errors.New("timeout")
		repo.ExistsByIDFn = func(context.Context, int64) (bool, error) { return false, boom }

		err := svc.Delete(context.Background(), existingID)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrResourceNotFound)
	})
}
