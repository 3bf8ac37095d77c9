package httpserver

import (
	"net/url"
	"testing"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

func FuzzBuildMovieQuery(f *testing.F) {
	seeds := []string{
		"title=Inception&page=1&size=10",
		"page=abc",
		"size=200",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		values, err := url.ParseQuery(raw)
		if err != nil {
			return
		}
		q, err := buildMovieQuery(values)
		if err != nil {
			return
		}
		if q.Page.Page < 0 || q.Page.Size <= 0 || q.Page.Size > domain.MaxPageSize {
			t.Fatalf("page request out of bounds: %+v", q.Page)
		}
	})
}
