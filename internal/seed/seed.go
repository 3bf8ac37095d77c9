// Package seed loads the demo roles, accounts and movies.
package seed

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/dsmovie/internal/auth"
	"github.com/Clark-Hu/dsmovie/internal/domain"
	"github.com/Clark-Hu/dsmovie/internal/logging"
	"github.com/Clark-Hu/dsmovie/internal/repository"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "123456"

type account struct {
	name        string
	username    string
	authorities []string
}

var accounts = []account{
	{name: "Maria Brown", username: "maria@gmail.com", authorities: []string{domain.RoleClient, domain.RoleAdmin}},
	{name: "Alex Green", username: "alex@gmail.com", authorities: []string{domain.RoleClient}},
}

var movies = []domain.Movie{
	{Title: "The Witcher", Image: "https://www.themoviedb.org/t/p/w533_and_h300_bestv2/jBJWaqoSCiARWtfV0GlqHrcdidd.jpg"},
	{Title: "Venom: Tempo de Carnificina", Image: "https://www.themoviedb.org/t/p/w533_and_h300_bestv2/vIgyYkXkg6NC2whRbYjBD7eb3Er.jpg"},
	{Title: "O Espetacular Homem-Aranha 2: A Ameaça de Electro", Image: "https://www.themoviedb.org/t/p/w533_and_h300_bestv2/u7SeO6Y42P7VCTWLhpnL96cyOqd.jpg"},
	{Title: "Matrix Resurrections", Image: "https://www.themoviedb.org/t/p/w533_and_h300_bestv2/hv7o3VgfsairBoQFAawgaQ4cR1m.jpg"},
	{Title: "Shang-Chi e a Lenda dos Dez Anéis", Image: "https://www.themoviedb.org/t/p/w533_and_h300_bestv2/cinER0ESG0eJ49kXlExM0MEWGxW.jpg"},
	{Title: "Django Livre", Image: "https://www.themoviedb.org/t/p/w533_and_h300_bestv2/2oZklIzUbvZXXzIFzv7Hi68d6xf.jpg"},
}

// Run creates the roles and accounts, then inserts the sample movies when the
// catalogue is empty. Running it twice leaves the data unchanged.
func Run(ctx context.Context, repo *repository.Repository, logger *logrus.Logger) error {
	logger = logging.OrDiscard(logger)

	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	for _, acc := range accounts {
		user, err := repo.Users.Create(ctx, domain.User{Name: acc.name, Username: acc.username, Password: hash})
		if err != nil {
			return err
		}
		for _, authority := range acc.authorities {
			role, err := repo.Users.EnsureRole(ctx, authority)
			if err != nil {
				return err
			}
			if err := repo.Users.GrantRole(ctx, user.ID, role.ID); err != nil {
				return fmt.Errorf("grant %s to %s: %w", authority, acc.username, err)
			}
		}
		logger.WithFields(logrus.Fields{"username": acc.username, "roles": acc.authorities}).Info("seeded account")
	}

	existing, err := repo.Movies.Search(ctx, "", domain.PageRequest{Size: 1})
	if err != nil {
		return fmt.Errorf("count movies: %w", err)
	}
	if existing.TotalElements > 0 {
		logger.WithField("movies", existing.TotalElements).Info("movies already present, skipping")
		return nil
	}
	for _, m := range movies {
		if _, err := repo.Movies.Insert(ctx, m); err != nil {
			return fmt.Errorf("insert movie %q: %w", m.Title, err)
		}
	}
	logger.WithField("movies", len(movies)).Info("seeded movies")
	return nil
}
