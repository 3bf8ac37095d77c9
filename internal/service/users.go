package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Clark-Hu/dsmovie/internal/auth"
	"github.com/Clark-Hu/dsmovie/internal/domain"
	"github.com/Clark-Hu/dsmovie/internal/logging"
	"github.com/Clark-Hu/dsmovie/internal/repository"
)

// UserService resolves users for authentication and authorization.
type UserService struct {
	users  UserRepository
	source UsernameSource
	logger *logrus.Logger
}

// NewUserService wires a UserService. A nil logger discards output.
func NewUserService(users UserRepository, source UsernameSource, logger *logrus.Logger) *UserService {
	return &UserService{users: users, source: source, logger: logging.OrDiscard(logger)}
}

// Authenticated returns the user currently logged in. A failing username
// source is reported as ErrUserNotFound wrapping the source's error.
func (s *UserService) Authenticated(ctx context.Context) (domain.User, error) {
	username, err := s.source.Username(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return domain.User{}, fmt.Errorf("load user %s: %w", username, err)
	}
	return user, nil
}

// LoadUserByUsername builds the authentication details of username from its
// role projection.
func (s *UserService) LoadUserByUsername(ctx context.Context, username string) (domain.UserDetails, error) {
	rows, err := s.users.SearchUserAndRolesByUsername(ctx, username)
	if err != nil {
		return domain.UserDetails{}, fmt.Errorf("load user details %s: %w", username, err)
	}
	if len(rows) == 0 {
		return domain.UserDetails{}, fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	details := domain.UserDetails{
		Username:    rows[0].Username,
		Password:    rows[0].Password,
		Authorities: make([]domain.Role, 0, len(rows)),
	}
	for _, row := range rows {
		details.Authorities = append(details.Authorities, domain.Role{ID: row.RoleID, Authority: row.Authority})
	}
	return details, nil
}

// Login checks a username and password pair and returns the user's details.
func (s *UserService) Login(ctx context.Context, username, password string) (domain.UserDetails, error) {
	details, err := s.LoadUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.logger.WithField("username", username).Warn("login rejected: unknown user")
			return domain.UserDetails{}, ErrBadCredentials
		}
		return domain.UserDetails{}, err
	}
	if !auth.CheckPassword(details.Password, password) {
		s.logger.WithField("username", username).Warn("login rejected: bad password")
		return domain.UserDetails{}, ErrBadCredentials
	}
	return details, nil
}
