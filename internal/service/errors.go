package service

import "errors"

var (
	// ErrResourceNotFound reports a movie id with no stored movie.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrDatabase reports a write the database refused, such as deleting a
	// movie that still has scores.
	ErrDatabase = errors.New("integrity violation")
	// ErrUserNotFound reports that no user matches the requested or logged
	// username.
	ErrUserNotFound = errors.New("user not found")
	// ErrBadCredentials reports a failed login.
	ErrBadCredentials = errors.New("bad credentials")
)
