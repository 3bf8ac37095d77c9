// Package auth issues and verifies bearer tokens and carries the caller's
// identity through a request context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Clark-Hu/dsmovie/internal/domain"
)

var (
	// ErrUnauthenticated means the request carries no identity.
	ErrUnauthenticated = errors.New("auth: unauthenticated")
	// ErrInvalidToken means a bearer token failed verification.
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Claims is the payload of an access token.
type Claims struct {
	Username    string   `json:"user_name"`
	Authorities []string `json:"authorities"`
	jwt.RegisteredClaims
}

// Token is a signed access token ready to hand to a client.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenManager signs and parses HS256 access tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a manager for the shared secret.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the authenticated user details.
func (m *TokenManager) Issue(details domain.UserDetails) (Token, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := &Claims{
		Username:    details.Username,
		Authorities: details.AuthorityNames(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   details.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(m.ttl / time.Second),
	}, nil
}

// Parse verifies a signed token and returns the principal it names.
func (m *TokenManager) Parse(tokenStr string) (Principal, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.Username == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{Username: claims.Username, Authorities: claims.Authorities}, nil
}
