package auth

import (
	"context"
	"slices"
)

// Principal is the identity attached to an authenticated request.
type Principal struct {
	Username    string
	Authorities []string
}

// HasAnyAuthority reports whether the principal holds one of authorities.
func (p Principal) HasAnyAuthority(authorities ...string) bool {
	for _, a := range authorities {
		if slices.Contains(p.Authorities, a) {
			return true
		}
	}
	return false
}

type principalKey struct{}

// WithPrincipal stores p in the context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// ContextUsernameSource resolves the logged username from the request context.
type ContextUsernameSource struct{}

// Username returns the username of the principal carried by ctx.
func (ContextUsernameSource) Username(ctx context.Context) (string, error) {
	p, ok := PrincipalFrom(ctx)
	if !ok || p.Username == "" {
		return "", ErrUnauthenticated
	}
	return p.Username, nil
}
