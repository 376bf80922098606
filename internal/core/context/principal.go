// Package context provides request-scoped values extraction.
package context

import (
	"context"
	"slices"
)

// Principal describes the caller authenticated by a bearer token.
type Principal struct {
	Subject  string
	ClientID string
	Scopes   []string
}

// HasScope reports whether the token was granted scope.
func (p *Principal) HasScope(scope string) bool {
	return slices.Contains(p.Scopes, scope)
}

type principalKey struct{}

// WithPrincipal adds Principal to context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal returns Principal from context.
func GetPrincipal(ctx context.Context) *Principal {
	if v, ok := ctx.Value(principalKey{}).(*Principal); ok {
		return v
	}
	return nil
}

// GetSubject returns the token subject from context or empty string.
func GetSubject(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.Subject
	}
	return ""
}
