package httpx

import (
	"context"

	domainauth "github.com/target/boxoffice/internal/domain/auth"
)

// Unexported context key types avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same keys.
type (
	scopeKey   struct{}
	profileKey struct{}
)

// SetScopeInContext returns a child context carrying the session scope of the request.
// An empty scope returns ctx unchanged.
func SetScopeInContext(ctx context.Context, scope string) context.Context {
	if scope == "" {
		return ctx
	}
	return context.WithValue(ctx, scopeKey{}, scope)
}

// ScopeFromContext returns the request's session scope, or "" when the browser has none.
func ScopeFromContext(ctx context.Context) string {
	s, _ := ctx.Value(scopeKey{}).(string)
	return s
}

// SetProfileInContext returns a child context that carries the authenticated profile.
// If profile is nil, the original ctx is returned unchanged.
func SetProfileInContext(ctx context.Context, profile *domainauth.Profile) context.Context {
	if profile == nil {
		return ctx
	}
	return context.WithValue(ctx, profileKey{}, profile)
}

// ProfileFromContext returns the profile the guard admitted and a boolean indicating presence.
func ProfileFromContext(ctx context.Context) (*domainauth.Profile, bool) {
	if p, ok := ctx.Value(profileKey{}).(*domainauth.Profile); ok && p != nil {
		return p, true
	}
	return nil, false
}
