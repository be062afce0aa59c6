package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/target/boxoffice/internal/domain/auth"
)

// KeyValueStore is the durable string storage sessions live in.
// Get reports ok=false (and no error) when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// SessionStore persists the token and profile of one scope.
// Profile returns nil (and no error) when the stored profile is absent or unreadable.
type SessionStore interface {
	Save(ctx context.Context, scope, token string, profile domainauth.Profile) error
	Token(ctx context.Context, scope string) (string, bool, error)
	Profile(ctx context.Context, scope string) (*domainauth.Profile, error)
	Clear(ctx context.Context, scope string) error
}

// LoginResponse is what the backend returns for a successful login.
type LoginResponse struct {
	Token   string
	Profile map[string]any
}

// AuthBackend performs login/logout against the remote backend.
type AuthBackend interface {
	Login(ctx context.Context, creds domainauth.Credentials) (LoginResponse, error)
	Logout(ctx context.Context, token string) error
}
