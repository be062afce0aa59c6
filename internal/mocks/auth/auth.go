package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domainauth "github.com/target/boxoffice/internal/domain/auth"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthBackend   = (*FakeBackend)(nil)
	_ ports.KeyValueStore = (*FailingKV)(nil)
	_ ports.KeyValueStore = ContextKV{}
)

// User is an account known to FakeBackend.
type User struct {
	Password string
	Profile  map[string]any
}

// FakeBackend simulates the remote login/logout endpoints with deterministic tokens.
type FakeBackend struct {
	LoginFunc  func(ctx context.Context, creds domainauth.Credentials) (ports.LoginResponse, error)
	LogoutFunc func(ctx context.Context, token string) error

	// Users maps email to account; used when LoginFunc is nil.
	Users map[string]User
	// TokenPrefix prefixes issued tokens; defaults to "tok".
	TokenPrefix string

	mu         sync.Mutex
	loginCount int
	loggedOut  []string
}

// NewFakeBackend creates a FakeBackend with one admin and one staff account.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		Users: map[string]User{
			"admin@example.com": {
				Password: "admin-pass",
				Profile:  map[string]any{"name": "Ada Admin", "email": "admin@example.com", "role": "ADMIN"},
			},
			"staff@example.com": {
				Password: "staff-pass",
				Profile:  map[string]any{"name": "Sam Staff", "email": "staff@example.com", "user_role": "staff"},
			},
		},
	}
}

func (f *FakeBackend) Login(ctx context.Context, creds domainauth.Credentials) (ports.LoginResponse, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}

	u, ok := f.Users[creds.Email]
	if !ok || u.Password != creds.Password {
		return ports.LoginResponse{}, apperrors.Unauthorized("Invalid credentials")
	}

	f.mu.Lock()
	f.loginCount++
	n := f.loginCount
	f.mu.Unlock()

	prefix := f.TokenPrefix
	if prefix == "" {
		prefix = "tok"
	}
	profile := make(map[string]any, len(u.Profile))
	for k, v := range u.Profile {
		profile[k] = v
	}
	return ports.LoginResponse{Token: fmt.Sprintf("%s-%d", prefix, n), Profile: profile}, nil
}

func (f *FakeBackend) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	f.loggedOut = append(f.loggedOut, token)
	f.mu.Unlock()
	if f.LogoutFunc != nil {
		return f.LogoutFunc(ctx, token)
	}
	return nil
}

// LoggedOut returns the tokens Logout was called with, in order.
func (f *FakeBackend) LoggedOut() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loggedOut...)
}

// ErrStorageDown is returned by FailingKV.
var ErrStorageDown = errors.New("storage unavailable")

// FailingKV is a KeyValueStore whose operations fail according to its flags.
type FailingKV struct {
	ports.KeyValueStore // delegate for operations that do not fail; may be nil

	FailGet    bool
	FailSet    bool
	FailDelete bool
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.FailGet || f.KeyValueStore == nil {
		return "", false, ErrStorageDown
	}
	return f.KeyValueStore.Get(ctx, key)
}

func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	if f.FailSet || f.KeyValueStore == nil {
		return ErrStorageDown
	}
	return f.KeyValueStore.Set(ctx, key, value)
}

func (f *FailingKV) Delete(ctx context.Context, keys ...string) error {
	if f.FailDelete || f.KeyValueStore == nil {
		return ErrStorageDown
	}
	return f.KeyValueStore.Delete(ctx, keys...)
}

// ContextKV fails every operation whose context is already done, the way network
// and database stores do.
type ContextKV struct {
	ports.KeyValueStore
}

func (c ContextKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	return c.KeyValueStore.Get(ctx, key)
}

func (c ContextKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.KeyValueStore.Set(ctx, key, value)
}

func (c ContextKV) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.KeyValueStore.Delete(ctx, keys...)
}
