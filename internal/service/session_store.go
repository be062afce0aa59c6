package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	domainauth "github.com/target/boxoffice/internal/domain/auth"
	"github.com/target/boxoffice/internal/ports"
)

// DefaultKeyPrefix namespaces session keys in shared stores.
const DefaultKeyPrefix = "boxoffice:"

// SessionStoreOptions groups dependencies for SessionStore.
type SessionStoreOptions struct {
	KV         ports.KeyValueStore    // Required
	Prefix     string                 // Optional: defaults to DefaultKeyPrefix
	Normalizer *domainauth.Normalizer // Optional: defaults to the built-in role key chain
	Logger     *slog.Logger           // Optional
}

// SessionStore keeps one session (token + profile) per scope in a KeyValueStore.
type SessionStore struct {
	kv         ports.KeyValueStore
	prefix     string
	normalizer *domainauth.Normalizer
	logger     *slog.Logger
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore constructs a SessionStore. It panics when KV is nil.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	if opts.KV == nil {
		panic("SessionStore requires a KeyValueStore")
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	n := opts.Normalizer
	if n == nil {
		n = domainauth.NewNormalizer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		kv:         opts.KV,
		prefix:     prefix,
		normalizer: n,
		logger:     logger.With("component", "session_store"),
	}
}

// TokenKey returns the key holding the scope's bearer token.
func (s *SessionStore) TokenKey(scope string) string { return s.prefix + scope + ":token" }

// ProfileKey returns the key holding the scope's JSON profile.
func (s *SessionStore) ProfileKey(scope string) string { return s.prefix + scope + ":user" }

// Save overwrites the scope's session. The token is written first, then the profile.
func (s *SessionStore) Save(ctx context.Context, scope, token string, profile domainauth.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := s.kv.Set(ctx, s.TokenKey(scope), token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	if err := s.kv.Set(ctx, s.ProfileKey(scope), string(data)); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Token returns the stored token; ok is false when none is stored.
func (s *SessionStore) Token(ctx context.Context, scope string) (string, bool, error) {
	tok, ok, err := s.kv.Get(ctx, s.TokenKey(scope))
	if err != nil {
		return "", false, fmt.Errorf("get token: %w", err)
	}
	return tok, ok, nil
}

// Profile returns the stored profile, normalized. Absent or unreadable profiles yield nil
// without an error; only storage failures are returned.
func (s *SessionStore) Profile(ctx context.Context, scope string) (*domainauth.Profile, error) {
	data, ok, err := s.kv.Get(ctx, s.ProfileKey(scope))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if !ok {
		return nil, nil
	}
	raw, err := domainauth.ParseRaw([]byte(data))
	if err != nil {
		s.logger.DebugContext(ctx, "discarding unreadable stored profile", "scope", scope, "error", err)
		return nil, nil
	}
	p := s.normalizer.Normalize(raw)
	return &p, nil
}

// Clear removes the scope's session. Clearing an empty scope is not an error.
func (s *SessionStore) Clear(ctx context.Context, scope string) error {
	if err := s.kv.Delete(ctx, s.TokenKey(scope), s.ProfileKey(scope)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a non-empty token is stored. Storage errors read as false.
func (s *SessionStore) IsAuthenticated(ctx context.Context, scope string) bool {
	tok, ok, err := s.Token(ctx, scope)
	if err != nil {
		s.logger.WarnContext(ctx, "session storage unavailable", "scope", scope, "error", err)
		return false
	}
	return ok && tok != ""
}
