package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/target/boxoffice/config"
	"github.com/target/boxoffice/internal/adapters/authroles"
	domainauth "github.com/target/boxoffice/internal/domain/auth"
	"github.com/target/boxoffice/internal/ports"
	"github.com/target/boxoffice/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth      config.AuthConfig
	KV        ports.KeyValueStore
	Backend   ports.AuthBackend
	KeyPrefix string
	Logger    *slog.Logger
}

// BuildRoleNormalizer appends one JMESPath extractor per configured role path
// to the built-in role key chain.
func BuildRoleNormalizer(paths []string) (*domainauth.Normalizer, error) {
	extra := make([]domainauth.RoleExtractor, 0, len(paths))
	for _, p := range paths {
		ex, err := authroles.NewJMESPathExtractor(p)
		if err != nil {
			return nil, fmt.Errorf("AUTH_ROLE_PATHS: %w", err)
		}
		extra = append(extra, ex)
	}
	return domainauth.NewNormalizer(extra...), nil
}

// BuildSessionStore creates the session store shared by the auth service and the CLI.
func BuildSessionStore(cfg AuthConfig) (*service.SessionStore, error) {
	if cfg.KV == nil {
		return nil, fmt.Errorf("session store requires a key/value store")
	}
	normalizer, err := BuildRoleNormalizer(cfg.Auth.RolePaths)
	if err != nil {
		return nil, err
	}
	return service.NewSessionStore(service.SessionStoreOptions{
		KV:         cfg.KV,
		Prefix:     cfg.KeyPrefix,
		Normalizer: normalizer,
		Logger:     cfg.Logger,
	}), nil
}

// BuildAuthService creates the auth service over the configured storage and backend.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	if cfg.Backend == nil {
		return nil, fmt.Errorf("auth service requires a backend")
	}
	sessions, err := BuildSessionStore(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Logger != nil && len(cfg.Auth.RolePaths) > 0 {
		cfg.Logger.Info("extra role paths configured", "paths", cfg.Auth.RolePaths)
	}
	return service.NewAuthService(service.AuthServiceOptions{
		Backend:  cfg.Backend,
		Sessions:      sessions,
		Logger:        cfg.Logger,
		LogoutTimeout: cfg.Auth.LogoutTimeout,
	}), nil
}
