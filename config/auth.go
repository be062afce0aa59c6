package config

import (
	"strings"
	"time"
)

// DefaultLoginPath is where unauthenticated browsers are sent.
const DefaultLoginPath = "/auth/login"

// DefaultSessionCookie names the browser scope cookie when none is configured.
const DefaultSessionCookie = "boxoffice_sid"

// DefaultLogoutTimeout bounds the remote logout call when none is configured.
const DefaultLogoutTimeout = 5 * time.Second

// AuthConfig groups session and authorization configuration.
type AuthConfig struct {
	// LoginPath is the guard's redirect target for unauthenticated requests.
	LoginPath string `env:"AUTH_LOGIN_PATH" envDefault:"/auth/login"`

	// RolePaths are extra JMESPath expressions tried after the built-in role keys,
	// e.g. "user.role;claims.roles[0]".
	RolePaths []string `env:"AUTH_ROLE_PATHS" envSeparator:";"`

	// SessionCookie names the browser scope cookie.
	SessionCookie string `env:"AUTH_SESSION_COOKIE" envDefault:"boxoffice_sid"`

	// LogoutTimeout bounds the remote logout call; the local session is cleared either way.
	LogoutTimeout time.Duration `env:"AUTH_LOGOUT_TIMEOUT" envDefault:"5s"`

	// LoadingAfter is how long a guarded page waits on the session lookup
	// before answering with the loading placeholder. Zero disables the placeholder.
	LoadingAfter time.Duration `env:"GUARD_LOADING_AFTER" envDefault:"2s"`
}

// Sanitize trims role paths, keeps the login path local and fills blank defaults.
func (a *AuthConfig) Sanitize() {
	paths := a.RolePaths[:0]
	for _, p := range a.RolePaths {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	a.RolePaths = paths

	a.LoginPath = strings.TrimSpace(a.LoginPath)
	if !strings.HasPrefix(a.LoginPath, "/") || strings.HasPrefix(a.LoginPath, "//") {
		a.LoginPath = DefaultLoginPath
	}
	a.SessionCookie = strings.TrimSpace(a.SessionCookie)
	if a.SessionCookie == "" {
		a.SessionCookie = DefaultSessionCookie
	}
	if a.LogoutTimeout <= 0 {
		a.LogoutTimeout = DefaultLogoutTimeout
	}
	if a.LoadingAfter < 0 {
		a.LoadingAfter = 0
	}
}
