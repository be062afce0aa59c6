package config

import (
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "production")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Error("IsDev should default to false")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Storage.Backend != StorageMemory {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Storage.KeyPrefix != "boxoffice:" {
		t.Errorf("Storage.KeyPrefix = %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Auth.LoginPath != DefaultLoginPath {
		t.Errorf("Auth.LoginPath = %q", cfg.Auth.LoginPath)
	}
	if cfg.Auth.SessionCookie != "boxoffice_sid" {
		t.Errorf("Auth.SessionCookie = %q", cfg.Auth.SessionCookie)
	}
	if cfg.Auth.LoadingAfter != 2*time.Second {
		t.Errorf("Auth.LoadingAfter = %v", cfg.Auth.LoadingAfter)
	}
	if cfg.Backend.BaseURL() != DefaultBackendURL {
		t.Errorf("Backend.BaseURL() = %q", cfg.Backend.BaseURL())
	}
	if cfg.Backend.FanoutLimit != 8 {
		t.Errorf("Backend.FanoutLimit = %d", cfg.Backend.FanoutLimit)
	}
	if cfg.HTTP.Addr != ":8080" || cfg.HTTP.MaxUploadBytes != 10<<20 {
		t.Errorf("unexpected HTTP defaults: %+v", cfg.HTTP)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("AUTH_LOGIN_PATH", "/signin")
	t.Setenv("AUTH_ROLE_PATHS", "user.role; claims.roles[0] ;")
	t.Setenv("AUTH_SESSION_COOKIE", "sid")
	t.Setenv("GUARD_LOADING_AFTER", "500ms")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_URI", "redis://cache:6379/0")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_COMPRESSION_LEVEL", "12")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expectedAuth := AuthConfig{
		LoginPath:     "/signin",
		RolePaths:     []string{"user.role", "claims.roles[0]"},
		SessionCookie: "sid",
		LogoutTimeout: DefaultLogoutTimeout,
		LoadingAfter:  500 * time.Millisecond,
	}
	if !reflect.DeepEqual(cfg.Auth, expectedAuth) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expectedAuth, cfg.Auth)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Storage.Backend != StorageRedis {
		t.Errorf("Storage.Backend = %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Redis.URI != "redis://cache:6379/0" || cfg.Postgres.Host != "db.internal" {
		t.Errorf("connection settings not parsed: %+v %+v", cfg.Redis, cfg.Postgres)
	}
	if cfg.HTTP.CompressionLevel != 9 {
		t.Errorf("CompressionLevel = %d, want clamp to 9", cfg.HTTP.CompressionLevel)
	}
}

func TestAppConfig_InvalidStorageBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected an error for an unknown storage backend")
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	tests := []struct {
		name    string
		dev     string
		nodeEnv string
		want    bool
	}{
		{name: "DEV flag", dev: "true", nodeEnv: "", want: true},
		{name: "NODE_ENV development", dev: "false", nodeEnv: "development", want: true},
		{name: "NODE_ENV dev", dev: "false", nodeEnv: "dev", want: true},
		{name: "production", dev: "false", nodeEnv: "production", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DEV", tt.dev)
			t.Setenv("NODE_ENV", tt.nodeEnv)

			var cfg AppConfig
			if err := env.Parse(&cfg); err != nil {
				t.Fatalf("parse config: %v", err)
			}
			cfg.Sanitize()
			if cfg.IsDev != tt.want {
				t.Errorf("IsDev = %v, want %v", cfg.IsDev, tt.want)
			}
		})
	}
}

func TestBackendConfig_BaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  BackendConfig
		want string
	}{
		{name: "default", cfg: BackendConfig{}, want: DefaultBackendURL},
		{name: "vite fallback", cfg: BackendConfig{ViteAPIURL: "https://vite.example.com/"}, want: "https://vite.example.com"},
		{
			name: "backend wins",
			cfg:  BackendConfig{APIURL: " https://api.internal/v1/ ", ViteAPIURL: "https://vite.example.com"},
			want: "https://api.internal/v1",
		},
		{name: "blank ignored", cfg: BackendConfig{APIURL: "  "}, want: DefaultBackendURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuthConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name      string
		loginPath string
		want      string
	}{
		{name: "local path kept", loginPath: "/login", want: "/login"},
		{name: "absolute url replaced", loginPath: "https://evil.example.com", want: DefaultLoginPath},
		{name: "protocol relative replaced", loginPath: "//evil.example.com", want: DefaultLoginPath},
		{name: "empty replaced", loginPath: "", want: DefaultLoginPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AuthConfig{LoginPath: tt.loginPath, LoadingAfter: -time.Second}
			a.Sanitize()
			if a.LoginPath != tt.want {
				t.Errorf("LoginPath = %q, want %q", a.LoginPath, tt.want)
			}
			if a.LoadingAfter != 0 {
				t.Errorf("LoadingAfter = %v, want 0", a.LoadingAfter)
			}
		})
	}
}

func TestAuthConfig_SanitizeFillsBlankDefaults(t *testing.T) {
	a := AuthConfig{SessionCookie: "  ", LogoutTimeout: -time.Second}
	a.Sanitize()
	if a.SessionCookie != DefaultSessionCookie {
		t.Errorf("SessionCookie = %q, want %q", a.SessionCookie, DefaultSessionCookie)
	}
	if a.LogoutTimeout != DefaultLogoutTimeout {
		t.Errorf("LogoutTimeout = %v, want %v", a.LogoutTimeout, DefaultLogoutTimeout)
	}

	a = AuthConfig{SessionCookie: " sid ", LogoutTimeout: time.Second}
	a.Sanitize()
	if a.SessionCookie != "sid" || a.LogoutTimeout != time.Second {
		t.Errorf("configured values changed: %q %v", a.SessionCookie, a.LogoutTimeout)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{CompressionLevel: 0}
	h.Sanitize()
	if h.CompressionLevel != 1 {
		t.Errorf("CompressionLevel = %d, want 1", h.CompressionLevel)
	}
	if h.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", h.Addr)
	}
	if h.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v", h.ShutdownTimeout)
	}
}

func TestMetricsConfig_Sanitize(t *testing.T) {
	m := MetricsConfig{Enabled: true, StatsdAddress: "  ", Prefix: " .boxoffice. "}
	m.Sanitize()
	if m.IsEnabled() {
		t.Error("metrics without an address must be disabled")
	}
	if m.Prefix != "boxoffice" {
		t.Errorf("Prefix = %q, want boxoffice", m.Prefix)
	}

	m = MetricsConfig{Enabled: true, StatsdAddress: "statsd:8125"}
	m.Sanitize()
	if !m.IsEnabled() {
		t.Error("metrics with an address should stay enabled")
	}
}
