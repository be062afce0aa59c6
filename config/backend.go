package config

import (
	"strings"
	"time"
)

// DefaultBackendURL is used when neither BACKEND_API_URL nor VITE_API_URL is set.
const DefaultBackendURL = "https://api.boxoffice.example.com"

// BackendConfig configures the remote ticketing API.
type BackendConfig struct {
	// APIURL takes precedence over ViteAPIURL.
	APIURL string `env:"BACKEND_API_URL"`
	// ViteAPIURL is honoured so existing frontend deployments keep their setting.
	ViteAPIURL string `env:"VITE_API_URL"`

	// FanoutLimit caps concurrent sub-requests when a view joins several resources.
	FanoutLimit int `env:"BACKEND_FANOUT_LIMIT" envDefault:"8"`

	// Timeout bounds each backend request. Zero means no client-side timeout.
	Timeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
}

// BaseURL resolves the backend base URL without a trailing slash.
func (b BackendConfig) BaseURL() string {
	for _, v := range []string{b.APIURL, b.ViteAPIURL} {
		if v = strings.TrimRight(strings.TrimSpace(v), "/"); v != "" {
			return v
		}
	}
	return DefaultBackendURL
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	if b.FanoutLimit < 0 {
		b.FanoutLimit = 0
	}
	if b.Timeout < 0 {
		b.Timeout = 0
	}
}
