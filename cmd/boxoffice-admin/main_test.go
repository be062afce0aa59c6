package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/boxoffice/config"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-42",
		Issuer:    "tickets-api",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func fakeAPI(t *testing.T, token string) *httptest.Server {
	t.Helper()
	authorized := func(r *http.Request) bool { return r.Header.Get("Authorization") == "Bearer "+token }
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]any{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, map[string]any{
			"access_token": token,
			"profile":      map[string]any{"name": "Ada", "email": creds.Email, "userRole": "Organizer", "isAdmin": true},
		})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"success": true})
	})
	mux.HandleFunc("GET /api/events", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, map[string]any{"events": []map[string]any{
			{"id": "evt-1", "name": "Jazz Night", "venue_id": "ven-1", "starts_at": "2026-12-31T20:00:00Z"},
			{"id": "evt-2", "name": "Rock Fest", "venue_id": "ven-gone"},
		}})
	})
	mux.HandleFunc("GET /api/venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "ven-1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, map[string]any{"venue": map[string]any{"id": "ven-1", "name": "Blue Hall"}})
	})
	mux.HandleFunc("GET /api/venues", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"data": []map[string]any{{"id": "ven-1", "name": "Blue Hall", "city": "Oslo", "capacity": 300}}})
	})
	mux.HandleFunc("GET /api/tickets", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"tickets": []map[string]any{
			{"id": "t-1", "event_id": "evt-1", "price": 50, "status": "sold"},
			{"id": "t-2", "event_id": "evt-1", "price": 40, "status": "reserved"},
			{"id": "t-3", "event_id": "evt-2", "price": 30, "status": "SOLD"},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestContext(t *testing.T, apiURL string) (*commandContext, *bytes.Buffer) {
	t.Helper()
	cfg := config.AppConfig{
		Backend: config.BackendConfig{APIURL: apiURL},
		Storage: config.StorageConfig{
			Backend:    config.StorageSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "cli.db"),
		},
	}
	cfg.Sanitize()
	out := &bytes.Buffer{}
	return &commandContext{
		Ctx:    context.Background(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
		Out:    out,
	}, out
}

func TestPrintUsageListsCommandsSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	assert.Contains(t, out, "Usage: boxoffice-admin <command> [flags]")
	assert.Less(t, strings.Index(out, "events"), strings.Index(out, "whoami"))
	for name := range commands() {
		assert.Contains(t, out, "  "+name)
	}
}

func TestParseLoginFlags(t *testing.T) {
	t.Setenv(passwordEnv, "")
	_, err := parseLoginFlags([]string{"-password", "x"})
	require.ErrorContains(t, err, "--email")

	_, err = parseLoginFlags([]string{"-email", "a@example.com"})
	require.ErrorContains(t, err, passwordEnv)

	t.Setenv(passwordEnv, "from-env")
	opts, err := parseLoginFlags([]string{"-email", "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", opts.Password)
	assert.Equal(t, defaultScope, opts.Scope)
}

func TestParseHasRoleFlagsAcceptsPositionalRole(t *testing.T) {
	opts, err := parseHasRoleFlags([]string{"admin"})
	require.NoError(t, err)
	assert.Equal(t, "admin", opts.Role)

	_, err = parseHasRoleFlags(nil)
	require.Error(t, err)
}

func TestTokenLines(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"Token:  opaque"}, tokenLines("not-a-jwt", now))

	lines := tokenLines(signedToken(t, now.Add(-time.Hour)), now)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Token:  JWT")
	assert.Contains(t, joined, "subject: user-42")
	assert.Contains(t, joined, "(expired)")
}

func TestSessionCommands(t *testing.T) {
	token := signedToken(t, time.Now().Add(time.Hour))
	srv := fakeAPI(t, token)
	cmdCtx, out := newTestContext(t, srv.URL)

	require.ErrorIs(t, runWhoami(cmdCtx, nil), errNotLoggedIn)

	err := runLogin(cmdCtx, []string{"-email", "ada@example.com", "-password", "wrong"})
	require.ErrorContains(t, err, "Invalid credentials")

	require.NoError(t, runLogin(cmdCtx, []string{"-email", "ada@example.com", "-password", "pw"}))
	assert.Contains(t, out.String(), "Logged in as Ada (ada@example.com) role=organizer")

	out.Reset()
	require.NoError(t, runWhoami(cmdCtx, nil))
	assert.Contains(t, out.String(), "Roles:  organizer")
	assert.Contains(t, out.String(), "Admin flags: isAdmin")
	assert.Contains(t, out.String(), "(valid)")
	assert.NotContains(t, out.String(), token)

	require.NoError(t, runHasRole(cmdCtx, []string{"-role", "ADMIN"}), "admin flag widens the admin role")
	require.NoError(t, runHasRole(cmdCtx, []string{"organizer"}))
	require.Error(t, runHasRole(cmdCtx, []string{"staff"}))

	require.NoError(t, runLogout(cmdCtx, nil))
	require.ErrorIs(t, runEvents(cmdCtx, nil), errNotLoggedIn)
}

func TestCatalogCommands(t *testing.T) {
	token := "opaque-token"
	srv := fakeAPI(t, token)
	cmdCtx, out := newTestContext(t, srv.URL)
	require.NoError(t, runLogin(cmdCtx, []string{"-email", "ada@example.com", "-password", "pw"}))

	out.Reset()
	require.NoError(t, runEvents(cmdCtx, nil))
	assert.Contains(t, out.String(), "Blue Hall")
	assert.Contains(t, out.String(), "Unknown venue")
	assert.Contains(t, out.String(), "2026-12-31 20:00")

	out.Reset()
	require.NoError(t, runEvents(cmdCtx, []string{"-q", "rock"}))
	assert.NotContains(t, out.String(), "Jazz Night")
	assert.Contains(t, out.String(), "Rock Fest")

	out.Reset()
	require.NoError(t, runVenues(cmdCtx, nil))
	assert.Contains(t, out.String(), "Oslo")

	out.Reset()
	require.NoError(t, runTickets(cmdCtx, []string{"-status", "sold", "-event", "evt-1"}))
	assert.Contains(t, out.String(), "t-1")
	assert.NotContains(t, out.String(), "t-2")
	assert.NotContains(t, out.String(), "t-3")

	out.Reset()
	require.NoError(t, runStats(cmdCtx, nil))
	assert.Contains(t, out.String(), "Sales by event:")
	assert.Contains(t, out.String(), "Jazz Night")
}
