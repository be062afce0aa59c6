package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"testing"
	"time"

	// Import pgx driver for database/sql compatibility in tests.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/target/boxoffice/internal/adapters/postgres"
)

// TestDBConfig holds configuration for test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig returns the test database settings.
// Port 55432 matches the docker-compose test profile; CI sets TEST_DB_PORT=5432.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "boxoffice"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "boxoffice"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "boxoffice"),
	}
}

func buildBaseDSN(cfg TestDBConfig) string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": {getEnvOrDefault("DB_SSL_MODE", "disable")}}.Encode(),
	}
	return u.String()
}

func generateSchemaName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}

func openPing(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SetupTestDB returns a connection scoped to a fresh schema with the session table migrated.
// The schema is dropped when the test ends. The test is skipped when Postgres is unreachable
// unless TEST_REQUIRE_DB or TEST_REQUIRE_INFRA is set.
func SetupTestDB(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()

	base := buildBaseDSN(DefaultTestDBConfig())
	admin, err := openPing(ctx, base)
	if err != nil {
		if required("TEST_REQUIRE_DB") {
			t.Fatal("test database not available:", err)
		}
		t.Skip("test database not available:", err)
	}

	schema := generateSchemaName()
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		_ = admin.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	u, _ := url.Parse(base)
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	db, err := openPing(ctx, u.String())
	t.Cleanup(func() {
		if db != nil {
			_ = db.Close()
		}
		if _, err := admin.ExecContext(context.Background(), "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		_ = admin.Close()
	})
	if err != nil {
		t.Fatalf("open schema %s: %v", schema, err)
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		t.Fatal("run migrations:", err)
	}
	return db
}

// WithTestDB runs fn against a database from SetupTestDB.
func WithTestDB(t testing.TB, fn func(*sql.DB)) {
	t.Helper()
	fn(SetupTestDB(t))
}
