// Package postgres provides a PostgreSQL-backed session storage adapter.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	// Register the pgx database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/migrate"
	"github.com/target/boxoffice/internal/ports"
)

// TableName is the table session values are stored in.
const TableName = "boxoffice_kv"

var _ ports.KeyValueStore = (*KVStore)(nil)

// KVStore stores session values in a single key/value table.
type KVStore struct {
	DB *sql.DB
}

// NewKVStore creates a new KVStore.
func NewKVStore(db *sql.DB) *KVStore {
	return &KVStore{DB: db}
}

// Migrate creates the storage table if needed.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := migrate.Run(ctx, db, nil)
	return err
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM boxoffice_kv WHERE key = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperrors.MapDBError(err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return apperrors.Validation("key cannot be empty")
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO boxoffice_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, value)
	return apperrors.MapDBError(err)
}

func (s *KVStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.DB.ExecContext(ctx, `DELETE FROM boxoffice_kv WHERE key = ANY($1)`, keys)
	return apperrors.MapDBError(err)
}

// Ping reports whether the database is reachable.
func (s *KVStore) Ping(ctx context.Context) error {
	return apperrors.MapDBError(s.DB.PingContext(ctx))
}
