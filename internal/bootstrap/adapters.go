package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/boxoffice/config"
	"github.com/target/boxoffice/internal/adapters/memstore"
	"github.com/target/boxoffice/internal/adapters/postgres"
	redisadapter "github.com/target/boxoffice/internal/adapters/redis"
	"github.com/target/boxoffice/internal/adapters/sqlitestore"
	httpx "github.com/target/boxoffice/internal/http"
	"github.com/target/boxoffice/internal/ports"
)

// Storage is the KeyValueStore sessions and wizard drafts live in.
type Storage struct {
	KV ports.KeyValueStore
	// Pinger backs /readyz; nil for in-process storage.
	Pinger httpx.Pinger
	// Close releases connections; always safe to call.
	Close func() error
}

// StorageConfig contains configuration for BuildStorage.
type StorageConfig struct {
	Storage  config.StorageConfig
	Postgres config.DBConfig
	Redis    config.RedisConfig
	Logger   *slog.Logger
}

// BuildStorage connects the configured storage backend.
func BuildStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	noClose := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.StorageMemory, "":
		logger.Warn("using in-memory session storage; sessions are lost on restart")
		return Storage{KV: memstore.NewKVStore(), Close: noClose}, nil

	case config.StorageRedis:
		client, err := ConnectRedis(ctx, DatabaseConfig{RedisConfig: cfg.Redis, Logger: logger})
		if err != nil {
			return Storage{}, err
		}
		kv := redisadapter.NewKVStore(client)
		return Storage{KV: kv, Pinger: kv, Close: closeRedis(client)}, nil

	case config.StoragePostgres:
		db, err := ConnectDB(ctx, DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return Storage{}, err
		}
		if cfg.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, db, logger); err != nil {
				return Storage{}, errors.Join(err, closeDB(db)())
			}
		}
		kv := postgres.NewKVStore(db)
		return Storage{KV: kv, Pinger: kv, Close: closeDB(db)}, nil

	case config.StorageSQLite:
		kv, err := sqlitestore.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return Storage{}, fmt.Errorf("open sqlite storage: %w", err)
		}
		logger.Info("sqlite session storage opened", "path", cfg.Storage.SQLitePath)
		return Storage{KV: kv, Pinger: kv, Close: kv.Close}, nil
	}
	return Storage{}, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}

func closeRedis(client redis.UniversalClient) func() error {
	return func() error {
		if err := client.Close(); err != nil {
			return fmt.Errorf("close redis client: %w", err)
		}
		return nil
	}
}

func closeDB(db *sql.DB) func() error {
	return func() error {
		if err := db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
		return nil
	}
}
