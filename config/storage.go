package config

import (
	"fmt"
	"strings"
)

// StorageBackend selects where sessions and wizard drafts are kept.
type StorageBackend string

const (
	// StorageMemory keeps state in process; it is lost on restart.
	StorageMemory StorageBackend = "memory"
	// StorageRedis uses the REDIS_* connection.
	StorageRedis StorageBackend = "redis"
	// StoragePostgres uses the DB_* connection.
	StoragePostgres StorageBackend = "postgres"
	// StorageSQLite uses a local file at STORAGE_SQLITE_PATH.
	StorageSQLite StorageBackend = "sqlite"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (s *StorageBackend) UnmarshalText(text []byte) error {
	v := StorageBackend(strings.ToLower(strings.TrimSpace(string(text))))
	switch v {
	case StorageMemory, StorageRedis, StoragePostgres, StorageSQLite:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: memory, redis, postgres, sqlite)", string(text))
	}
}

// StorageConfig groups session storage settings.
type StorageConfig struct {
	Backend    StorageBackend `env:"STORAGE_BACKEND"     envDefault:"memory"`
	KeyPrefix  string         `env:"STORAGE_KEY_PREFIX"  envDefault:"boxoffice:"`
	SQLitePath string         `env:"STORAGE_SQLITE_PATH" envDefault:"boxoffice.db"`
}

// Sanitize fills empty values with their defaults.
func (s *StorageConfig) Sanitize() {
	if s.Backend == "" {
		s.Backend = StorageMemory
	}
	if strings.TrimSpace(s.SQLitePath) == "" {
		s.SQLitePath = "boxoffice.db"
	}
}
