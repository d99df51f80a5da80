// Package storage provides the key-value persistence backends the todo list,
// history archive and theme preference are written to.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the narrow read/write contract consumers persist through.
// Values are opaque bytes; there are no guarantees across keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Backend is a KVStore with a connection lifecycle.
type Backend interface {
	KVStore
	Name() string
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite    = "sqlite"
	BackendRedis     = "redis"
	BackendJetStream = "jetstream"
	BackendMemory    = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Backend           string `mapstructure:"backend"`
	SQLitePath        string `mapstructure:"sqlite_path"`
	RedisAddr         string `mapstructure:"redis_addr"`
	RedisPrefix       string `mapstructure:"redis_prefix"`
	NATSURL           string `mapstructure:"nats_url"`
	Bucket            string `mapstructure:"bucket"`
	QuarantineCorrupt bool   `mapstructure:"quarantine_corrupt"`
	Debug             bool   `mapstructure:"debug"`
}

// Open connects the configured backend.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		return OpenSQLite(cfg.SQLitePath, cfg.Debug)
	case BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case BackendJetStream:
		s, err := NewJetStreamStore(cfg.NATSURL, cfg.Bucket)
		if err != nil {
			return nil, err
		}
		if err := s.Init(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// CorruptSuffix is appended to a key when its unreadable payload is set aside.
const CorruptSuffix = ".corrupt"

// Quarantine copies an unreadable payload to key+CorruptSuffix so a later
// overwrite of key does not destroy it.
func Quarantine(ctx context.Context, kv KVStore, key string, data []byte) error {
	if err := kv.Set(ctx, key+CorruptSuffix, data); err != nil {
		return fmt.Errorf("failed to quarantine %s: %w", key, err)
	}
	return nil
}

// DefaultTimeout bounds a single storage call made without a caller deadline.
const DefaultTimeout = 5 * time.Second
