package repos

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"storefront/internal/config"
)

// Store bundles the backend chosen by configuration with whatever must be
// closed on shutdown.
type Store struct {
	Backend Backend
	closer  io.Closer
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.Storage {
	case "", "json":
		b, err := NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return &Store{Backend: b}, nil
	case "sqlite":
		db, err := OpenDB(cfg.DBDSN)
		if err != nil {
			return nil, err
		}
		return &Store{Backend: NewSQLiteBackend(db), closer: db}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return &Store{Backend: NewRedisBackend(client, cfg.RedisPrefix), closer: client}, nil
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}
