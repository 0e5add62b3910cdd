package storage

import (
	"context"
	"fmt"
	"time"

	"clientportal/internal/config"
)

// Open returns the durable store selected by cfg.StorageDriver.
func Open(cfg config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "", "file":
		s, err := NewFileStorage(cfg.StoragePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		s := NewRedisStorage(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("storage: redis ping: %w", err)
		}
		return s, nil
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("storage: DATABASE_URL is empty")
		}
		s, err := OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
	}
}
