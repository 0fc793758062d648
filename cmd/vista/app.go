package main

import (
	"fmt"
	"log/slog"
	"os"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/vista"
	"github.com/aretw0/vista/internal/config"
	"github.com/aretw0/vista/internal/logging"
	"github.com/aretw0/vista/pkg/adapters/file"
	"github.com/aretw0/vista/pkg/adapters/memory"
	"github.com/aretw0/vista/pkg/adapters/redis"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/session"
)

func newLogger(c config.LogConfig) *slog.Logger {
	level := logging.ParseLevel(c.Level)
	if c.Format == "json" {
		return logging.NewJSON(os.Stderr, level)
	}
	return logging.New(level)
}

func newViewer(c config.Config, logger *slog.Logger, hooks domain.LifecycleHooks) (*vista.Viewer, error) {
	v, err := vista.New(c.Tour,
		vista.WithLogger(logger),
		vista.WithLifecycleHooks(hooks),
		vista.WithAssetBase(c.Assets.Base),
	)
	if err != nil {
		return nil, fmt.Errorf("error initializing vista: %w", err)
	}
	return v, nil
}

// newSessions builds the session manager for the configured store.
// The returned func releases the store's connections.
func newSessions(c config.Config, logger *slog.Logger) (*session.Manager, func(), error) {
	opts := []session.Option{session.WithLogger(logger)}

	switch c.Session.Store {
	case "memory":
		return session.NewManager(memory.NewStore(), opts...), func() {}, nil
	case "file", "":
		return session.NewManager(file.New(c.Session.Dir), opts...), func() {}, nil
	case "redis":
		client := backend.NewClient(&backend.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
		store := redis.NewFromClient(client, redis.WithTTL(c.Session.TTL))
		opts = append(opts, session.WithLocker(redis.NewLocker(client, "vista:")))
		closer := func() {
			if err := store.Close(); err != nil {
				logger.Warn("failed to close redis client", "err", err)
			}
		}
		return session.NewManager(store, opts...), closer, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q (supported: memory, file, redis)", c.Session.Store)
	}
}
