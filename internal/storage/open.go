package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"quickcare/internal/cache"
	"quickcare/internal/config"
	"quickcare/internal/db"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the backend named by cfg.StoreBackend. The returned closer
// releases the backend connections.
func Open(ctx context.Context, cfg *config.Config) (Store, io.Closer, error) {
	log := logrus.WithField("backend", cfg.StoreBackend)

	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		log.Info("using in-memory store")
		return NewMemoryStore(), nopCloser{}, nil

	case config.BackendRedis:
		client := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx); err != nil {
			log.WithError(err).Warn("redis unreachable, store will behave as empty until it recovers")
		}
		return NewRedisStore(client), client, nil

	case config.BackendMySQL, config.BackendPostgres:
		open := db.NewMySQL
		dsn := cfg.MySQLDSN
		if cfg.StoreBackend == config.BackendPostgres {
			open, dsn = db.NewPostgres, cfg.PostgresDSN
		}
		gormDB, err := open(dsn)
		if err != nil {
			return nil, nil, err
		}
		store, err := NewSQLStore(gormDB)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("sql handle: %w", err)
		}
		return store, sqlDB, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
