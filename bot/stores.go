package bot

import (
	"context"
	"fmt"
	"time"

	"community-bot/model"
	"community-bot/utils/database"
	"community-bot/utils/database/memstore"
	"community-bot/utils/database/redisstore"
	"community-bot/utils/database/sqlstore"

	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// OpenStores picks the record store backend once. An empty DATABASE_URL selects memory; an
// unreachable database falls back to memory only when DB_FALLBACK_MEMORY allows it, and the
// returned stores are then marked Degraded.
func OpenStores(ctx context.Context, cfg *model.Config, logger *zap.Logger) (*database.Stores, error) {
	stores, err := openRecordStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.RedisURL == "" {
		return stores, nil
	}
	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := redisstore.Connect(cctx, cfg.RedisURL, logger)
	if err != nil {
		if !cfg.FallbackToMem {
			_ = stores.Close()
			return nil, err
		}
		logger.Warn("redis unavailable, keeping embed sessions in memory", zap.Error(err))
		stores.Degraded = true
		return stores, nil
	}
	stores.Sessions = redisstore.NewSessionStore(client, nil)
	stores.AddCloser(client.Close)
	return stores, nil
}

func openRecordStores(ctx context.Context, cfg *model.Config, logger *zap.Logger) (*database.Stores, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("no DATABASE_URL set, using in-memory stores; data will not persist")
		return memstore.New(nil), nil
	}

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	db, backend, err := sqlstore.Connect(cctx, cfg.DatabaseURL)
	if err != nil {
		if !cfg.FallbackToMem {
			return nil, fmt.Errorf("failed to open record stores: %w", err)
		}
		logger.Warn("database unavailable, falling back to in-memory stores", zap.Error(err))
		stores := memstore.New(nil)
		stores.Degraded = true
		return stores, nil
	}

	logger.Info("connected to database", zap.String("backend", backend))
	stores := sqlstore.New(db, backend, nil)
	stores.Sessions = memstore.NewSessionStore(nil)
	return stores, nil
}
