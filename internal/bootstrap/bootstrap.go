// Package bootstrap builds the backends selected by configuration. The
// server and the admin CLI share it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"staging-console-backend/internal/checkout"
	"staging-console-backend/internal/config"
	"staging-console-backend/internal/lastread"
	"staging-console-backend/internal/objectstore"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/store"
	"staging-console-backend/internal/supabase"
)

func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.LogFormat == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.LogLevel {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

// OpenStore connects the configured record store. The returned close func is
// never nil.
func OpenStore(cfg *config.Config, logger *zap.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize database client: %w", err)
		}
		return db, db.Close, nil
	case config.StoreRest:
		client, err := supabase.NewClient(cfg)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to initialize supabase client: %w", err)
		}
		return client.Rest(), noop, nil
	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// OpenBlobs connects the configured artifact storage.
func OpenBlobs(ctx context.Context, cfg *config.Config) (services.BlobStorage, error) {
	switch cfg.BlobBackend {
	case config.BlobMinio:
		blobs, err := objectstore.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		if err := blobs.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return blobs, nil
	case config.BlobSupabase:
		blobs, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage client: %w", err)
		}
		return blobs, nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}

// OpenMarkers returns the last-read marker store: Redis when REDIS_ADDR is
// set and reachable, memory otherwise.
func OpenMarkers(ctx context.Context, cfg *config.Config, logger *zap.Logger) (lastread.Store, func() error) {
	if cfg.RedisAddr == "" {
		return lastread.NewMemoryStore(), func() error { return nil }
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, keeping last-read markers in memory",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err))
		rdb.Close()
		return lastread.NewMemoryStore(), func() error { return nil }
	}
	return lastread.NewRedisStore(rdb), rdb.Close
}

// NewCheckout returns the checkout client, or nil when no provider is
// configured.
func NewCheckout(cfg *config.Config) services.CheckoutTrigger {
	if cfg.CheckoutAPIBaseURL == "" {
		return nil
	}
	return checkout.NewClient(cfg.CheckoutAPIBaseURL, cfg.CheckoutAPIKey)
}
