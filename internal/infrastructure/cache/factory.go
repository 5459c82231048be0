package cache

import (
	"fmt"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// AssetStore is an asset preference store that owns a connection
type AssetStore interface {
	document.AssetPreferences
	Close() error
}

// AssetStoreFactory creates asset preference stores based on configuration
type AssetStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// AssetStoreFactoryOption is a functional option for configuring the factory
type AssetStoreFactoryOption func(*AssetStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) AssetStoreFactoryOption {
	return func(f *AssetStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory store when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) AssetStoreFactoryOption {
	return func(f *AssetStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewAssetStoreFactory creates a new factory
func NewAssetStoreFactory(cfg config.RedisConfig, opts ...AssetStoreFactoryOption) *AssetStoreFactory {
	f := &AssetStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore returns a Redis store when Redis is configured and reachable.
// An empty Redis host selects the in-memory store directly; an unreachable
// Redis falls back to it when allowed.
func (f *AssetStoreFactory) CreateStore() (AssetStore, error) {
	if f.redisConfig.Host == "" {
		f.logger.Info("Redis not configured, using in-memory asset preference store")
		return NewInMemoryAssetStore(), nil
	}

	store, err := NewRedisAssetStore(RedisConfig{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis asset preference store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for asset preferences but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory asset preference store. "+
		"Asset changes will not be shared across instances.",
		zap.Error(err),
	)
	return NewInMemoryAssetStore(), nil
}
