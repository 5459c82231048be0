package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/redis/go-redis/v9"
)

const defaultAssetKeyPrefix = "freightdocs:"

// RedisAssetStore implements document.AssetPreferences using Redis
// so every instance renders with the same logo and signature
type RedisAssetStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisAssetStore connects to Redis and returns a store
func NewRedisAssetStore(cfg RedisConfig) (*RedisAssetStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisAssetStoreWithClient(client, ""), nil
}

// NewRedisAssetStoreWithClient creates a store with an existing Redis client
func NewRedisAssetStoreWithClient(client *redis.Client, keyPrefix string) *RedisAssetStore {
	if keyPrefix == "" {
		keyPrefix = defaultAssetKeyPrefix
	}
	return &RedisAssetStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get returns the value under key, or "" when unset
func (s *RedisAssetStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get asset preference: %w", err)
	}
	return val, nil
}

// Set stores value under key without expiry
func (s *RedisAssetStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set asset preference: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (s *RedisAssetStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (s *RedisAssetStore) Close() error {
	return s.client.Close()
}

// Ensure RedisAssetStore implements AssetPreferences
var _ document.AssetPreferences = (*RedisAssetStore)(nil)
