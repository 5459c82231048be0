package cache

import (
	"context"
	"sync"

	"github.com/freightdocs/backend/internal/domain/document"
)

// InMemoryAssetStore implements document.AssetPreferences using an in-memory map
// This is suitable for single-instance deployments and testing
type InMemoryAssetStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewInMemoryAssetStore creates a new in-memory asset preference store
func NewInMemoryAssetStore() *InMemoryAssetStore {
	return &InMemoryAssetStore{values: make(map[string]string)}
}

// Get returns the value under key, or "" when unset
func (s *InMemoryAssetStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

// Set stores value under key
func (s *InMemoryAssetStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Close is a no-op for the in-memory store
func (s *InMemoryAssetStore) Close() error {
	return nil
}

// Ensure InMemoryAssetStore implements AssetPreferences
var _ document.AssetPreferences = (*InMemoryAssetStore)(nil)
