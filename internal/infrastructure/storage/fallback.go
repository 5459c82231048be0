package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// FallbackStore writes and reads through a primary object store and falls
// back once to a local store. The primary may be nil when object storage is
// disabled.
type FallbackStore struct {
	primary ObjectStore
	local   ObjectStore
	logger  *zap.Logger
}

// NewFallbackStore creates a FallbackStore
func NewFallbackStore(primary, local ObjectStore, logger *zap.Logger) *FallbackStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackStore{primary: primary, local: local, logger: logger}
}

// Put stores data in the primary store, or in the local store when the
// primary is disabled or fails. It returns the name of the backend used.
func (f *FallbackStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	var primaryErr error
	if f.primary != nil {
		primaryErr = f.primary.Put(ctx, key, data, contentType)
		if primaryErr == nil {
			return f.primary.Name(), nil
		}
		f.logger.Warn("primary storage write failed, using local storage",
			zap.String("key", key),
			zap.String("backend", f.primary.Name()),
			zap.Error(primaryErr))
	}

	if err := f.local.Put(ctx, key, data, contentType); err != nil {
		if primaryErr != nil {
			return "", fmt.Errorf("all storage backends failed: %w", errors.Join(primaryErr, err))
		}
		return "", fmt.Errorf("local storage write failed: %w", err)
	}
	return f.local.Name(), nil
}

// Get reads key from the primary store and falls back once to the local
// store. It wraps ErrObjectNotFound when neither has the object.
func (f *FallbackStore) Get(ctx context.Context, key string) (*Object, string, error) {
	if f.primary != nil {
		obj, err := f.primary.Get(ctx, key)
		if err == nil {
			return obj, f.primary.Name(), nil
		}
		f.logger.Debug("primary storage read failed, trying local storage",
			zap.String("key", key),
			zap.String("backend", f.primary.Name()),
			zap.Error(err))
	}

	obj, err := f.local.Get(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return obj, f.local.Name(), nil
}
