package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned when no object exists under the requested key
var ErrObjectNotFound = errors.New("object not found")

// Object is a stored blob and its content type
type Object struct {
	Data        []byte
	ContentType string
}

// ObjectStore is a flat key-value blob store
type ObjectStore interface {
	// Put writes data under key, replacing any existing object
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get reads the object under key; a missing key wraps ErrObjectNotFound
	Get(ctx context.Context, key string) (*Object, error)
	// Name identifies the backend in logs and results
	Name() string
}
