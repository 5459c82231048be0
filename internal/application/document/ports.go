package document

import (
	"context"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/infrastructure/storage"
)

// TemplateRenderer turns a map of field values into the HTML of one kind
type TemplateRenderer interface {
	Render(ctx context.Context, kind document.Kind, data any) (string, error)
}

// BlobStore writes and reads stored files. storage.FallbackStore implements it.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) (*storage.Object, string, error)
}

var _ BlobStore = (*storage.FallbackStore)(nil)
