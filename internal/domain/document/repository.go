package document

import "context"

// UploadedFileRepository defines the interface for file metadata persistence
type UploadedFileRepository interface {
	// Create inserts a new record
	Create(ctx context.Context, file *UploadedFile) error

	// FindByFilename finds a record by its storage key
	FindByFilename(ctx context.Context, filename string) (*UploadedFile, error)

	// FindAllNewestFirst returns every record ordered by creation time, newest first
	FindAllNewestFirst(ctx context.Context) ([]*UploadedFile, error)

	// FindByBatchID returns the records stamped with batchID, newest first
	FindByBatchID(ctx context.Context, batchID string) ([]*UploadedFile, error)
}
