package document

import (
	"context"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// UploadService stores PDF bytes and records their metadata
type UploadService struct {
	store  BlobStore
	repo   document.UploadedFileRepository
	logger *zap.Logger
}

// NewUploadService creates an UploadService
func NewUploadService(store BlobStore, repo document.UploadedFileRepository, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, repo: repo, logger: logger}
}

// Upload writes the bytes to storage first and then inserts the metadata row.
// Once started, both writes run to completion even if ctx is cancelled. The
// two writes are not atomic: a failed insert leaves an unreferenced object.
func (s *UploadService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, shared.NewDomainError(shared.CodeValidation, "No file uploaded")
	}

	ctx = context.WithoutCancel(ctx)
	ctx, span := telemetry.StartServiceSpan(ctx, "UploadService", "Upload",
		telemetry.AttrDocumentKind.String(in.Kind))
	defer span.End()

	key := document.NewStorageKey()
	backend, err := s.store.Put(ctx, key, in.Data, document.MimeTypePDF)
	if err != nil {
		uploadsTotal.WithLabelValues("none", statusFailed).Inc()
		telemetry.RecordError(span, err)
		s.logger.Error("upload storage write failed", zap.String("key", key), zap.Error(err))
		return nil, shared.WrapDomainError(shared.CodeStorageFailed, "Failed to store file", err)
	}

	file := document.NewUploadedFile(key, in.OriginalName, int64(len(in.Data)), in.BatchID, in.Kind)
	if err := s.repo.Create(ctx, file); err != nil {
		uploadsTotal.WithLabelValues(backend, statusFailed).Inc()
		telemetry.RecordError(span, err)
		s.logger.Error("upload metadata insert failed",
			zap.String("key", key),
			zap.String("backend", backend),
			zap.Error(err))
		return nil, shared.WrapDomainError(shared.CodeStorageFailed, "Failed to record file metadata", err)
	}

	uploadsTotal.WithLabelValues(backend, statusSuccess).Inc()
	uploadBytesTotal.Add(float64(len(in.Data)))
	telemetry.SetOK(span)
	s.logger.Info("file uploaded",
		zap.String("id", file.ID.String()),
		zap.String("filename", file.Filename),
		zap.String("backend", backend),
		zap.Int("bytes", len(in.Data)))

	return &UploadResult{
		ID:           file.ID.String(),
		Filename:     file.Filename,
		OriginalName: file.OriginalName,
		URL:          file.PublicURL(),
		Backend:      backend,
	}, nil
}
