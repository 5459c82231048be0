package document

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/storage"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const defaultDownloadCacheEntries = 64

// DownloadService reads stored files by name. Uploaded PDFs never change, so
// their bytes are kept in a bounded LRU cache. Assets are overwritten in place
// and always read through.
type DownloadService struct {
	store   BlobStore
	records FileLookup
	cache   *lru.Cache[string, *DownloadedFile]
	logger  *zap.Logger
}

// FileLookup resolves the upload record behind a storage key
type FileLookup interface {
	FindByFilename(ctx context.Context, filename string) (*document.UploadedFile, error)
}

// DownloadServiceOption configures a DownloadService
type DownloadServiceOption func(*DownloadService)

// WithUploadRecords names downloaded PDFs after their upload record's original name.
func WithUploadRecords(records FileLookup) DownloadServiceOption {
	return func(s *DownloadService) {
		s.records = records
	}
}

// NewDownloadService creates a DownloadService caching up to cacheEntries PDFs
func NewDownloadService(store BlobStore, cacheEntries int, logger *zap.Logger, opts ...DownloadServiceOption) (*DownloadService, error) {
	if cacheEntries <= 0 {
		cacheEntries = defaultDownloadCacheEntries
	}
	cache, err := lru.New[string, *DownloadedFile](cacheEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create download cache: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DownloadService{store: store, cache: cache, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open returns the file stored under filename. Names holding a path
// separator or ".." are rejected; a file missing from every backend is NOT_FOUND.
func (s *DownloadService) Open(ctx context.Context, filename string) (*DownloadedFile, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	cacheable := strings.EqualFold(filepath.Ext(filename), ".pdf")
	if cacheable {
		if f, ok := s.cache.Get(filename); ok {
			downloadCacheTotal.WithLabelValues("hit").Inc()
			return f, nil
		}
		downloadCacheTotal.WithLabelValues("miss").Inc()
	}

	obj, backend, err := s.store.Get(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, shared.NewDomainError(shared.CodeNotFound, "File not found")
		}
		s.logger.Error("download failed", zap.String("filename", filename), zap.Error(err))
		return nil, shared.WrapDomainError(shared.CodeStorageFailed, "Failed to read file", err)
	}

	f := &DownloadedFile{
		Filename:    filename,
		DisplayName: filename,
		ContentType: contentTypeFor(filename, obj.ContentType),
		Data:        obj.Data,
	}
	if cacheable {
		f.DisplayName = s.displayName(ctx, filename)
		s.cache.Add(filename, f)
	}
	s.logger.Debug("file read", zap.String("filename", filename), zap.String("backend", backend))
	return f, nil
}

// displayName falls back to the storage key when no record names the file
func (s *DownloadService) displayName(ctx context.Context, filename string) string {
	if s.records == nil {
		return filename
	}
	rec, err := s.records.FindByFilename(ctx, filename)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("upload record lookup failed", zap.String("filename", filename), zap.Error(err))
		}
		return filename
	}
	if rec.OriginalName == "" {
		return filename
	}
	return rec.OriginalName
}

func validateFilename(name string) error {
	if name == "" {
		return shared.NewDomainError(shared.CodeValidation, "Filename is required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return shared.NewDomainError(shared.CodeValidation, "Invalid filename")
	}
	return nil
}

func contentTypeFor(name, stored string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return document.MimeTypePDF
	}
	if stored != "" && stored != "application/octet-stream" {
		return stored
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
