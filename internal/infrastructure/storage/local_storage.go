package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Ensure LocalStorage implements ObjectStore
var _ ObjectStore = (*LocalStorage)(nil)

// ErrInvalidKey is returned for keys that would escape the storage directory
var ErrInvalidKey = errors.New("invalid storage key")

// LocalStorageConfig contains configuration for local directory storage
type LocalStorageConfig struct {
	// BasePath is the directory files are written to
	// Default: public/upload
	BasePath string
	// Logger for operations
	Logger *zap.Logger
}

// LocalStorage stores files flat in one directory on the local file system
type LocalStorage struct {
	basePath string
	logger   *zap.Logger
}

// NewLocalStorage creates the directory if needed and returns a LocalStorage
func NewLocalStorage(config *LocalStorageConfig) (*LocalStorage, error) {
	if config == nil {
		config = &LocalStorageConfig{}
	}
	basePath := config.BasePath
	if basePath == "" {
		basePath = "public/upload"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStorage{basePath: basePath, logger: logger}, nil
}

// Put writes data to {base}/{key}
func (s *LocalStorage) Put(ctx context.Context, key string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("operation cancelled: %w", err)
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return err
	}

	// Write to a temp file first so readers never see a partial file
	tmp, err := os.CreateTemp(s.basePath, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod file: %w", err)
	}
	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}

// Get reads {base}/{key}
func (s *LocalStorage) Get(ctx context.Context, key string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("operation cancelled: %w", err)
	}
	fullPath, err := s.resolve(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return &Object{
		Data:        data,
		ContentType: mime.TypeByExtension(filepath.Ext(key)),
	}, nil
}

// Name identifies the backend in logs
func (s *LocalStorage) Name() string {
	return "local"
}

// BasePath returns the storage directory
func (s *LocalStorage) BasePath() string {
	return s.basePath
}

// resolve maps key to a path inside basePath, rejecting traversal
func (s *LocalStorage) resolve(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || containsDotDot(key) {
		s.logger.Warn("blocked potentially malicious key", zap.String("key", key))
		return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}

	fullPath := filepath.Join(s.basePath, key)

	// Additional security: verify the resolved path is still under basePath
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base path: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		s.logger.Warn("path escape attempt blocked",
			zap.String("key", key),
			zap.String("absPath", absPath))
		return "", fmt.Errorf("%q: %w", key, ErrInvalidKey)
	}
	return fullPath, nil
}

// containsDotDot checks if a path contains ".." components
func containsDotDot(path string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	return slices.Contains(parts, "..") || path == ".."
}
