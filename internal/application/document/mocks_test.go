package document_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/printing"
	"github.com/freightdocs/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type MockUploadedFileRepository struct {
	mock.Mock
}

func (m *MockUploadedFileRepository) Create(ctx context.Context, file *document.UploadedFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockUploadedFileRepository) FindByFilename(ctx context.Context, filename string) (*document.UploadedFile, error) {
	args := m.Called(ctx, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.UploadedFile), args.Error(1)
}

func (m *MockUploadedFileRepository) FindAllNewestFirst(ctx context.Context) ([]*document.UploadedFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.UploadedFile), args.Error(1)
}

func (m *MockUploadedFileRepository) FindByBatchID(ctx context.Context, batchID string) ([]*document.UploadedFile, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.UploadedFile), args.Error(1)
}

// memoryRepository keeps records in insertion order
type memoryRepository struct {
	mu    sync.Mutex
	files []*document.UploadedFile
}

func (r *memoryRepository) Create(_ context.Context, file *document.UploadedFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, file)
	return nil
}

func (r *memoryRepository) FindByFilename(_ context.Context, filename string) (*document.UploadedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.Filename == filename {
			return f, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryRepository) FindAllNewestFirst(_ context.Context) ([]*document.UploadedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*document.UploadedFile, 0, len(r.files))
	for i := len(r.files) - 1; i >= 0; i-- {
		out = append(out, r.files[i])
	}
	return out, nil
}

func (r *memoryRepository) FindByBatchID(ctx context.Context, batchID string) ([]*document.UploadedFile, error) {
	all, _ := r.FindAllNewestFirst(ctx)
	var out []*document.UploadedFile
	for _, f := range all {
		if f.BatchID != nil && *f.BatchID == batchID {
			out = append(out, f)
		}
	}
	return out, nil
}

// memoryBlobStore is a BlobStore whose Nth Put can be made to fail
type memoryBlobStore struct {
	mu      sync.Mutex
	objects map[string]storage.Object
	puts    int
	failOn  int // 1-based Put number that fails; 0 never fails
	getErr  error
}

func newMemoryBlobStore() *memoryBlobStore {
	return &memoryBlobStore{objects: map[string]storage.Object{}}
}

func (s *memoryBlobStore) Put(_ context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	if s.failOn != 0 && s.puts == s.failOn {
		return "", errors.New("all storage backends failed")
	}
	s.objects[key] = storage.Object{Data: append([]byte(nil), data...), ContentType: contentType}
	return "memory", nil
}

func (s *memoryBlobStore) Get(_ context.Context, key string) (*storage.Object, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, "", s.getErr
	}
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}
	return &obj, "memory", nil
}

func (s *memoryBlobStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// fakeRasterizer returns a fixed PDF per call and records the HTML it saw
type fakeRasterizer struct {
	mu    sync.Mutex
	html  []string
	err   error
	delay time.Duration
}

func (r *fakeRasterizer) Rasterize(ctx context.Context, html string) (*printing.RasterResult, error) {
	r.mu.Lock()
	r.html = append(r.html, html)
	r.mu.Unlock()
	if r.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, printing.NewRenderError(printing.ErrCodeRenderTimeout, "rasterization was cancelled", ctx.Err())
		case <-time.After(r.delay):
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return &printing.RasterResult{
		PDF:          []byte("%PDF-1.4 fake"),
		WidthPx:      1588,
		HeightPx:     2246,
		PageHeightMM: 297,
	}, nil
}

func (r *fakeRasterizer) Close() error { return nil }

// mapPreferences is an in-memory AssetPreferences
type mapPreferences struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newMapPreferences() *mapPreferences {
	return &mapPreferences{values: map[string]string{}}
}

func (p *mapPreferences) Get(_ context.Context, key string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return "", p.err
	}
	return p.values[key], nil
}

func (p *mapPreferences) Set(_ context.Context, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.values[key] = value
	return nil
}

func sampleRecord() *document.FormRecord {
	return &document.FormRecord{
		ShipperName:        "Exportadora Sul",
		ConsigneeName:      "Harbor Imports",
		BlNumber:           "BL-2024-001",
		Vessel:             "MSC Aurora",
		PortOfLoading:      "Santos",
		PortOfDischarge:    "Rotterdam",
		ShippedOnBoardDate: "2024-03-15",
		Currency:           "USD",
		FreightValue:       "1500.00",
		Incoterm:           "CIF",
		InvoiceNumber:      "INV-77",
	}
}
