package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/identity"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// memoryFileRepository keeps upload records in insertion order
type memoryFileRepository struct {
	mu    sync.Mutex
	files []*document.UploadedFile
}

func (r *memoryFileRepository) Create(_ context.Context, f *document.UploadedFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = append(r.files, f)
	return nil
}

func (r *memoryFileRepository) FindByFilename(_ context.Context, name string) (*document.UploadedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.files {
		if f.Filename == name {
			return f, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryFileRepository) FindAllNewestFirst(_ context.Context) ([]*document.UploadedFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*document.UploadedFile, 0, len(r.files))
	for i := len(r.files) - 1; i >= 0; i-- {
		out = append(out, r.files[i])
	}
	return out, nil
}

func (r *memoryFileRepository) FindByBatchID(ctx context.Context, batchID string) ([]*document.UploadedFile, error) {
	all, _ := r.FindAllNewestFirst(ctx)
	var out []*document.UploadedFile
	for _, f := range all {
		if f.BatchID != nil && *f.BatchID == batchID {
			out = append(out, f)
		}
	}
	return out, nil
}

// memoryUserRepository is an in-memory identity.UserRepository
type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*identity.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*identity.User{}}
}

func (r *memoryUserRepository) Create(_ context.Context, u *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Email] = u
	return nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[email]
	return ok, nil
}

// stubRasterizer returns a fixed PDF, or err when set
type stubRasterizer struct {
	err error
}

func (r *stubRasterizer) Rasterize(_ context.Context, _ string) (*printing.RasterResult, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &printing.RasterResult{PDF: []byte("%PDF-1.4 stub"), WidthPx: 1588, HeightPx: 2246, PageHeightMM: 297}, nil
}

func (r *stubRasterizer) Close() error { return nil }

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

type formFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, file *formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
