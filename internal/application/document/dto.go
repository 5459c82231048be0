package document

import (
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
)

// RenderRequest asks for the HTML of one document kind
type RenderRequest struct {
	Kind string               `json:"kind" binding:"required"`
	Data *document.FormRecord `json:"data"`
}

// RenderResponse carries rendered HTML
type RenderResponse struct {
	HTML string `json:"html"`
}

// UploadInput is one PDF handed to the upload submitter
type UploadInput struct {
	Data         []byte
	OriginalName string
	BatchID      string
	Kind         string
}

// UploadResult describes a stored upload
type UploadResult struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	// Backend is the storage that accepted the bytes
	Backend string `json:"-"`
}

// BatchDocument is one document produced by a batch
type BatchDocument struct {
	Kind         string `json:"kind"`
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
}

// BatchResult reports the outcome of a batch submission. It is returned on
// failure too so the caller can see which documents were kept.
type BatchResult struct {
	BatchID    string          `json:"batchId"`
	Success    bool            `json:"success"`
	Documents  []BatchDocument `json:"documents"`
	FailedKind string          `json:"failedKind,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// UploadedFileResponse is the registry view of one stored file
type UploadedFileResponse struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	MimeType     string    `json:"mimeType"`
	SizeInBytes  int64     `json:"sizeInBytes"`
	BatchID      *string   `json:"batchId"`
	Kind         *string   `json:"kind"`
	URL          string    `json:"url"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BatchGroupResponse is the registry view of one batch
type BatchGroupResponse struct {
	ID        string                  `json:"id"`
	BatchID   *string                 `json:"batchId"`
	CreatedAt time.Time               `json:"createdAt"`
	Complete  bool                    `json:"complete"`
	TotalSize int64                   `json:"totalSize"`
	BL        *UploadedFileResponse   `json:"bl"`
	Payment   *UploadedFileResponse   `json:"payment"`
	Invoice   *UploadedFileResponse   `json:"invoice"`
	Others    []*UploadedFileResponse `json:"others"`
}

// DownloadedFile holds the bytes of a stored file
type DownloadedFile struct {
	Filename    string
	DisplayName string
	ContentType string
	Data        []byte
}

// AssetUpload is one branding image to store
type AssetUpload struct {
	Type     string
	MimeType string
	Data     []byte
}

// AssetURLs lists the current branding asset URLs; empty when unset
type AssetURLs struct {
	LogoURL      string `json:"logoUrl"`
	SignatureURL string `json:"signatureUrl"`
}

func toUploadedFileResponse(f *document.UploadedFile) *UploadedFileResponse {
	if f == nil {
		return nil
	}
	return &UploadedFileResponse{
		ID:           f.ID.String(),
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		SizeInBytes:  f.SizeInBytes,
		BatchID:      f.BatchID,
		Kind:         f.Kind,
		URL:          f.PublicURL(),
		CreatedAt:    f.CreatedAt,
	}
}

func toBatchGroupResponse(g *document.BatchGroup) *BatchGroupResponse {
	resp := &BatchGroupResponse{
		ID:        g.ID,
		BatchID:   g.BatchID,
		CreatedAt: g.CreatedAt,
		Complete:  g.Complete(),
		TotalSize: g.TotalSize(),
		BL:        toUploadedFileResponse(g.BL),
		Payment:   toUploadedFileResponse(g.Payment),
		Invoice:   toUploadedFileResponse(g.Invoice),
		Others:    make([]*UploadedFileResponse, 0, len(g.Others)),
	}
	for _, f := range g.Others {
		resp.Others = append(resp.Others, toUploadedFileResponse(f))
	}
	return resp
}
