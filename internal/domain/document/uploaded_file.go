package document

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MimeTypePDF is the content type of every generated document
	MimeTypePDF = "application/pdf"
	// DefaultOriginalName is used when an upload carries no display name
	DefaultOriginalName = "documento.pdf"
	// PublicPathPrefix is the URL prefix under which stored files are served
	PublicPathPrefix = "/upload/"
)

// UploadedFile is the metadata record of one stored file.
// Records are created once per upload and never mutated.
type UploadedFile struct {
	ID           uuid.UUID
	Filename     string // storage key, distinct from the display name
	OriginalName string
	MimeType     string
	SizeInBytes  int64
	BatchID      *string // nil for uploads made before batches existed
	Kind         *string // nil when unset; may hold values outside Kind
	CreatedAt    time.Time
}

// NewUploadedFile creates a PDF metadata record for a file stored under filename.
func NewUploadedFile(filename, originalName string, size int64, batchID string, kind string) *UploadedFile {
	if originalName == "" {
		originalName = DefaultOriginalName
	}
	f := &UploadedFile{
		ID:           uuid.New(),
		Filename:     filename,
		OriginalName: originalName,
		MimeType:     MimeTypePDF,
		SizeInBytes:  size,
		CreatedAt:    time.Now(),
	}
	if batchID != "" {
		f.BatchID = &batchID
	}
	if kind != "" {
		f.Kind = &kind
	}
	return f
}

// NewStorageKey generates a collision-free storage key for a PDF.
func NewStorageKey() string {
	return uuid.NewString() + ".pdf"
}

// PublicURL returns the path the file is served under.
func (f *UploadedFile) PublicURL() string {
	return PublicPathPrefix + f.Filename
}

// GroupKey returns the batch the record belongs to: its batch id, or its own id for legacy uploads.
func (f *UploadedFile) GroupKey() string {
	if f.BatchID != nil && *f.BatchID != "" {
		return *f.BatchID
	}
	return f.ID.String()
}

// KindValue returns the record's kind, or "" when unset.
func (f *UploadedFile) KindValue() Kind {
	if f.Kind == nil {
		return ""
	}
	return Kind(*f.Kind)
}
