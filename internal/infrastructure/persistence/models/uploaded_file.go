package models

import (
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/google/uuid"
)

// UploadedFileModel is the persistence model for the UploadedFile domain entity.
// Records are insert-only, so the table carries no updated_at column.
type UploadedFileModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	Filename     string    `gorm:"column:filename;type:varchar(255);not null;uniqueIndex"`
	OriginalName string    `gorm:"column:original_name;type:varchar(255);not null"`
	MimeType     string    `gorm:"column:mime_type;type:varchar(100);not null"`
	SizeInBytes  int64     `gorm:"column:size_in_bytes;type:bigint;not null"`
	BatchID      *string   `gorm:"column:batch_id;type:varchar(64);index"`
	Kind         *string   `gorm:"column:kind;type:varchar(32)"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index"`
}

// TableName returns the table name for GORM
func (UploadedFileModel) TableName() string {
	return "uploaded_files"
}

// ToDomain converts the persistence model to a domain UploadedFile.
func (m *UploadedFileModel) ToDomain() *document.UploadedFile {
	return &document.UploadedFile{
		ID:           m.ID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		SizeInBytes:  m.SizeInBytes,
		BatchID:      m.BatchID,
		Kind:         m.Kind,
		CreatedAt:    m.CreatedAt,
	}
}

// UploadedFileModelFromDomain creates a persistence model from a domain UploadedFile.
func UploadedFileModelFromDomain(f *document.UploadedFile) *UploadedFileModel {
	return &UploadedFileModel{
		ID:           f.ID,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		SizeInBytes:  f.SizeInBytes,
		BatchID:      f.BatchID,
		Kind:         f.Kind,
		CreatedAt:    f.CreatedAt,
	}
}
