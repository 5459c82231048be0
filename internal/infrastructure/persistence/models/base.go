package models

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel provides common persistence fields for mutable rows.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// AllModels lists every model managed by AutoMigrate in development databases.
func AllModels() []any {
	return []any{
		&UploadedFileModel{},
		&UserModel{},
	}
}
