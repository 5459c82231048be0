package persistence

import (
	"context"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUploadedFileRepository implements document.UploadedFileRepository using GORM
type GormUploadedFileRepository struct {
	db *gorm.DB
}

// NewGormUploadedFileRepository creates a new GormUploadedFileRepository
func NewGormUploadedFileRepository(db *gorm.DB) *GormUploadedFileRepository {
	return &GormUploadedFileRepository{db: db}
}

var _ document.UploadedFileRepository = (*GormUploadedFileRepository)(nil)

// Create inserts a new record. A reused filename is shared.ErrAlreadyExists.
func (r *GormUploadedFileRepository) Create(ctx context.Context, file *document.UploadedFile) error {
	return translateError(r.db.WithContext(ctx).Create(models.UploadedFileModelFromDomain(file)).Error)
}

// FindByFilename finds a record by its storage key
func (r *GormUploadedFileRepository) FindByFilename(ctx context.Context, filename string) (*document.UploadedFile, error) {
	m, err := first[models.UploadedFileModel](r.db.WithContext(ctx).Where("filename = ?", filename))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAllNewestFirst returns every record ordered by creation time, newest first
func (r *GormUploadedFileRepository) FindAllNewestFirst(ctx context.Context) ([]*document.UploadedFile, error) {
	var rows []models.UploadedFileModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainFiles(rows), nil
}

// FindByBatchID returns the records of one batch, newest first
func (r *GormUploadedFileRepository) FindByBatchID(ctx context.Context, batchID string) ([]*document.UploadedFile, error) {
	var rows []models.UploadedFileModel
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainFiles(rows), nil
}

func toDomainFiles(rows []models.UploadedFileModel) []*document.UploadedFile {
	files := make([]*document.UploadedFile, len(rows))
	for i := range rows {
		files[i] = rows[i].ToDomain()
	}
	return files
}
