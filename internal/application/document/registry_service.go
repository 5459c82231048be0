package document

import (
	"context"
	"fmt"

	"github.com/freightdocs/backend/internal/domain/document"
)

// RegistryService lists stored documents grouped back into batches
type RegistryService struct {
	repo document.UploadedFileRepository
}

// NewRegistryService creates a RegistryService
func NewRegistryService(repo document.UploadedFileRepository) *RegistryService {
	return &RegistryService{repo: repo}
}

// List returns every batch, newest first
func (s *RegistryService) List(ctx context.Context) ([]*BatchGroupResponse, error) {
	files, err := s.repo.FindAllNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded files: %w", err)
	}
	groups := document.GroupUploads(files)
	out := make([]*BatchGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toBatchGroupResponse(g))
	}
	return out, nil
}
