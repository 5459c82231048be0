package persistence

import (
	"errors"

	"github.com/freightdocs/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM's translated driver errors onto domain errors.
// It relies on gorm.Config.TranslateError being enabled.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	}
	return err
}

// first loads one row matching the query into a new M
func first[M any](query *gorm.DB) (*M, error) {
	var model M
	if err := query.First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return &model, nil
}
