package persistence

import (
	"context"
	"strings"

	"github.com/freightdocs/backend/internal/domain/identity"
	"github.com/freightdocs/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository stores login accounts in the users table. Emails are
// compared in lower case.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

// Create returns shared.ErrAlreadyExists when the email is taken
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	return translateError(r.db.WithContext(ctx).Create(models.UserModelFromDomain(user)).Error)
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	m, err := first[models.UserModel](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	m, err := first[models.UserModel](r.byEmail(ctx, email))
	if err != nil {
		return nil, err
	}
	return m.ToDomain(), nil
}

func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.byEmail(ctx, email).Model(&models.UserModel{}).Limit(1).Count(&count).Error
	return count > 0, err
}

func (r *GormUserRepository) byEmail(ctx context.Context, email string) *gorm.DB {
	return r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
}
