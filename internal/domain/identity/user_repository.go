package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository persists login accounts. Lookups that match nothing return
// shared.ErrNotFound; Create returns shared.ErrAlreadyExists for a taken email.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
