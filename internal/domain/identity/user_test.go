package identity

import (
	"testing"

	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("admin@admin.com", "admin", "Admin")

		require.NoError(t, err)
		assert.Equal(t, "admin@admin.com", user.Email)
		assert.NotEqual(t, "admin", user.PasswordHash)
		assert.True(t, user.VerifyPassword("admin"))
		assert.False(t, user.VerifyPassword("wrong"))
		require.NotNil(t, user.Name)
		assert.Equal(t, "Admin", *user.Name)
	})

	t.Run("normalizes email", func(t *testing.T) {
		user, err := NewUser("  Ops@Example.COM ", "secret", "")

		require.NoError(t, err)
		assert.Equal(t, "ops@example.com", user.Email)
		assert.Nil(t, user.Name)
		assert.Equal(t, "ops@example.com", user.DisplayName())
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "secret", "")

		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})

	t.Run("fails with empty password", func(t *testing.T) {
		_, err := NewUser("a@b.com", "", "")

		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))
	})
}
