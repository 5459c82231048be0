package identity

import (
	"time"

	"github.com/freightdocs/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput contains the input for creating an account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	TokenType string    `json:"tokenType"`
	User      UserInfo  `json:"user"`
}

// UserInfo contains basic user information
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.DisplayName(),
		CreatedAt: u.CreatedAt,
	}
}
