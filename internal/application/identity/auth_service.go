package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/freightdocs/backend/internal/domain/identity"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Default administrator created by Seed
const (
	DefaultAdminEmail    = "admin@admin.com"
	DefaultAdminPassword = "admin"
	DefaultAdminName     = "Administrador"
)

var errInvalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid email or password")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(userRepo identity.UserRepository, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies the credentials and returns a signed access token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown email", zap.String("email", email))
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("invalid password", zap.String("email", email))
		return nil, errInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.DisplayName(),
	})
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))
	return &LoginResult{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		TokenType: token.TokenType,
		User:      toUserInfo(user),
	}, nil
}

// Register creates an account. A taken email is ALREADY_EXISTS.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*UserInfo, error) {
	user, err := identity.NewUser(input.Email, input.Password, input.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, "Email already registered")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	info := toUserInfo(user)
	return &info, nil
}

// Seed creates the default administrator when it does not exist yet.
// It reports whether a user was created.
func (s *AuthService) Seed(ctx context.Context) (bool, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if _, err := s.Register(ctx, RegisterInput{
		Name:     DefaultAdminName,
		Email:    DefaultAdminEmail,
		Password: DefaultAdminPassword,
	}); err != nil {
		return false, err
	}
	return true, nil
}
