package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/freightdocs/backend/internal/infrastructure/auth"
	"github.com/freightdocs/backend/internal/infrastructure/logger"
	"github.com/freightdocs/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by the JWT middleware
const (
	JWTClaimsKey = "jwt_claims"
	JWTUserIDKey = "jwt_user_id"
	JWTEmailKey  = "jwt_email"
)

const bearerScheme = "Bearer "

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are served without a token (exact match)
	SkipPaths []string
	// SkipPathPrefixes are served without a token (prefix match)
	SkipPathPrefixes []string
	Logger           *zap.Logger
}

// DefaultJWTConfig leaves health, metrics, login, registration and the
// public file route open.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/health/ready",
			"/metrics",
			"/api/v1/auth/login",
			"/api/v1/auth/register",
		},
		SkipPathPrefixes: []string{"/upload/"},
	}
}

func (cfg JWTMiddlewareConfig) public(path string) bool {
	if slices.Contains(cfg.SkipPaths, path) {
		return true
	}
	return slices.ContainsFunc(cfg.SkipPathPrefixes, func(p string) bool {
		return strings.HasPrefix(path, p)
	})
}

// JWTAuthMiddleware protects every route except those in DefaultJWTConfig
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig requires a valid bearer token on non-public
// paths and stores its claims in the gin and request contexts.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if cfg.public(c.Request.URL.Path) {
			c.Next()
			return
		}

		token, reason := bearerToken(c.GetHeader("Authorization"))
		if reason != "" {
			rejectToken(c, log, auth.ErrInvalidToken, reason)
			return
		}
		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			rejectToken(c, log, err, "token validation failed")
			return
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTEmailKey, claims.Email)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header. A non-empty
// reason means the header is unusable.
func bearerToken(header string) (token, reason string) {
	switch {
	case header == "":
		return "", "missing authorization header"
	case !strings.HasPrefix(header, bearerScheme):
		return "", "authorization header is not a bearer token"
	}
	token = strings.TrimSpace(header[len(bearerScheme):])
	if token == "" {
		return "", "empty bearer token"
	}
	return token, ""
}

func rejectToken(c *gin.Context, log *zap.Logger, err error, reason string) {
	log.Warn("request rejected by JWT middleware",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
	)

	message := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		message = "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		message = "Token is not yet valid"
	}

	c.AbortWithStatusJSON(dto.GetHTTPStatus(dto.ErrCodeUnauthorized),
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, c.GetString(RequestIDKey)))
}

// GetJWTClaims returns the claims of the authenticated request, or nil
func GetJWTClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

// GetJWTUserID returns the authenticated user's id
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}
