package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freightdocs/backend/internal/infrastructure/auth"
	"github.com/freightdocs/backend/internal/infrastructure/config"
	"github.com/freightdocs/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func pong(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func serve(engine *gin.Engine, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	documents := NewDomainGroup("documents", "/documents")
	documents.GET("", pong).POST("/render", pong)
	r.Register(documents).Setup()

	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/documents", "").Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/documents/render", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/documents/render", "").Code)
}

func TestDomainGroup(t *testing.T) {
	g := NewDomainGroup("assets", "/assets")
	assert.Equal(t, "assets", g.Name())
	assert.Equal(t, "/assets", g.Prefix())

	var order []string
	g.Use(func(c *gin.Context) {
		order = append(order, "group")
		c.Next()
	})
	g.GET("", func(c *gin.Context) {
		order = append(order, "handler")
		c.Status(http.StatusNoContent)
	})

	engine := gin.New()
	g.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodGet, "/api/v1/assets", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"group", "handler"}, order)
}

func TestRouterJWTProtection(t *testing.T) {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-32-characters",
		AccessTokenExpiration: time.Hour,
		Issuer:                "freightdocs",
	})

	engine := gin.New()
	r := NewRouter(engine).Use(middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(jwtService)))
	r.Register(NewDomainGroup("auth", "/auth").POST("/login", pong))
	r.Register(NewDomainGroup("documents", "/documents").GET("", pong))
	r.Setup()

	t.Run("request without token is rejected", func(t *testing.T) {
		w := serve(engine, http.MethodGet, "/api/v1/documents", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("login is public", func(t *testing.T) {
		w := serve(engine, http.MethodPost, "/api/v1/auth/login", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "ops@example.com",
		})
		require.NoError(t, err)

		w := serve(engine, http.MethodGet, "/api/v1/documents", token.Token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
