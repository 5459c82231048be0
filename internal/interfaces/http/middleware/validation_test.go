package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freightdocs/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4"`
	Kind     string `json:"kind" binding:"omitempty,oneof=bl payment invoice"`
}

func postValidated(t *testing.T, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req loginBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	if w.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestHandleValidationError_FieldErrors(t *testing.T) {
	w, resp := postValidated(t, `{"email":"nope","password":"ab","kind":"receipt"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)

	details, ok := resp.Error.Details.([]any)
	require.True(t, ok)
	fields := map[string]string{}
	for _, d := range details {
		m := d.(map[string]any)
		fields[m["field"].(string)] = m["message"].(string)
	}
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Equal(t, "Must be at least 4 characters", fields["password"])
	assert.Equal(t, "Must be one of: bl payment invoice", fields["kind"])
}

func TestHandleValidationError_MalformedJSON(t *testing.T) {
	w, resp := postValidated(t, `{"email":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", resp.Error.Message)
}

func TestHandleValidationError_Valid(t *testing.T) {
	w, _ := postValidated(t, `{"email":"ops@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}
