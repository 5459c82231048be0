package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"VALIDATION_FAILED", http.StatusBadRequest},
		{"UNSUPPORTED_KIND", http.StatusBadRequest},
		{"RENDER_FAILED", http.StatusInternalServerError},
		{"RENDER_TIMEOUT", http.StatusGatewayTimeout},
		{"STORAGE_FAILED", http.StatusInternalServerError},
		{"NOT_FOUND", http.StatusNotFound},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"ALREADY_EXISTS", http.StatusConflict},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		// Unknown code should return 500
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "File not found", "req-123")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "File not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
	assert.NotZero(t, resp.Error.Timestamp)
	assert.Nil(t, resp.Error.Details)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-789", []ValidationDetail{
		{Field: "kind", Message: "This field is required"},
	})

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	details, ok := resp.Error.Details.([]ValidationDetail)
	require.True(t, ok)
	assert.Equal(t, "kind", details[0].Field)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithDetails(ErrCodeStorageFailed, "Batch failed", "req-1", map[string]any{
		"batchId":    "b-1",
		"failedKind": "payment",
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "STORAGE_FAILED", errObj["code"])
	assert.Equal(t, "payment", errObj["details"].(map[string]any)["failedKind"])
}

func TestSuccessResponseJSON(t *testing.T) {
	data, err := json.Marshal(NewSuccessResponse(map[string]string{"html": "<p>x</p>"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"html":"<p>x</p>"}}`, string(data))
}
