package dto

import (
	"net/http"

	"github.com/freightdocs/backend/internal/domain/shared"
)

// Error codes returned in the response envelope. Domain codes pass through
// unchanged; the transport adds a few of its own.
const (
	ErrCodeValidation      = shared.CodeValidation
	ErrCodeUnsupportedKind = shared.CodeUnsupportedKind
	ErrCodeRenderFailed    = shared.CodeRenderFailed
	ErrCodeRenderTimeout   = shared.CodeRenderTimeout
	ErrCodeStorageFailed   = shared.CodeStorageFailed
	ErrCodeNotFound        = shared.CodeNotFound
	ErrCodeAlreadyExists   = shared.CodeAlreadyExists
	ErrCodeUnauthorized    = shared.CodeUnauthorized

	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnsupportedKind: http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeAlreadyExists:   http.StatusConflict,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRenderFailed:    http.StatusInternalServerError,
	ErrCodeStorageFailed:   http.StatusInternalServerError,
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeUnavailable:     http.StatusServiceUnavailable,
	ErrCodeRenderTimeout:   http.StatusGatewayTimeout,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
