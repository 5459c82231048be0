package shared

import "errors"

// Error codes shared by every bounded context.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyExists   = "ALREADY_EXISTS"
	CodeValidation      = "VALIDATION_FAILED"
	CodeUnsupportedKind = "UNSUPPORTED_KIND"
	CodeRenderFailed    = "RENDER_FAILED"
	CodeRenderTimeout   = "RENDER_TIMEOUT"
	CodeStorageFailed   = "STORAGE_FAILED"
	CodeUnauthorized    = "UNAUTHORIZED"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapDomainError creates a domain error carrying the cause's text as details.
func WrapDomainError(code, message string, cause error) *DomainError {
	e := &DomainError{Code: code, Message: message, Cause: cause}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists   = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput    = NewDomainError(CodeValidation, "Invalid input provided")
	ErrUnauthorized    = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrUnsupportedKind = NewDomainError(CodeUnsupportedKind, "Invalid type")
)

// CodeOf extracts the domain error code from err, or "" if err carries none.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
