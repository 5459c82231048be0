package printing

import (
	"context"
	"errors"
	"time"
)

// RasterResult contains the output of rasterizing one HTML document
type RasterResult struct {
	// PDF is the single-page PDF embedding the captured bitmap
	PDF []byte
	// WidthPx and HeightPx are the pixel dimensions of the captured bitmap
	WidthPx  int
	HeightPx int
	// PageHeightMM is the page height derived from the bitmap aspect ratio
	PageHeightMM float64
	// RenderDuration is how long the rasterization took
	RenderDuration time.Duration
}

// Rasterizer converts laid-out HTML into a bitmap and wraps it in a PDF page
type Rasterizer interface {
	// Rasterize renders html on an offscreen surface and returns PDF bytes
	Rasterize(ctx context.Context, html string) (*RasterResult, error)
	// Close releases any resources held by the rasterizer
	Close() error
}

// RenderError represents an error during template rendering or rasterization
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeUnsupportedKind  = "UNSUPPORTED_KIND"
	ErrCodeTemplateNotFound = "TEMPLATE_NOT_FOUND"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// RenderErrorCode returns the code of the RenderError in err's chain, or "".
func RenderErrorCode(err error) string {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}
