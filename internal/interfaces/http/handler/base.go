package handler

import (
	"errors"
	"net/http"

	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/logger"
	"github.com/freightdocs/backend/internal/interfaces/http/dto"
	"github.com/freightdocs/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// HandleError converts domain errors to HTTP responses. Anything else is
// logged and reported as an internal error without leaking its text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	h.HandleErrorWithDetails(c, err, nil)
}

// HandleErrorWithDetails is HandleError with explicit details in the envelope.
// When details is nil the domain error's own details text is used.
func (h *BaseHandler) HandleErrorWithDetails(c *gin.Context, err error, details any) {
	h.HandleErrorWithStatus(c, err, 0, details)
}

// HandleErrorWithStatus writes err with status, or the status derived from
// the error code when status is zero.
func (h *BaseHandler) HandleErrorWithStatus(c *gin.Context, err error, status int, details any) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if !errors.As(err, &domainErr) {
		logger.L(c.Request.Context()).Error("unhandled error",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInternal,
			"An unexpected error occurred",
			requestID,
		))
		return
	}

	if status == 0 {
		status = dto.GetHTTPStatus(domainErr.Code)
	}
	if details == nil && domainErr.Details != "" {
		details = domainErr.Details
	}
	c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Code, domainErr.Message, requestID, details))
}
