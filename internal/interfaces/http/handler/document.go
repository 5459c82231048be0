package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"

	app "github.com/freightdocs/backend/internal/application/document"
	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// DocumentHandler serves rendering, uploads, batches and downloads
type DocumentHandler struct {
	BaseHandler
	render   *app.RenderService
	upload   *app.UploadService
	batch    *app.BatchService
	registry *app.RegistryService
	download *app.DownloadService
}

// DocumentServices groups the services DocumentHandler calls
type DocumentServices struct {
	Render   *app.RenderService
	Upload   *app.UploadService
	Batch    *app.BatchService
	Registry *app.RegistryService
	Download *app.DownloadService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(s DocumentServices) *DocumentHandler {
	return &DocumentHandler{
		render:   s.Render,
		upload:   s.Upload,
		batch:    s.Batch,
		registry: s.Registry,
		download: s.Download,
	}
}

// Render handles POST /api/v1/documents/render
func (h *DocumentHandler) Render(c *gin.Context) {
	var req app.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	html, err := h.render.Render(c.Request.Context(), req.Kind, req.Data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, app.RenderResponse{HTML: html})
}

// Upload handles POST /api/v1/documents/upload (multipart)
func (h *DocumentHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.HandleError(c, shared.NewDomainError(shared.CodeValidation, "No file uploaded"))
		return
	}
	data, err := readFormFile(fh)
	if err != nil {
		h.HandleError(c, shared.WrapDomainError(shared.CodeValidation, "Unreadable file", err))
		return
	}

	originalName := c.PostForm("originalName")
	if originalName == "" {
		originalName = fh.Filename
	}

	result, err := h.upload.Upload(c.Request.Context(), app.UploadInput{
		Data:         data,
		OriginalName: originalName,
		BatchID:      c.PostForm("batchId"),
		Kind:         c.PostForm("kind"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// SubmitBatch handles POST /api/v1/documents/batches. A failed batch answers
// with the partial BatchResult as error details.
func (h *DocumentHandler) SubmitBatch(c *gin.Context) {
	var record document.FormRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.batch.SubmitBatch(c.Request.Context(), &record)
	if err != nil {
		status := 0
		if shared.CodeOf(err) == shared.CodeStorageFailed {
			status = http.StatusBadGateway
		}
		h.HandleErrorWithStatus(c, err, status, result)
		return
	}
	h.Created(c, result)
}

// List handles GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	groups, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, groups)
}

// Download handles GET /api/v1/documents/download?filename=
func (h *DocumentHandler) Download(c *gin.Context) {
	f, err := h.download.Open(c.Request.Context(), c.Query("filename"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeFile(c, f)
}

// ServePublic handles GET /upload/:name. Logos and signatures referenced by
// rendered HTML are fetched here without a token.
func (h *DocumentHandler) ServePublic(c *gin.Context) {
	f, err := h.download.Open(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	writeFile(c, f)
}

func writeFile(c *gin.Context, f *app.DownloadedFile) {
	name := f.DisplayName
	if name == "" {
		name = f.Filename
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", path.Base(name)))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
