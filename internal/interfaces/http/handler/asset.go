package handler

import (
	app "github.com/freightdocs/backend/internal/application/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// AssetHandler manages branding images
type AssetHandler struct {
	BaseHandler
	assets *app.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assets *app.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// Upload handles POST /api/v1/assets (multipart type, file)
func (h *AssetHandler) Upload(c *gin.Context) {
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

	url, err := h.assets.Upload(c.Request.Context(), app.AssetUpload{
		Type:     c.PostForm("type"),
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"url": url})
}

// Current handles GET /api/v1/assets
func (h *AssetHandler) Current(c *gin.Context) {
	urls, err := h.assets.Current(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, urls)
}
