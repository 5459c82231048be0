package document

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AssetServiceConfig bounds uploaded branding images
type AssetServiceConfig struct {
	// MaxWidth downscales wider raster images; zero keeps the original size
	MaxWidth int
	// MaxBytes rejects larger uploads; zero disables the check
	MaxBytes int64
}

// AssetService stores the logo and signature images and remembers their URLs
type AssetService struct {
	store  BlobStore
	prefs  document.AssetPreferences
	config AssetServiceConfig
	logger *zap.Logger
}

// NewAssetService creates an AssetService
func NewAssetService(store BlobStore, prefs document.AssetPreferences, config AssetServiceConfig, logger *zap.Logger) *AssetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssetService{store: store, prefs: prefs, config: config, logger: logger}
}

// Upload stores an asset under its fixed key, replacing the previous image,
// and saves the public URL as the current preference for its type.
func (s *AssetService) Upload(ctx context.Context, in AssetUpload) (string, error) {
	t := document.AssetType(in.Type)
	if !t.IsValid() {
		return "", shared.NewDomainError(shared.CodeValidation, "Invalid asset type")
	}
	if len(in.Data) == 0 {
		return "", shared.NewDomainError(shared.CodeValidation, "No file uploaded")
	}
	if !strings.HasPrefix(strings.ToLower(in.MimeType), "image/") {
		return "", shared.NewDomainError(shared.CodeValidation, "File must be an image")
	}
	if s.config.MaxBytes > 0 && int64(len(in.Data)) > s.config.MaxBytes {
		return "", shared.NewDomainError(shared.CodeValidation,
			"Image exceeds "+strconv.FormatInt(s.config.MaxBytes, 10)+" bytes")
	}

	key := document.AssetStorageKey(t, in.MimeType)
	data := s.downscale(key, in.Data)

	ctx = context.WithoutCancel(ctx)
	backend, err := s.store.Put(ctx, key, data, in.MimeType)
	if err != nil {
		s.logger.Error("asset write failed", zap.String("key", key), zap.Error(err))
		return "", shared.WrapDomainError(shared.CodeStorageFailed, "Failed to store asset", err)
	}

	url := document.PublicPathPrefix + key
	if err := s.prefs.Set(ctx, t.PreferenceKey(), url); err != nil {
		s.logger.Error("asset preference write failed", zap.String("asset", string(t)), zap.Error(err))
		return "", shared.WrapDomainError(shared.CodeStorageFailed, "Failed to save asset preference", err)
	}

	s.logger.Info("asset uploaded",
		zap.String("asset", string(t)),
		zap.String("key", key),
		zap.String("backend", backend),
		zap.Int("bytes", len(data)))
	return url, nil
}

// Current returns the stored asset URLs
func (s *AssetService) Current(ctx context.Context) (*AssetURLs, error) {
	logo, err := s.prefs.Get(ctx, document.AssetLogo.PreferenceKey())
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeStorageFailed, "Failed to read asset preferences", err)
	}
	signature, err := s.prefs.Get(ctx, document.AssetSignature.PreferenceKey())
	if err != nil {
		return nil, shared.WrapDomainError(shared.CodeStorageFailed, "Failed to read asset preferences", err)
	}
	return &AssetURLs{LogoURL: logo, SignatureURL: signature}, nil
}

// downscale shrinks images wider than MaxWidth, keeping the aspect ratio.
// Formats imaging cannot decode or encode, such as webp, are returned unchanged.
func (s *AssetService) downscale(key string, data []byte) []byte {
	if s.config.MaxWidth <= 0 {
		return data
	}
	format, err := imaging.FormatFromFilename(key)
	if err != nil {
		return data
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		s.logger.Debug("asset is not a decodable image, storing as is", zap.String("key", key), zap.Error(err))
		return data
	}
	if img.Bounds().Dx() <= s.config.MaxWidth {
		return data
	}

	resized := imaging.Resize(img, s.config.MaxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		s.logger.Warn("asset re-encode failed, storing original", zap.String("key", key), zap.Error(err))
		return data
	}
	return buf.Bytes()
}
