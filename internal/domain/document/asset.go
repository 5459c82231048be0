package document

import (
	"context"
	"strings"
)

// AssetType identifies a branding image applied to every rendered document
type AssetType string

const (
	AssetLogo      AssetType = "logo"
	AssetSignature AssetType = "signature"
)

// IsValid checks if the AssetType is supported
func (t AssetType) IsValid() bool {
	return t == AssetLogo || t == AssetSignature
}

// PreferenceKey is the key the asset's current URL is stored under
func (t AssetType) PreferenceKey() string {
	return "asset:" + string(t)
}

// AssetExtension maps an image MIME type to the extension the asset is stored with.
// Unknown image types are stored as .png.
func AssetExtension(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch mt {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// AssetStorageKey is the fixed storage name for an asset; a new upload replaces the old one
func AssetStorageKey(t AssetType, mimeType string) string {
	return string(t) + AssetExtension(mimeType)
}

// AssetPreferences is a process-wide key-value lookup of current asset URLs
type AssetPreferences interface {
	// Get returns the stored value, or "" when key is unset
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key
	Set(ctx context.Context, key, value string) error
}
