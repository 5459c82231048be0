package document

import (
	"context"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/printing"
	"go.uber.org/zap"
)

// RenderService produces the HTML of one document kind from a form record
type RenderService struct {
	templates TemplateRenderer
	prefs     document.AssetPreferences
	logger    *zap.Logger
}

// NewRenderService creates a RenderService. prefs may be nil.
func NewRenderService(templates TemplateRenderer, prefs document.AssetPreferences, logger *zap.Logger) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderService{templates: templates, prefs: prefs, logger: logger}
}

// Render validates kind and data, fills empty asset URLs from the asset
// preferences and executes the kind's template.
func (s *RenderService) Render(ctx context.Context, kind string, data *document.FormRecord) (string, error) {
	k, ok := document.ParseKind(kind)
	if !ok {
		return "", shared.ErrUnsupportedKind
	}
	if data == nil {
		data = &document.FormRecord{}
	}
	if err := validateFormRecord(data); err != nil {
		return "", err
	}
	return s.render(ctx, k, s.withAssets(ctx, data))
}

func (s *RenderService) render(ctx context.Context, k document.Kind, data *document.FormRecord) (string, error) {
	html, err := s.templates.Render(ctx, k, data.Values())
	if err != nil {
		s.logger.Error("template render failed", zap.String("kind", k.String()), zap.Error(err))
		return "", toDomainError(err)
	}
	return html, nil
}

// withAssets returns a copy of r whose empty logo and signature URLs are
// taken from the preference store. Lookup failures leave the field empty.
func (s *RenderService) withAssets(ctx context.Context, r *document.FormRecord) *document.FormRecord {
	out := *r
	if s.prefs == nil {
		return &out
	}
	fill := func(dst *string, t document.AssetType) {
		if *dst != "" {
			return
		}
		v, err := s.prefs.Get(ctx, t.PreferenceKey())
		if err != nil {
			s.logger.Warn("asset preference lookup failed", zap.String("asset", string(t)), zap.Error(err))
			return
		}
		*dst = v
	}
	fill(&out.LogoURL, document.AssetLogo)
	fill(&out.SignatureURL, document.AssetSignature)
	return &out
}

// toDomainError maps a rendering or rasterization error to its domain code
func toDomainError(err error) error {
	if shared.CodeOf(err) != "" {
		return err
	}
	switch printing.RenderErrorCode(err) {
	case printing.ErrCodeUnsupportedKind:
		return shared.ErrUnsupportedKind
	case printing.ErrCodeRenderTimeout:
		return shared.WrapDomainError(shared.CodeRenderTimeout, "Document rendering timed out", err)
	default:
		return shared.WrapDomainError(shared.CodeRenderFailed, "Failed to render document", err)
	}
}
