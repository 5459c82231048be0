package document

import (
	"context"
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/freightdocs/backend/internal/infrastructure/printing"
	"github.com/freightdocs/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultDocumentDelay is the pause between two documents of a batch
const DefaultDocumentDelay = 300 * time.Millisecond

// BatchService generates the three documents of a form submission one at a
// time: render, rasterize, upload. The first failure ends the batch; the
// documents already uploaded stay stored.
type BatchService struct {
	renderer   *RenderService
	rasterizer printing.Rasterizer
	uploader   *UploadService
	delay      time.Duration
	logger     *zap.Logger
}

// BatchServiceOption configures a BatchService
type BatchServiceOption func(*BatchService)

// WithDocumentDelay overrides the pause between documents. Zero disables it.
func WithDocumentDelay(d time.Duration) BatchServiceOption {
	return func(s *BatchService) {
		s.delay = d
	}
}

// NewBatchService creates a BatchService
func NewBatchService(renderer *RenderService, rasterizer printing.Rasterizer, uploader *UploadService, logger *zap.Logger, opts ...BatchServiceOption) *BatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &BatchService{
		renderer:   renderer,
		rasterizer: rasterizer,
		uploader:   uploader,
		delay:      DefaultDocumentDelay,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitBatch runs the batch for record. The returned result is never nil;
// on failure it names the failing kind and lists the documents kept so far.
func (s *BatchService) SubmitBatch(ctx context.Context, record *document.FormRecord) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{
		BatchID:   document.NewBatchID(),
		Documents: make([]BatchDocument, 0, len(document.BatchKinds())),
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "BatchService", "SubmitBatch",
		telemetry.AttrBatchID.String(result.BatchID))
	defer span.End()
	log := s.logger.With(zap.String("batch_id", result.BatchID))

	fail := func(kind document.Kind, err error) (*BatchResult, error) {
		result.FailedKind = kind.String()
		result.Message = err.Error()
		batchesTotal.WithLabelValues(statusFailed).Inc()
		batchDuration.Observe(time.Since(start).Seconds())
		telemetry.RecordError(span, err)
		log.Warn("batch failed",
			zap.String("kind", kind.String()),
			zap.Int("documents_kept", len(result.Documents)),
			zap.Error(err))
		return result, err
	}

	if record == nil {
		record = &document.FormRecord{}
	}
	if err := validateFormRecord(record); err != nil {
		return fail("", err)
	}
	record = s.renderer.withAssets(ctx, record)

	for i, kind := range document.BatchKinds() {
		if i > 0 && s.delay > 0 {
			if err := sleep(ctx, s.delay); err != nil {
				return fail(kind, shared.WrapDomainError(shared.CodeRenderTimeout, "Batch cancelled", err))
			}
		}

		doc, err := s.generate(ctx, result.BatchID, kind, record)
		if err != nil {
			return fail(kind, err)
		}
		result.Documents = append(result.Documents, *doc)
	}

	result.Success = true
	batchesTotal.WithLabelValues(statusSuccess).Inc()
	batchDuration.Observe(time.Since(start).Seconds())
	telemetry.SetOK(span)
	log.Info("batch completed", zap.Duration("duration", time.Since(start)))
	return result, nil
}

// generate renders, rasterizes and uploads the document of one kind
func (s *BatchService) generate(ctx context.Context, batchID string, kind document.Kind, record *document.FormRecord) (*BatchDocument, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "BatchService", "generate",
		telemetry.AttrBatchID.String(batchID),
		telemetry.AttrDocumentKind.String(kind.String()))
	defer span.End()

	html, err := s.renderer.render(ctx, kind, record)
	if err != nil {
		documentsTotal.WithLabelValues(kind.String(), "render", statusFailed).Inc()
		telemetry.RecordError(span, err)
		return nil, err
	}

	var raster *printing.RasterResult
	telemetry.WithProfilingLabels(ctx, map[string]string{telemetry.ProfilingLabelKind: kind.String()}, func(ctx context.Context) {
		raster, err = s.rasterizer.Rasterize(ctx, html)
	})
	if err != nil {
		documentsTotal.WithLabelValues(kind.String(), "rasterize", statusFailed).Inc()
		telemetry.RecordError(span, err)
		return nil, toDomainError(err)
	}
	rasterizeDuration.WithLabelValues(kind.String()).Observe(raster.RenderDuration.Seconds())

	up, err := s.uploader.Upload(ctx, UploadInput{
		Data:         raster.PDF,
		OriginalName: record.DisplayFilename(kind),
		BatchID:      batchID,
		Kind:         kind.String(),
	})
	if err != nil {
		documentsTotal.WithLabelValues(kind.String(), "upload", statusFailed).Inc()
		telemetry.RecordError(span, err)
		return nil, err
	}

	documentsTotal.WithLabelValues(kind.String(), "upload", statusSuccess).Inc()
	telemetry.SetOK(span)
	return &BatchDocument{
		Kind:         kind.String(),
		ID:           up.ID,
		Filename:     up.Filename,
		OriginalName: up.OriginalName,
		URL:          up.URL,
	}, nil
}

// sleep waits for d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
