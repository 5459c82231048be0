package printing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"strings"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultChromeTimeout = 30 * time.Second
	// initialViewportHeightPx only seeds layout; the capture grows to the content height
	initialViewportHeightPx = 1123
)

// awaitAssetsJS resolves once every <img> has loaded or failed and web fonts are ready
const awaitAssetsJS = `Promise.all(Array.from(document.images).map(function (img) {
	if (img.complete) { return true; }
	return new Promise(function (resolve) { img.onload = img.onerror = resolve; });
})).then(function () { return document.fonts ? document.fonts.ready : true; }).then(function () { return true; })`

// ChromedpConfig contains configuration for the chromedp rasterizer
type ChromedpConfig struct {
	// DefaultTimeout bounds one rasterization, from opening the tab to the PDF
	DefaultTimeout time.Duration
	// RemoteURL is the URL of a remote Chrome/Chromium instance (optional)
	// If empty, chromedp will launch a new browser instance
	RemoteURL string
	// Headless mode
	Headless bool
	// DisableGPU disables GPU hardware acceleration
	DisableGPU bool
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// BaseURL resolves relative asset URLs such as /upload/logo.png
	BaseURL string
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpRasterizer renders HTML in a headless browser tab, captures it as a
// PNG at OversampleFactor and embeds the bitmap into a one-page PDF.
type ChromedpRasterizer struct {
	config      *ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRasterizer creates a rasterizer sharing one browser allocator
func NewChromedpRasterizer(config *ChromedpConfig) (*ChromedpRasterizer, error) {
	if config == nil {
		config = &ChromedpConfig{Headless: true, DisableGPU: true}
	}
	if config.DefaultTimeout == 0 {
		config.DefaultTimeout = defaultChromeTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRasterizer{
		config: config,
		logger: logger,
	}
	r.initAllocator()
	return r, nil
}

// initAllocator initializes the Chrome allocator
func (r *ChromedpRasterizer) initAllocator() {
	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.config.Headless),
		chromedp.Flag("disable-gpu", r.config.DisableGPU),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Rasterize lays html out at PageWidthMM, captures it and returns a single
// continuously scaled PDF page.
func (r *ChromedpRasterizer) Rasterize(ctx context.Context, html string) (*RasterResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	startTime := time.Now()
	timeout := r.config.DefaultTimeout

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The tab is the offscreen surface; cancelling closes it on every path.
	tabCtx, tabCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer tabCancel()
	// Bind the tab to the request deadline.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var png []byte
	err := chromedp.Run(tabCtx,
		emulation.SetDeviceMetricsOverride(int64(ViewportWidthPx), initialViewportHeightPx, OversampleFactor, false),
		chromedp.Navigate("about:blank"),
		setDocumentContent(buildCompleteHTML(html, r.config.BaseURL)),
		awaitAssets(),
		chromedp.FullScreenshot(&png, 100),
	)
	if err != nil {
		return nil, r.mapError(ctx, timeout, "capture", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "captured bitmap is not a PNG", err)
	}
	heightMM, err := PageHeightMM(cfg.Width, cfg.Height)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "captured bitmap is empty", err)
	}

	var pdf []byte
	err = chromedp.Run(tabCtx,
		setDocumentContent(imagePageHTML(png, heightMM)),
		awaitAssets(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(mmToInches(PageWidthMM)).
				WithPaperHeight(mmToInches(heightMM)).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithPageRanges("1").
				WithPreferCSSPageSize(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, r.mapError(ctx, timeout, "print", err)
	}
	if len(pdf) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	duration := time.Since(startTime)
	r.logger.Debug("document rasterized",
		zap.Int("width_px", cfg.Width),
		zap.Int("height_px", cfg.Height),
		zap.Float64("page_height_mm", heightMM),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", duration))

	return &RasterResult{
		PDF:            pdf,
		WidthPx:        cfg.Width,
		HeightPx:       cfg.Height,
		PageHeightMM:   heightMM,
		RenderDuration: duration,
	}, nil
}

func (r *ChromedpRasterizer) mapError(ctx context.Context, timeout time.Duration, stage string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return NewRenderError(ErrCodeRenderTimeout,
			fmt.Sprintf("rasterization timed out after %v", timeout), err)
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return NewRenderError(ErrCodeRenderTimeout, "rasterization was cancelled", err)
	}

	r.logger.Error("chromedp rasterization failed", zap.String("stage", stage), zap.Error(err))
	return NewRenderError(ErrCodeRenderFailed, "chromedp "+stage+" failed", err)
}

// setDocumentContent replaces the current frame's document with html
func setDocumentContent(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		frameTree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
	})
}

func awaitAssets() chromedp.Action {
	var ready bool
	return chromedp.Evaluate(awaitAssetsJS, &ready, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithAwaitPromise(true)
	})
}

// Close releases resources held by the rasterizer
func (r *ChromedpRasterizer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// Ensure ChromedpRasterizer implements Rasterizer
var _ Rasterizer = (*ChromedpRasterizer)(nil)
