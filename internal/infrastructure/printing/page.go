package printing

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
)

const (
	// PageWidthMM is the fixed A4 page width every document is laid out at
	PageWidthMM = 210.0
	// CSSPixelsPerInch is the CSS reference resolution
	CSSPixelsPerInch = 96.0
	// OversampleFactor is the device scale factor used for print-quality capture
	OversampleFactor = 2.0
)

// ViewportWidthPx is PageWidthMM expressed in CSS pixels (794 at 96 dpi)
var ViewportWidthPx = int(math.Round(mmToInches(PageWidthMM) * CSSPixelsPerInch))

// PageHeightMM returns the height of a page PageWidthMM wide that keeps the
// aspect ratio of a widthPx x heightPx bitmap.
func PageHeightMM(widthPx, heightPx int) (float64, error) {
	if widthPx <= 0 || heightPx <= 0 {
		return 0, fmt.Errorf("invalid bitmap size %dx%d", widthPx, heightPx)
	}
	return PageWidthMM * float64(heightPx) / float64(widthPx), nil
}

// mmToInches converts millimeters to inches
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

// buildCompleteHTML wraps an HTML fragment in a full document.
// A non-empty baseURL is injected as <base> so relative asset URLs resolve.
func buildCompleteHTML(fragment, baseURL string) string {
	lower := strings.ToLower(fragment)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		if baseURL == "" {
			return fragment
		}
		if i := strings.Index(lower, "<head>"); i >= 0 {
			i += len("<head>")
			return fragment[:i] + baseTag(baseURL) + fragment[i:]
		}
		return fragment
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head>")
	buf.WriteString("<meta charset=\"UTF-8\">")
	if baseURL != "" {
		buf.WriteString(baseTag(baseURL))
	}
	buf.WriteString("<style>html,body{margin:0;padding:0;background:#fff;}</style>")
	buf.WriteString("</head><body>")
	buf.WriteString(fragment)
	buf.WriteString("</body></html>")
	return buf.String()
}

func baseTag(baseURL string) string {
	return `<base href="` + html.EscapeString(baseURL) + `">`
}

// imagePageHTML returns a document holding only the captured bitmap, sized to
// exactly one PageWidthMM x heightMM page.
func imagePageHTML(png []byte, heightMM float64) string {
	h := strconv.FormatFloat(heightMM, 'f', 3, 64)
	w := strconv.FormatFloat(PageWidthMM, 'f', 0, 64)

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"UTF-8\"><style>")
	buf.WriteString("@page{margin:0;size:" + w + "mm " + h + "mm;}")
	buf.WriteString("html,body{margin:0;padding:0;}")
	buf.WriteString("img{display:block;width:" + w + "mm;height:" + h + "mm;}")
	buf.WriteString("</style></head><body><img src=\"data:image/png;base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(png))
	buf.WriteString("\"></body></html>")
	return buf.String()
}
