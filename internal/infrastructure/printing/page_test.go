package printing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportWidthPx(t *testing.T) {
	assert.Equal(t, 794, ViewportWidthPx)
}

func TestPageHeightMM_ProportionalToBitmap(t *testing.T) {
	width := int(float64(ViewportWidthPx) * OversampleFactor)

	tests := []struct {
		name     string
		heightPx int
	}{
		{"short document", 1200},
		{"exactly A4", 2245},
		{"tall document", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PageHeightMM(width, tt.heightPx)
			require.NoError(t, err)
			assert.InDelta(t, 210*float64(tt.heightPx)/float64(width), got, 1e-9)
		})
	}

	t.Run("doubling the content height doubles the page", func(t *testing.T) {
		a, err := PageHeightMM(width, 1500)
		require.NoError(t, err)
		b, err := PageHeightMM(width, 3000)
		require.NoError(t, err)
		assert.InDelta(t, 2*a, b, 1e-9)
	})

	t.Run("square bitmap is as tall as it is wide", func(t *testing.T) {
		got, err := PageHeightMM(800, 800)
		require.NoError(t, err)
		assert.InDelta(t, PageWidthMM, got, 1e-9)
	})
}

func TestPageHeightMM_InvalidSize(t *testing.T) {
	_, err := PageHeightMM(0, 100)
	assert.Error(t, err)

	_, err = PageHeightMM(100, -1)
	assert.Error(t, err)
}

func TestMMToInches(t *testing.T) {
	assert.InDelta(t, 1.0, mmToInches(25.4), 1e-9)
	assert.InDelta(t, 8.2677, mmToInches(210), 1e-4)
}

func TestBuildCompleteHTML(t *testing.T) {
	t.Run("wraps fragments", func(t *testing.T) {
		got := buildCompleteHTML("<p>hello</p>", "")
		assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
		assert.Contains(t, got, "<body><p>hello</p></body>")
		assert.NotContains(t, got, "<base")
	})

	t.Run("keeps full documents", func(t *testing.T) {
		doc := "<!DOCTYPE html><html><head></head><body>x</body></html>"
		assert.Equal(t, doc, buildCompleteHTML(doc, ""))
	})

	t.Run("injects base into full documents", func(t *testing.T) {
		doc := "<html><head><title>t</title></head><body>x</body></html>"
		got := buildCompleteHTML(doc, "http://localhost:8080/")
		assert.Contains(t, got, `<head><base href="http://localhost:8080/"><title>`)
	})

	t.Run("injects base into fragments", func(t *testing.T) {
		got := buildCompleteHTML("<img src=\"/upload/logo.png\">", "http://api:8080/")
		assert.Contains(t, got, `<base href="http://api:8080/">`)
	})
}

func TestImagePageHTML(t *testing.T) {
	got := imagePageHTML([]byte{0x89, 'P', 'N', 'G'}, 412.5)

	assert.Contains(t, got, "size:210mm 412.500mm")
	assert.Contains(t, got, "width:210mm;height:412.500mm")
	assert.Contains(t, got, "data:image/png;base64,iVBORw==")
}
