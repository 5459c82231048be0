package printing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplateEngine(t *testing.T) {
	engine := NewTemplateEngine()
	assert.NotNil(t, engine)
	assert.NotNil(t, engine.funcMap)
}

// renderString parses content and executes it in one step
func renderString(ctx context.Context, e *TemplateEngine, content string, data any) (string, error) {
	tmpl, err := e.Parse("t", content)
	if err != nil {
		return "", err
	}
	return e.Execute(ctx, tmpl, data)
}

func TestTemplateEngine_Funcs(t *testing.T) {
	engine := NewTemplateEngine()
	for _, name := range []string{"money", "currencySymbol", "formatDate", "number", "upper", "title", "default", "nl2br"} {
		assert.NotNil(t, engine.funcMap[name], name)
	}

	html, err := renderString(context.Background(), engine, `{{upper .name}} {{number .qty}}`, map[string]string{"name": "hi", "qty": "1200"})
	require.NoError(t, err)
	assert.Equal(t, "HI 1,200", html)
}

func TestTemplateEngine_ParseAndExecute(t *testing.T) {
	engine := NewTemplateEngine()
	ctx := context.Background()

	t.Run("escapes values", func(t *testing.T) {
		html, err := renderString(ctx, engine, `<p>{{.name}}</p>`, map[string]string{"name": "<b>Acme & Co</b>"})
		require.NoError(t, err)
		assert.Equal(t, "<p>&lt;b&gt;Acme &amp; Co&lt;/b&gt;</p>", html)
	})

	t.Run("missing keys render empty", func(t *testing.T) {
		html, err := renderString(ctx, engine, `[{{.absent}}]`, map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, "[]", html)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		_, err := renderString(ctx, engine, "  ", nil)
		require.Error(t, err)
		assert.Equal(t, ErrCodeInvalidHTML, RenderErrorCode(err))
	})

	t.Run("parse errors are invalid html", func(t *testing.T) {
		_, err := renderString(ctx, engine, "{{.name", nil)
		require.Error(t, err)
		assert.Equal(t, ErrCodeInvalidHTML, RenderErrorCode(err))
	})

	t.Run("function errors fail the render", func(t *testing.T) {
		_, err := renderString(ctx, engine, `{{money .freightValue .currency}}`, map[string]string{"currency": "USD"})
		require.Error(t, err)
		assert.Equal(t, ErrCodeRenderFailed, RenderErrorCode(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := renderString(cctx, engine, "x", nil)
		require.Error(t, err)
		assert.Equal(t, ErrCodeRenderFailed, RenderErrorCode(err))
	})
}

func TestTemplateEngine_ExecuteNilTemplate(t *testing.T) {
	_, err := NewTemplateEngine().Execute(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, ErrCodeInvalidHTML, RenderErrorCode(err))
}

func TestMoney(t *testing.T) {
	t.Run("formats with symbol and two decimals", func(t *testing.T) {
		got, err := money("1234.5", "USD")
		require.NoError(t, err)
		assert.Equal(t, "US$ 1,234.50", got)
	})

	t.Run("uses brazilian separators for BRL", func(t *testing.T) {
		got, err := money("1234.5", "brl")
		require.NoError(t, err)
		assert.Equal(t, "R$ 1.234,50", got)
	})

	t.Run("omits symbol without currency", func(t *testing.T) {
		got, err := money("10", "")
		require.NoError(t, err)
		assert.Equal(t, "10.00", got)
	})

	t.Run("keeps every digit of large amounts", func(t *testing.T) {
		got, err := money("12345678901234567.89", "USD")
		require.NoError(t, err)
		assert.Equal(t, "US$ 12,345,678,901,234,567.89", got)

		got, err = money("-0.005", "EUR")
		require.NoError(t, err)
		assert.Equal(t, "€ -0,01", got)
	})

	t.Run("empty value is an error", func(t *testing.T) {
		_, err := money("  ", "USD")
		assert.ErrorIs(t, err, errMoneyRequired)
	})

	t.Run("non numeric value is an error", func(t *testing.T) {
		_, err := money("abc", "USD")
		assert.Error(t, err)
	})
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "05/03/2024", formatDate("2024-03-05"))
	assert.Equal(t, "", formatDate(""))
	assert.Equal(t, "soon", formatDate("soon"))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "12,500", formatNumber("12500"))
	assert.Equal(t, "1,234.56", formatNumber("1234.56"))
	assert.Equal(t, "20 KG", formatNumber("20 KG"))
	assert.Equal(t, "98,765,432,109,876,543.21", formatNumber("98765432109876543.21"))
	assert.Equal(t, "-1,000", formatNumber("-1000"))
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "Port Of Santos", titleCase("port of santos"))
	assert.Equal(t, "-", defaultFunc("-", " "))
	assert.Equal(t, "x", defaultFunc("-", "x"))
	assert.Equal(t, "a &amp; b<br>c", string(nl2br("a & b\nc")))
	assert.Equal(t, "€", currencySymbol("eur"))
	assert.Equal(t, "", currencySymbol(""))
}
