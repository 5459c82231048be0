package printing

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"strings"
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TemplateEngine parses and executes document templates.
// It uses Go's html/template package with custom functions for formatting.
// Templates execute with missingkey=zero, so absent fields render as "".
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine() *TemplateEngine {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		// Money formatting
		"money":          money,
		"currencySymbol": currencySymbol,

		// Date formatting
		"formatDate": formatDate,

		// Number formatting
		"number": formatNumber,

		// String utilities
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"title":   titleCase,
		"trim":    strings.TrimSpace,
		"default": defaultFunc,
		"nl2br":   nl2br,
	}

	return e
}

// Parse compiles template content under name
func (e *TemplateEngine) Parse(name, content string) (*template.Template, error) {
	if strings.TrimSpace(content) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}
	tmpl, err := template.New(name).Option("missingkey=zero").Funcs(e.funcMap).Parse(content)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}
	return tmpl, nil
}

// Execute runs a parsed template against data
func (e *TemplateEngine) Execute(ctx context.Context, tmpl *template.Template, data any) (string, error) {
	if tmpl == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "template is nil", nil)
	}
	if err := ctx.Err(); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "render cancelled", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// =============================================================================
// Template Functions - Money Formatting
// =============================================================================

var errMoneyRequired = errors.New("value is required")

// money formats a decimal string with the currency symbol and two decimals.
// It is used for derived totals, so an empty or non-numeric value is an error.
// Example: money "1234.5" "BRL" -> "R$ 1.234,50"
func money(value, currency string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errMoneyRequired
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "", err
	}

	cur := document.Currency(strings.ToUpper(strings.TrimSpace(currency)))
	amount := groupDecimal(d, 2, currencyLocale(cur))
	if cur == "" {
		return amount, nil
	}
	return cur.Symbol() + " " + amount, nil
}

func currencySymbol(currency string) string {
	if currency == "" {
		return ""
	}
	return document.Currency(strings.ToUpper(currency)).Symbol()
}

func currencyLocale(c document.Currency) language.Tag {
	switch c {
	case document.CurrencyBRL:
		return language.BrazilianPortuguese
	case document.CurrencyEUR:
		return language.German
	default:
		return language.AmericanEnglish
	}
}

// =============================================================================
// Template Functions - Dates and Numbers
// =============================================================================

// formatDate reformats a YYYY-MM-DD date as DD/MM/YYYY.
// Values that are not dates are returned unchanged.
func formatDate(v string) string {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(v))
	if err != nil {
		return v
	}
	return t.Format("02/01/2006")
}

// formatNumber groups a decimal string with thousands separators.
// Values that are not numbers are returned unchanged.
func formatNumber(v string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return v
	}
	scale := -d.Exponent()
	if scale < 0 {
		scale = 0
	}
	return groupDecimal(d, scale, language.AmericanEnglish)
}

// groupDecimal renders d with exactly places decimals and the grouping and
// decimal separators of tag. Digits come from the decimal itself, never from
// a float, so large amounts stay exact.
func groupDecimal(d decimal.Decimal, places int32, tag language.Tag) string {
	group, point := separators(tag)

	fixed := d.StringFixed(places)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(point)
		b.WriteString(frac)
	}
	return b.String()
}

// separators reads the locale's grouping and decimal marks by formatting a
// sample number with x/text.
func separators(tag language.Tag) (group, point string) {
	sample := []rune(message.NewPrinter(tag).Sprint(number.Decimal(1000.5, number.Scale(1))))
	if len(sample) != 7 {
		return ",", "."
	}
	return string(sample[1]), string(sample[5])
}

// =============================================================================
// Template Functions - Strings
// =============================================================================

// titleCase converts string to title case using proper Unicode handling
func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}

func defaultFunc(def, val string) string {
	if strings.TrimSpace(val) == "" {
		return def
	}
	return val
}

// nl2br escapes s and turns newlines into <br> so multi-line addresses keep their shape
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}
