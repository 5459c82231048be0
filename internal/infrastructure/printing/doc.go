// Package printing turns form data into freight document PDFs.
//
// This package contains:
// - TemplateEngine and TemplateStore for the bl, payment and invoice HTML templates
// - Rasterizer interface for converting HTML into a single-page PDF
// - ChromedpRasterizer implementation driving headless Chrome
//
// Example usage:
//
//	store, err := NewTemplateStore(&TemplateStoreConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html, err := store.Render(ctx, document.KindBL, record.Values())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rasterizer, err := NewChromedpRasterizer(&ChromedpConfig{Headless: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rasterizer.Close()
//
//	result, err := rasterizer.Rasterize(ctx, html)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Generated PDF: %d bytes, page height %.1fmm\n", len(result.PDF), result.PageHeightMM)
package printing
