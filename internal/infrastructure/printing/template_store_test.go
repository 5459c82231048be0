package printing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeRecord() *document.FormRecord {
	return &document.FormRecord{
		ShipperName:        "Exportadora Sul Ltda",
		ShipperCnpj:        "12.345.678/0001-90",
		ShipperAddress:     "Rua das Palmeiras 100, Itajai SC",
		ConsigneeName:      "Nordic Imports AB",
		ConsigneeAddress:   "Hamngatan 4, Gothenburg",
		BrazilBiName:       "BI Servicos",
		BrazilBiCnpj:       "98.765.432/0001-10",
		BrazilBiAddress:    "Av Paulista 900, Sao Paulo",
		BookingNo:          "BKG-77120",
		BlNumber:           "MSCU1234567",
		Vessel:             "MSC Aurora",
		PortOfLoading:      "Itajai",
		PortOfDischarge:    "Gothenburg",
		ShippedOnBoardDate: "2024-03-05",
		Containers:         "2x40HC",
		Packages:           "1200 cartons",
		Description:        "Frozen chicken cuts",
		Ncm:                "0207.14.00",
		NetWeight:          "48000",
		GrossWeight:        "50120",
		Measurement:        "134 CBM",
		Currency:           "USD",
		FreightValue:       "4850.75",
		Incoterm:           "CIF",
		InvoiceNumber:      "INV-2024-031",
		Circular:           "CIRC-9",
		BeneficiaryBank:    "Banco Atlantico",
		SwiftCode:          "BATLBRSP",
		AccountNumber:      "000123456",
		RoutingNumber:      "026009593",
		BeneficiaryAddress: "Praca XV 12, Rio de Janeiro",
		LogoURL:            "/upload/logo.png",
		SignatureURL:       "/upload/signature.png",
	}
}

// fieldsByKind lists the fields each template prints verbatim.
var fieldsByKind = map[document.Kind][]string{
	document.KindBL: {
		"shipperName", "shipperCnpj", "shipperAddress", "consigneeName", "consigneeAddress",
		"brazilBiName", "brazilBiCnpj", "brazilBiAddress", "bookingNo", "blNumber", "vessel",
		"portOfLoading", "portOfDischarge", "shippedOnBoardDate", "containers", "packages",
		"description", "ncm", "netWeight", "grossWeight", "measurement", "incoterm", "logoUrl",
		"signatureUrl",
	},
	document.KindPayment: {
		"shipperName", "consigneeName", "blNumber", "vessel", "portOfLoading", "portOfDischarge",
		"incoterm", "currency", "freightValue", "invoiceNumber", "circular", "beneficiaryBank",
		"swiftCode", "accountNumber", "routingNumber", "beneficiaryAddress", "logoUrl", "signatureUrl",
	},
	document.KindInvoice: {
		"shipperName", "shipperCnpj", "shipperAddress", "consigneeName", "consigneeAddress",
		"brazilBiName", "brazilBiCnpj", "brazilBiAddress", "bookingNo", "blNumber", "vessel",
		"portOfLoading", "portOfDischarge", "shippedOnBoardDate", "containers", "packages",
		"description", "ncm", "netWeight", "grossWeight", "measurement", "currency", "freightValue",
		"incoterm", "invoiceNumber", "beneficiaryBank", "swiftCode", "accountNumber", "routingNumber",
		"beneficiaryAddress", "logoUrl", "signatureUrl",
	},
}

func newTestStore(t *testing.T, dir string) *TemplateStore {
	t.Helper()
	store, err := NewTemplateStore(&TemplateStoreConfig{ExternalDir: dir})
	require.NoError(t, err)
	return store
}

func TestTemplateStore_RenderCompleteRecord(t *testing.T) {
	store := newTestStore(t, "")
	values := completeRecord().Values()

	for _, kind := range document.BatchKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			html, err := store.Render(context.Background(), kind, values)
			require.NoError(t, err)

			for _, field := range fieldsByKind[kind] {
				assert.Contains(t, html, values[field], "field %s", field)
			}
			assert.NotContains(t, html, "{{")
			assert.NotContains(t, html, "}}")
			assert.NotContains(t, html, "<no value>")
		})
	}
}

func TestTemplateStore_DerivedValues(t *testing.T) {
	store := newTestStore(t, "")
	values := completeRecord().Values()

	html, err := store.Render(context.Background(), document.KindPayment, values)
	require.NoError(t, err)
	assert.Contains(t, html, "US$ 4,850.75")

	html, err = store.Render(context.Background(), document.KindBL, values)
	require.NoError(t, err)
	assert.Contains(t, html, "2024-03-05")
	assert.Contains(t, html, "FREIGHT PREPAID")
}

func TestTemplateStore_MissingOptionalFields(t *testing.T) {
	store := newTestStore(t, "")

	record := completeRecord()
	record.Vessel = ""
	record.LogoURL = ""
	record.SignatureURL = ""
	values := record.Values()
	delete(values, "circular")

	for _, kind := range document.BatchKinds() {
		t.Run(kind.String(), func(t *testing.T) {
			html, err := store.Render(context.Background(), kind, values)
			require.NoError(t, err)
			assert.NotContains(t, html, "MSC Aurora")
			assert.NotContains(t, html, "<img")
			assert.NotContains(t, html, "<no value>")
		})
	}
}

func TestTemplateStore_MissingDerivedInput(t *testing.T) {
	store := newTestStore(t, "")
	record := completeRecord()
	record.FreightValue = ""

	_, err := store.Render(context.Background(), document.KindBL, record.Values())
	require.NoError(t, err, "bill of lading does not derive values")

	for _, kind := range []document.Kind{document.KindPayment, document.KindInvoice} {
		_, err := store.Render(context.Background(), kind, record.Values())
		require.Error(t, err, kind)
		assert.Equal(t, ErrCodeRenderFailed, RenderErrorCode(err))
	}
}

func TestTemplateStore_UnsupportedKind(t *testing.T) {
	store := newTestStore(t, "")

	_, err := store.Render(context.Background(), document.Kind("receipt"), map[string]string{})
	require.Error(t, err)
	assert.Equal(t, ErrCodeUnsupportedKind, RenderErrorCode(err))
}

func TestTemplateStore_ExternalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bl.html"), []byte(`<p>custom {{.blNumber}}</p>`), 0o644))
	store := newTestStore(t, dir)

	html, err := store.Render(context.Background(), document.KindBL, map[string]string{"blNumber": "X1"})
	require.NoError(t, err)
	assert.Equal(t, "<p>custom X1</p>", html)

	// Kinds without an override fall back to the embedded template
	html, err = store.Render(context.Background(), document.KindInvoice, completeRecord().Values())
	require.NoError(t, err)
	assert.Contains(t, html, "COMMERCIAL INVOICE")
}

func TestTemplateStore_ReloadPurgesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bl.html")
	require.NoError(t, os.WriteFile(path, []byte(`v1`), 0o644))
	store := newTestStore(t, dir)

	html, err := store.Render(context.Background(), document.KindBL, nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", html)

	require.NoError(t, os.WriteFile(path, []byte(`v2`), 0o644))
	html, err = store.Render(context.Background(), document.KindBL, nil)
	require.NoError(t, err)
	assert.Equal(t, "v1", html, "cached until reload")

	store.Reload()
	html, err = store.Render(context.Background(), document.KindBL, nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", html)
}

func TestTemplateStore_WatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bl.html")
	require.NoError(t, os.WriteFile(path, []byte(`before`), 0o644))
	store := newTestStore(t, dir)

	html, err := store.Render(context.Background(), document.KindBL, nil)
	require.NoError(t, err)
	require.Equal(t, "before", html)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`after`), 0o644))

	assert.Eventually(t, func() bool {
		html, err := store.Render(context.Background(), document.KindBL, nil)
		return err == nil && strings.TrimSpace(html) == "after"
	}, 5*time.Second, 50*time.Millisecond)
}

func TestTemplateStore_WatchWithoutDirReturns(t *testing.T) {
	store := newTestStore(t, "")
	assert.NoError(t, store.Watch(context.Background()))
}
