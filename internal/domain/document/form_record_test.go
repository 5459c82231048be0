package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormRecord_DisplayFilename(t *testing.T) {
	r := &FormRecord{BlNumber: "MSCU123", InvoiceNumber: "INV/9"}

	assert.Equal(t, "BL-MSCU123.pdf", r.DisplayFilename(KindBL))
	assert.Equal(t, "Pagamento-Frete-INV-9.pdf", r.DisplayFilename(KindPayment))
	assert.Equal(t, "Invoice-INV-9.pdf", r.DisplayFilename(KindInvoice))
	assert.Equal(t, DefaultOriginalName, r.DisplayFilename(Kind("other")))
}

func TestFormRecord_Values(t *testing.T) {
	r := &FormRecord{ShipperName: "ACME", Currency: "USD"}
	v := r.Values()

	assert.Equal(t, "ACME", v["shipperName"])
	assert.Equal(t, "USD", v["currency"])
	assert.Equal(t, "", v["vessel"])
	_, ok := v["logoUrl"]
	assert.True(t, ok)
}

func TestKind(t *testing.T) {
	for _, k := range BatchKinds() {
		assert.True(t, k.IsValid(), k)
	}
	_, ok := ParseKind("receipt")
	assert.False(t, ok)
	k, ok := ParseKind("payment")
	assert.True(t, ok)
	assert.Equal(t, KindPayment, k)
	assert.Equal(t, []Kind{KindBL, KindPayment, KindInvoice}, BatchKinds())
}

func TestUploadedFile(t *testing.T) {
	f := NewUploadedFile("abc.pdf", "", 10, "", "")
	assert.Equal(t, DefaultOriginalName, f.OriginalName)
	assert.Equal(t, MimeTypePDF, f.MimeType)
	assert.Nil(t, f.BatchID)
	assert.Nil(t, f.Kind)
	assert.Equal(t, f.ID.String(), f.GroupKey())
	assert.Equal(t, "/upload/abc.pdf", f.PublicURL())
	assert.Equal(t, Kind(""), f.KindValue())
}
