package document

import (
	"strings"
)

// FormRecord is the set of shipment and invoice fields collected by the form.
// It is never persisted; each batch derives its PDFs from one FormRecord.
type FormRecord struct {
	// Shipper
	ShipperName    string `json:"shipperName"`
	ShipperCnpj    string `json:"shipperCnpj"`
	ShipperAddress string `json:"shipperAddress"`

	// Consignee
	ConsigneeName    string `json:"consigneeName"`
	ConsigneeAddress string `json:"consigneeAddress"`

	// Notify party in Brazil
	BrazilBiName    string `json:"brazilBiName"`
	BrazilBiCnpj    string `json:"brazilBiCnpj"`
	BrazilBiAddress string `json:"brazilBiAddress"`

	// Shipment
	BookingNo          string `json:"bookingNo"`
	BlNumber           string `json:"blNumber" validate:"omitempty,max=64"`
	Vessel             string `json:"vessel"`
	PortOfLoading      string `json:"portOfLoading"`
	PortOfDischarge    string `json:"portOfDischarge"`
	ShippedOnBoardDate string `json:"shippedOnBoardDate" validate:"omitempty,datetime=2006-01-02"`

	// Cargo
	Containers  string `json:"containers"`
	Packages    string `json:"packages"`
	Description string `json:"description"`
	Ncm         string `json:"ncm"`
	NetWeight   string `json:"netWeight"`
	GrossWeight string `json:"grossWeight"`
	Measurement string `json:"measurement"`

	// Financial terms
	Currency      string `json:"currency" validate:"omitempty,oneof=USD EUR BRL"`
	FreightValue  string `json:"freightValue"`
	Incoterm      string `json:"incoterm" validate:"omitempty,oneof=FOB CIF CFR EXW"`
	InvoiceNumber string `json:"invoiceNumber" validate:"omitempty,max=64"`
	Circular      string `json:"circular"`

	// Banking details
	BeneficiaryBank    string `json:"beneficiaryBank"`
	SwiftCode          string `json:"swiftCode"`
	AccountNumber      string `json:"accountNumber"`
	RoutingNumber      string `json:"routingNumber"`
	BeneficiaryAddress string `json:"beneficiaryAddress"`

	// Branding assets
	LogoURL      string `json:"logoUrl"`
	SignatureURL string `json:"signatureUrl"`
}

// Values returns the record as a flat map keyed by the JSON field names.
// Templates read fields from this map, so an absent key renders as "".
func (r *FormRecord) Values() map[string]string {
	return map[string]string{
		"shipperName":        r.ShipperName,
		"shipperCnpj":        r.ShipperCnpj,
		"shipperAddress":     r.ShipperAddress,
		"consigneeName":      r.ConsigneeName,
		"consigneeAddress":   r.ConsigneeAddress,
		"brazilBiName":       r.BrazilBiName,
		"brazilBiCnpj":       r.BrazilBiCnpj,
		"brazilBiAddress":    r.BrazilBiAddress,
		"bookingNo":          r.BookingNo,
		"blNumber":           r.BlNumber,
		"vessel":             r.Vessel,
		"portOfLoading":      r.PortOfLoading,
		"portOfDischarge":    r.PortOfDischarge,
		"shippedOnBoardDate": r.ShippedOnBoardDate,
		"containers":         r.Containers,
		"packages":           r.Packages,
		"description":        r.Description,
		"ncm":                r.Ncm,
		"netWeight":          r.NetWeight,
		"grossWeight":        r.GrossWeight,
		"measurement":        r.Measurement,
		"currency":           r.Currency,
		"freightValue":       r.FreightValue,
		"incoterm":           r.Incoterm,
		"invoiceNumber":      r.InvoiceNumber,
		"circular":           r.Circular,
		"beneficiaryBank":    r.BeneficiaryBank,
		"swiftCode":          r.SwiftCode,
		"accountNumber":      r.AccountNumber,
		"routingNumber":      r.RoutingNumber,
		"beneficiaryAddress": r.BeneficiaryAddress,
		"logoUrl":            r.LogoURL,
		"signatureUrl":       r.SignatureURL,
	}
}

// DisplayFilename returns the download name used for the generated document of kind k.
func (r *FormRecord) DisplayFilename(k Kind) string {
	switch k {
	case KindBL:
		return "BL-" + sanitizeFilenamePart(r.BlNumber) + ".pdf"
	case KindPayment:
		return "Pagamento-Frete-" + sanitizeFilenamePart(r.InvoiceNumber) + ".pdf"
	case KindInvoice:
		return "Invoice-" + sanitizeFilenamePart(r.InvoiceNumber) + ".pdf"
	default:
		return DefaultOriginalName
	}
}

// sanitizeFilenamePart strips path separators so a field value cannot escape the name.
func sanitizeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', 0:
			return '-'
		}
		return r
	}, s)
}
