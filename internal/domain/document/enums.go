package document

// Kind represents the role of a generated document within a batch
type Kind string

const (
	KindBL      Kind = "bl"      // Bill of Lading
	KindPayment Kind = "payment" // Freight payment notice
	KindInvoice Kind = "invoice" // Commercial invoice
)

// IsValid checks if the Kind is one of the batch document kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindBL, KindPayment, KindInvoice:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// DisplayName returns the human readable name of the Kind
func (k Kind) DisplayName() string {
	switch k {
	case KindBL:
		return "Bill of Lading"
	case KindPayment:
		return "Pagamento de Frete"
	case KindInvoice:
		return "Invoice"
	default:
		return string(k)
	}
}

// BatchKinds returns the kinds of a batch in generation order
func BatchKinds() []Kind {
	return []Kind{KindBL, KindPayment, KindInvoice}
}

// ParseKind converts s into a Kind, reporting whether it is a batch kind
func ParseKind(s string) (Kind, bool) {
	k := Kind(s)
	return k, k.IsValid()
}

// Currency represents the currency of the freight value
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyBRL Currency = "BRL"
)

// IsValid checks if the Currency is supported
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyBRL:
		return true
	}
	return false
}

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case CurrencyUSD:
		return "US$"
	case CurrencyEUR:
		return "€"
	case CurrencyBRL:
		return "R$"
	default:
		return string(c)
	}
}

// Incoterm represents the trade term agreed for the shipment
type Incoterm string

const (
	IncotermFOB Incoterm = "FOB"
	IncotermCIF Incoterm = "CIF"
	IncotermCFR Incoterm = "CFR"
	IncotermEXW Incoterm = "EXW"
)

// IsValid checks if the Incoterm is supported
func (i Incoterm) IsValid() bool {
	switch i {
	case IncotermFOB, IncotermCIF, IncotermCFR, IncotermEXW:
		return true
	}
	return false
}
