package bill

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Address struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	CountryCode  string
}

func (a *Address) IsEmpty() bool {
	return a == nil ||
		strings.TrimSpace(a.Name) == "" &&
			strings.TrimSpace(a.AddressLine1) == "" &&
			strings.TrimSpace(a.AddressLine2) == "" &&
			strings.TrimSpace(a.CountryCode) == ""
}

type ReferenceType string

const (
	ReferenceQR       ReferenceType = "QRR"
	ReferenceCreditor ReferenceType = "SCOR"
	ReferenceNone     ReferenceType = "NON"
)

// Bill is a single QR-bill. A nil Debtor or an invalid Amount leaves the
// corresponding field open for the payer to fill in by hand.
type Bill struct {
	Account             string
	Creditor            Address
	Debtor              *Address
	Currency            string
	Amount              decimal.NullDecimal
	Reference           string
	ReferenceType       ReferenceType
	UnstructuredMessage string
	Format              Format
}

func (b *Bill) HasAmount() bool {
	return b.Amount.Valid
}

func (b *Bill) clone() *Bill {
	c := *b
	if b.Debtor != nil {
		d := *b.Debtor
		c.Debtor = &d
	}
	return &c
}
