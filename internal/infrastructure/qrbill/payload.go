package qrbill

import (
	"strings"

	"github.com/Xausdorf/qr-bill-hub/internal/domain/bill"
)

const (
	qrType        = "SPC"
	qrVersion     = "0200"
	qrCoding      = "1"
	trailer       = "EPD"
	combinedAddr  = "K"
	payloadFields = 31
)

// EncodePayload builds the Swiss Payment Standards text embedded in the QR
// code. The bill must already be validated.
func EncodePayload(b *bill.Bill) string {
	fields := make([]string, 0, payloadFields)
	fields = append(fields, qrType, qrVersion, qrCoding, b.Account)
	fields = appendAddress(fields, &b.Creditor)
	fields = appendAddress(fields, nil) // ultimate creditor, reserved

	amount := ""
	if b.HasAmount() {
		amount = bill.FormatAmountForCode(b.Amount.Decimal)
	}
	fields = append(fields, amount, b.Currency)
	fields = appendAddress(fields, b.Debtor)

	refType := b.ReferenceType
	if refType == "" {
		refType = bill.ReferenceNone
	}
	fields = append(fields, string(refType), b.Reference, b.UnstructuredMessage, trailer)

	return strings.Join(fields, "\n")
}

func appendAddress(fields []string, a *bill.Address) []string {
	if a.IsEmpty() {
		return append(fields, "", "", "", "", "", "", "")
	}
	// postal code and town stay empty for combined addresses
	return append(fields, combinedAddr, a.Name, a.AddressLine1, a.AddressLine2, "", "", a.CountryCode)
}
