package bill

import (
	"strings"
	"unicode"
)

const (
	maxNameLength    = 70
	maxAddressLength = 70
	maxMessageLength = 140
)

// extendedLatin lists the characters outside Latin-1 that the Swiss
// Payment Standards character set permits.
const extendedLatin = "ŒœŠšŸŽžȘșȚțĆćČčĐđŁłŃńŚśŹźŻż€"

// Validate checks the bill against the QR-bill rules and returns a cleaned
// copy ready for encoding. The receiver is left untouched.
func (b *Bill) Validate() (*Bill, error) {
	out := b.clone()
	verr := &ValidationError{}

	out.Currency = strings.ToUpper(strings.TrimSpace(out.Currency))
	if out.Currency != "CHF" && out.Currency != "EUR" {
		verr.add(FieldCurrency, "currency must be CHF or EUR")
	}

	validateAccount(out, verr)
	validateAmount(out, verr)

	validateAddress(&out.Creditor, FieldCreditor, verr)
	if out.Debtor.IsEmpty() {
		out.Debtor = nil
	} else {
		validateAddress(out.Debtor, FieldDebtor, verr)
	}

	validateReference(out, verr)

	out.UnstructuredMessage = CleanText(out.UnstructuredMessage)
	if len([]rune(out.UnstructuredMessage)) > maxMessageLength {
		verr.add(FieldUnstructuredMessage, "message must not exceed 140 characters")
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return out, nil
}

func validateAccount(b *Bill, verr *ValidationError) {
	b.Account = NormalizeIBAN(b.Account)
	switch {
	case b.Account == "":
		verr.add(FieldAccount, "account is required")
	case !ValidIBAN(b.Account):
		verr.add(FieldAccount, "account is not a valid IBAN")
	case !strings.HasPrefix(b.Account, "CH") && !strings.HasPrefix(b.Account, "LI"):
		verr.add(FieldAccount, "only CH and LI accounts are supported")
	case len(b.Account) != swissIBANLength:
		verr.add(FieldAccount, "account must have 21 characters")
	}
}

func validateAmount(b *Bill, verr *ValidationError) {
	if !b.Amount.Valid {
		return
	}
	amount := b.Amount.Decimal.Round(2)
	if amount.LessThan(minAmount) || amount.GreaterThan(maxAmount) {
		verr.add(FieldAmount, "amount must be between 0.00 and 999 999 999.99")
		return
	}
	b.Amount.Decimal = amount
}

func validateAddress(a *Address, field string, verr *ValidationError) {
	a.Name = CleanText(a.Name)
	a.AddressLine1 = CleanText(a.AddressLine1)
	a.AddressLine2 = CleanText(a.AddressLine2)
	a.CountryCode = strings.ToUpper(strings.TrimSpace(a.CountryCode))

	if a.Name == "" {
		verr.add(field, "name is required")
	} else if len([]rune(a.Name)) > maxNameLength {
		verr.add(field, "name must not exceed 70 characters")
	}
	if len([]rune(a.AddressLine1)) > maxAddressLength {
		verr.add(field, "address line 1 must not exceed 70 characters")
	}
	if a.AddressLine2 == "" {
		verr.add(field, "address line 2 is required")
	} else if len([]rune(a.AddressLine2)) > maxAddressLength {
		verr.add(field, "address line 2 must not exceed 70 characters")
	}
	if len(a.CountryCode) != 2 || !isUpperLetter(a.CountryCode[0]) || !isUpperLetter(a.CountryCode[1]) {
		verr.add(field, "country code must be two letters")
	}
}

func validateReference(b *Bill, verr *ValidationError) {
	b.Reference = strings.ToUpper(removeWhitespace(b.Reference))
	if b.Reference == "" {
		b.ReferenceType = ReferenceNone
	} else if b.ReferenceType == "" || b.ReferenceType == ReferenceNone {
		switch {
		case ValidQRReference(b.Reference):
			b.ReferenceType = ReferenceQR
		case ValidCreditorReference(b.Reference):
			b.ReferenceType = ReferenceCreditor
		default:
			verr.add(FieldReference, "reference is neither a QR reference nor a creditor reference")
			return
		}
	}

	qrIBAN := IsQRIBAN(b.Account)
	switch b.ReferenceType {
	case ReferenceQR:
		if !qrIBAN {
			verr.add(FieldReference, "QR reference requires a QR-IBAN")
		} else if !ValidQRReference(b.Reference) {
			verr.add(FieldReference, "QR reference is invalid")
		}
	case ReferenceCreditor:
		if qrIBAN {
			verr.add(FieldReference, "QR-IBAN requires a QR reference")
		} else if !ValidCreditorReference(b.Reference) {
			verr.add(FieldReference, "creditor reference is invalid")
		}
	default:
		if qrIBAN {
			verr.add(FieldReference, "QR-IBAN requires a QR reference")
		}
	}
}

// CleanText collapses whitespace and replaces characters the QR-bill
// character set does not allow with a dot.
func CleanText(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		if allowedRune(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func allowedRune(r rune) bool {
	switch {
	case r >= 0x20 && r <= 0x7e:
		return true
	case r >= 0xa0 && r <= 0xff:
		return true
	default:
		return strings.ContainsRune(extendedLatin, r)
	}
}
