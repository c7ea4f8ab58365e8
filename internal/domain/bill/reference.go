package bill

import (
	"fmt"
	"strings"
)

const (
	qrReferenceLength       = 27
	maxRawCreditorReference = 21
)

var mod10Table = [10]int{0, 9, 4, 6, 8, 2, 7, 1, 3, 5}

// CreateAndSetReference derives a structured reference from raw input and
// stores it on the bill. Bills paid to a QR-IBAN get a QR reference, all
// others an ISO 11649 creditor reference. Empty input clears the reference.
func (b *Bill) CreateAndSetReference(raw string) error {
	raw = strings.ToUpper(removeWhitespace(raw))
	if raw == "" {
		b.Reference = ""
		b.ReferenceType = ReferenceNone
		return nil
	}

	if IsQRIBAN(b.Account) {
		ref, err := CreateQRReference(raw)
		if err != nil {
			return newValidationError(FieldReference, err.Error())
		}
		b.Reference = ref
		b.ReferenceType = ReferenceQR
		return nil
	}

	if looksLikeCreditorReference(raw) {
		if !ValidCreditorReference(raw) {
			return newValidationError(FieldReference, "creditor reference check digits are invalid")
		}
		b.Reference = raw
		b.ReferenceType = ReferenceCreditor
		return nil
	}
	ref, err := CreateCreditorReference(raw)
	if err != nil {
		return newValidationError(FieldReference, err.Error())
	}
	b.Reference = ref
	b.ReferenceType = ReferenceCreditor
	return nil
}

// CreateQRReference pads a numeric reference to 26 digits and appends the
// check digit. A full 27 digit reference is accepted only if it verifies.
func CreateQRReference(raw string) (string, error) {
	raw = removeWhitespace(raw)
	if !isNumeric(raw) {
		return "", fmt.Errorf("QR reference must be numeric")
	}
	switch {
	case len(raw) == qrReferenceLength:
		if !ValidQRReference(raw) {
			return "", fmt.Errorf("QR reference check digit is invalid")
		}
		return raw, nil
	case len(raw) < qrReferenceLength:
		padded := strings.Repeat("0", qrReferenceLength-1-len(raw)) + raw
		return padded + string(rune('0'+CalcQRReferenceCheckDigit(padded))), nil
	default:
		return "", fmt.Errorf("QR reference must not exceed %d digits", qrReferenceLength)
	}
}

// CalcQRReferenceCheckDigit applies the modulo 10 recursive algorithm.
func CalcQRReferenceCheckDigit(digits string) int {
	carry := 0
	for i := 0; i < len(digits); i++ {
		carry = mod10Table[(carry+int(digits[i]-'0'))%10]
	}
	return (10 - carry) % 10
}

func ValidQRReference(ref string) bool {
	ref = removeWhitespace(ref)
	if len(ref) != qrReferenceLength || !isNumeric(ref) {
		return false
	}
	return CalcQRReferenceCheckDigit(ref[:qrReferenceLength-1]) == int(ref[qrReferenceLength-1]-'0')
}

// CreateCreditorReference prefixes raw with RF and its ISO 11649 check digits.
func CreateCreditorReference(raw string) (string, error) {
	raw = strings.ToUpper(removeWhitespace(raw))
	if !isAlphaNumeric(raw) {
		return "", fmt.Errorf("creditor reference may only contain letters and digits")
	}
	if len(raw) > maxRawCreditorReference {
		return "", fmt.Errorf("creditor reference must not exceed %d characters", maxRawCreditorReference)
	}
	check := 98 - mod97(raw+"RF00")
	return fmt.Sprintf("RF%02d%s", check, raw), nil
}

func looksLikeCreditorReference(s string) bool {
	return len(s) >= 4 && strings.HasPrefix(s, "RF") && isDigit(s[2]) && isDigit(s[3])
}

func ValidCreditorReference(ref string) bool {
	ref = strings.ToUpper(removeWhitespace(ref))
	if len(ref) < 5 || len(ref) > 25 || !strings.HasPrefix(ref, "RF") || !isAlphaNumeric(ref) {
		return false
	}
	if !isDigit(ref[2]) || !isDigit(ref[3]) {
		return false
	}
	return mod97(ref[4:]+ref[:4]) == 1
}

// FormatQRReference groups the digits by five starting from the right.
func FormatQRReference(ref string) string {
	ref = removeWhitespace(ref)
	var sb strings.Builder
	head := len(ref) % 5
	for i := 0; i < len(ref); i++ {
		if i > 0 && (i-head)%5 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(ref[i])
	}
	return sb.String()
}

func FormatCreditorReference(ref string) string {
	return groupFromLeft(strings.ToUpper(removeWhitespace(ref)), 4)
}

// FormattedReference renders the reference the way it is printed on the slip.
func (b *Bill) FormattedReference() string {
	switch b.ReferenceType {
	case ReferenceQR:
		return FormatQRReference(b.Reference)
	case ReferenceCreditor:
		return FormatCreditorReference(b.Reference)
	default:
		return b.Reference
	}
}
