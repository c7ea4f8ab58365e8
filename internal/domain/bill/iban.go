package bill

import (
	"strconv"
	"strings"
)

const swissIBANLength = 21

// NormalizeIBAN strips whitespace and upper-cases the account number.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(removeWhitespace(iban))
}

// ValidIBAN checks the ISO 13616 structure and the mod 97 checksum.
func ValidIBAN(iban string) bool {
	iban = NormalizeIBAN(iban)
	if len(iban) < 5 || !isAlphaNumeric(iban) {
		return false
	}
	if !isUpperLetter(iban[0]) || !isUpperLetter(iban[1]) || !isDigit(iban[2]) || !isDigit(iban[3]) {
		return false
	}
	return mod97(iban[4:]+iban[:4]) == 1
}

// IsQRIBAN reports whether the institution id falls in the QR-IID range 30000-31999.
func IsQRIBAN(iban string) bool {
	iban = NormalizeIBAN(iban)
	if len(iban) != swissIBANLength {
		return false
	}
	iid, err := strconv.Atoi(iban[4:9])
	if err != nil {
		return false
	}
	return iid >= 30000 && iid <= 31999
}

func FormatIBAN(iban string) string {
	return groupFromLeft(NormalizeIBAN(iban), 4)
}

// mod97 computes the ISO 7064 mod 97-10 remainder, mapping letters A-Z to 10-35.
func mod97(s string) int {
	rem := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isDigit(c):
			rem = (rem*10 + int(c-'0')) % 97
		case isUpperLetter(c):
			rem = (rem*100 + int(c-'A') + 10) % 97
		default:
			return -1
		}
	}
	return rem
}

func removeWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
}

func groupFromLeft(s string, size int) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if i > 0 && i%size == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isDigit(c byte) bool       { return c >= '0' && c <= '9' }
func isUpperLetter(c byte) bool { return c >= 'A' && c <= 'Z' }

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

func isAlphaNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) && !isUpperLetter(s[i]) {
			return false
		}
	}
	return s != ""
}
