package bill

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	minAmount = decimal.Zero
	maxAmount = decimal.RequireFromString("999999999.99")
)

// FormatAmountForCode renders an amount for the QR payload, e.g. "1949.75".
func FormatAmountForCode(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatAmountForDisplay renders an amount for the slip, e.g. "1 949.75".
func FormatAmountForDisplay(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var sb strings.Builder
	head := len(intPart) % 3
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (i-head)%3 == 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(intPart[i])
	}
	return sign + sb.String() + "." + frac
}
