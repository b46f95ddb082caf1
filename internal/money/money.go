// Package money formats peso amounts for receipts and API responses.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const symbol = "₱"

// Format renders an amount as localized currency text, e.g. ₱1,234.56.
// Negative amounts keep the sign in front of the symbol.
func Format(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed
	fracPart := "00"
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	writeGrouped(&b, intPart)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

func writeGrouped(b *strings.Builder, digits string) {
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
}
