package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount in Brazilian real notation.
// Example: 1234.5 returns "R$ 1.234,50", -99.9 returns "R$ -99,90".
func FormatBRL(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	negative := rounded.IsNegative()
	plain := rounded.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(plain, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if negative {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

// FormatWithPrecision formats an amount rounded to the given number of
// decimal places.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}
