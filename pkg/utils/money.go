package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatVND 越南盾格式：千分位用 "."，小数部分用 ","
// 例如 75000 -> "75.000"，1234.5 -> "1.234,5"
func FormatVND(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	places := int32(0)
	if amount.Exponent() < 0 {
		places = -amount.Exponent()
	}
	s := amount.Abs().StringFixed(places)

	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if fracPart != "" {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}
