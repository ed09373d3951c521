package estimate

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}

// FormatPrice renders an amount with thousands separators, e.g. 1,500,000.
// Fractions are kept to two places and dropped when zero.
func FormatPrice(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	d = d.Abs()

	intPart := d.Truncate(0).String()
	frac := d.Sub(d.Truncate(0))

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if !frac.IsZero() {
		b.WriteString(strings.TrimPrefix(frac.StringFixed(2), "0"))
	}
	return b.String()
}

// CompactTitle strips whitespace from a title for use in file names.
func CompactTitle(title string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, title)
}
