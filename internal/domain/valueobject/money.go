package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney converts a display-formatted money string to a decimal.
// It tolerates the mess real exports contain: surrounding whitespace,
// currency symbols, thousands separators, and accounting-style
// parenthesized negatives, in any mix within one column.
//
//	"$1,234.00"  -> 1234.00
//	"(200.00)"   -> -200.00
//	" 1 250,"    -> error (not a number after cleaning)
//
// An empty or whitespace-only value parses as zero, matching the blank
// debit/credit cells of single-sided journal rows.
func ParseMoney(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+':
			b.WriteRune(r)
		case r == ',', r == ' ', r == '\t':
			// thousands separators and stray spacing
		case r == '$' || r == '£' || r == '€' || r == '¥':
			// currency symbols
		default:
			return decimal.Zero, fmt.Errorf("cannot parse money value %q: unexpected character %q", raw, r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("cannot parse money value %q: nothing left after cleaning", raw)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot parse money value %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
