// Package money parses and formats Chilean peso (CLP) amounts.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount indicates the input is not a recognizable amount.
var ErrInvalidAmount = errors.New("invalid amount")

// groupedThousands matches "1.234.567": dots used only as thousands separators.
var groupedThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)

// amountChars is what may remain once the sign and currency symbol are gone.
var amountChars = regexp.MustCompile(`^[\d.,]+$`)

// ParseCLP reads an amount as typed in forms or sent by the backend:
// "1234567", "1234567.50", "1.234.567", "$ 1.234.567" or "1.234.567,50".
func ParseCLP(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "$")
	v = strings.ReplaceAll(v, " ", "")
	if v == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}

	negative := strings.HasPrefix(v, "-")
	digits := strings.TrimPrefix(v, "-")
	digits = strings.TrimPrefix(digits, "$")
	if !amountChars.MatchString(digits) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	switch {
	case strings.Contains(digits, ","):
		digits = strings.ReplaceAll(digits, ".", "")
		digits = strings.Replace(digits, ",", ".", 1)
	case groupedThousands.MatchString(digits):
		digits = strings.ReplaceAll(digits, ".", "")
	}

	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// FormatCLP renders d in whole pesos with '.' thousands separators, e.g.
// "$1.234.567" and "-$1.234". Fractions round half away from zero.
func FormatCLP(d decimal.Decimal) string {
	rounded := d.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "$" + groupThousands(rounded.String())
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
