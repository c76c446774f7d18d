package points

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zombor/receipt-processor/internal/receipt"
)

var (
	hundred      = decimal.NewFromInt(100)
	quarterCents = decimal.NewFromInt(25)
	fifth        = decimal.New(2, -1)

	// ceil(price * 0.2) must fit an int
	maxAmount = decimal.New(1, 15)
)

var (
	errEmptyAmount    = errors.New("empty amount")
	errNegativeAmount = errors.New("negative amount")
)

// parseAmount parses plain decimal notation such as "35.35", "9", "+.25".
// decimal.NewFromString also takes exponents, which a receipt amount never
// uses, so the text is checked first.
func parseAmount(a receipt.Amount) (decimal.Decimal, error) {
	s := strings.TrimSpace(a.String())
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Decimal{}, errEmptyAmount
	}
	if s[0] == '-' {
		return decimal.Decimal{}, errNegativeAmount
	}
	if !plainDecimal(s) {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return decimal.Decimal{}, fmt.Errorf("amount %q is too large", s)
	}
	return d, nil
}

// plainDecimal reports whether s is digits with at most one '.'.
func plainDecimal(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
