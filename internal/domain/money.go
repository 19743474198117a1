package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice reads a backend price string such as "29.90". Negative or
// non-numeric values fail with ErrInvalidPrice.
func ParsePrice(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidPrice)
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, raw)
	}

	return amount, nil
}

// FormatBRL renders an amount as "R$ 39,89".
func FormatBRL(amount decimal.Decimal) string {
	return "R$ " + strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

// PriceLabel formats a raw price for display, falling back to the raw text
// when it cannot be parsed.
func PriceLabel(raw string) string {
	amount, err := ParsePrice(raw)
	if err != nil {
		return fmt.Sprintf("R$ %s", strings.TrimSpace(raw))
	}
	return FormatBRL(amount)
}
