package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a transfer amount as typed by the user. A leading "$"
// and thousands separators are accepted. Zero and negative values are
// rejected since they would reverse or cancel the transfer, and so are
// fractions of a cent, which no balance can hold.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrMalformedAmount)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q is not positive", ErrMalformedAmount, raw)
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than two decimal places", ErrMalformedAmount, raw)
	}
	return amount, nil
}

// FormatUSD renders a value with exactly two decimals; negative values keep
// their sign after the currency symbol ("$-250.40").
func FormatUSD(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}
