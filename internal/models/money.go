package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts are plain signed decimals. There is a single implicit currency, so
// unlike bank statement amounts they carry no currency code.

// ParseAmount parses a decimal amount such as "12.50" or "-3".
// Surrounding whitespace is ignored; anything else that is not a decimal
// number is rejected.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	amount := strings.TrimSpace(amountStr)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': empty", amountStr)
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", amountStr, err)
	}
	return dec, nil
}

// MustParseAmount is ParseAmount for literals known to be valid.
func MustParseAmount(amountStr string) decimal.Decimal {
	dec, err := ParseAmount(amountStr)
	if err != nil {
		panic(err)
	}
	return dec
}

// PositivePart returns max(0, d).
func PositivePart(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders an amount with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
