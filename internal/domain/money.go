package domain

import (
	"github.com/shopspring/decimal"
)

// SafeParse parses a decimal string, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SafeParsePtr parses an optional decimal string, treating nil as zero.
func SafeParsePtr(value *string) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return SafeParse(*value)
}

// ParseKnown parses an optional decimal string where nil means "unknown"
// rather than zero. It returns false for nil or unparseable input.
func ParseKnown(value *string) (decimal.Decimal, bool) {
	if value == nil {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(*value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
