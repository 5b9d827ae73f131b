// Package money holds the decimal conventions shared by pricing, cart and checkout.
package money

import "github.com/shopspring/decimal"

// Places is the number of fractional digits amounts are rounded to.
const Places = 2

// Zero is the zero amount.
var Zero = decimal.Zero

// MustParse parses a literal amount and panics on malformed input. Intended for
// static catalog data.
func MustParse(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// Round rounds to cents, half away from zero.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// Format renders an amount with exactly two decimals.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(Places)
}

// Sum adds amounts.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
