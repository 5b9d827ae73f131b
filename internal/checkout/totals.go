package checkout

import (
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/shopspring/decimal"
)

// Totals is the order summary. Every amount is in cents precision.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Rates are the tax rate and flat delivery fee applied at checkout.
type Rates struct {
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

// DefaultRates is 8% tax and a 3.99 delivery fee.
func DefaultRates() Rates {
	return Rates{
		TaxRate:     decimal.RequireFromString("0.08"),
		DeliveryFee: decimal.RequireFromString("3.99"),
	}
}

// RatesFromConfig reads the checkout rates from configuration.
func RatesFromConfig(cfg config.CheckoutConfig) Rates {
	return Rates{TaxRate: cfg.TaxRate, DeliveryFee: cfg.DeliveryFee}
}

// ComputeTotals derives the summary for lines. Tax is rounded half away from zero
// to cents; the delivery fee only applies to delivery orders.
func ComputeTotals(lines []cart.LineItem, mode enums.FulfillmentMode, rates Rates) Totals {
	subtotal := money.Round(cart.SumLines(lines))
	tax := money.Round(subtotal.Mul(rates.TaxRate))
	fee := money.Zero
	if mode == enums.FulfillmentDelivery {
		fee = money.Round(rates.DeliveryFee)
	}
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       money.Sum(subtotal, tax, fee),
	}
}
