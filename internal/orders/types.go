package orders

import (
	"time"

	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Customer is the contact information attached to an order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Line is the order-facing copy of a cart line.
type Line struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Size         string          `json:"size,omitempty"`
	Addons       []string        `json:"addons,omitempty"`
	Instructions string          `json:"instructions,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// Totals mirrors the checkout summary amounts.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// Request is what the storefront hands to an Acceptor. Payment card data never
// travels past checkout; only the last four digits are kept for the receipt.
type Request struct {
	Customer  Customer              `json:"customer"`
	Mode      enums.FulfillmentMode `json:"order_type"`
	Lines     []Line                `json:"items"`
	Totals    Totals                `json:"totals"`
	CardLast4 string                `json:"card_last4,omitempty"`
}

// Result is the collaborator's answer. Success=false is a rejection.
type Result struct {
	Success       bool   `json:"success"`
	OrderID       string `json:"order_id"`
	EstimatedTime string `json:"estimated_time"`
	Message       string `json:"message"`
}

// Record is an accepted order kept in the mock history.
type Record struct {
	OrderID       string                `json:"order_id"`
	EstimatedTime string                `json:"estimated_time"`
	Customer      Customer              `json:"customer"`
	Mode          enums.FulfillmentMode `json:"order_type"`
	Lines         []Line                `json:"items"`
	Totals        Totals                `json:"totals"`
	CardLast4     string                `json:"card_last4,omitempty"`
	PlacedAt      time.Time             `json:"placed_at"`
}
