// Package pricing computes line item unit prices from catalog data.
package pricing

import (
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// ComputeUnitPrice returns base price + size delta + the sum of the add-on deltas.
// Unknown size or add-on names contribute nothing, and an add-on named more than
// once is charged once.
func ComputeUnitPrice(item catalog.Item, size string, addons []string) decimal.Decimal {
	price := item.BasePrice
	if size != "" {
		if opt, ok := item.Size(size); ok {
			price = price.Add(opt.Price)
		}
	}

	seen := make(map[string]struct{}, len(addons))
	for _, name := range addons {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if opt, ok := item.Addon(name); ok {
			price = price.Add(opt.Price)
		}
	}
	return price
}
