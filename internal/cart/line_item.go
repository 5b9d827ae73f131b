package cart

import (
	"sort"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// LineItem is one row of the cart. UnitPrice is fixed at commit time; changing the
// size or add-ons of a line means removing it and adding a new one.
type LineItem struct {
	ID                  string          `json:"id"`
	Item                catalog.Item    `json:"item"`
	Quantity            int             `json:"quantity"`
	SelectedSize        string          `json:"selected_size,omitempty"`
	SelectedAddons      []string        `json:"selected_addons"`
	SpecialInstructions string          `json:"special_instructions,omitempty"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
}

// LineTotal is UnitPrice × Quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// MergeKey identifies lines that must merge rather than duplicate: item id, size and
// the add-on set. Add-on order does not matter and instructions do not participate.
func (l LineItem) MergeKey() string {
	return MergeKey(l.Item.ID, l.SelectedSize, l.SelectedAddons)
}

// MergeKey builds the canonical key for an (item, size, add-ons) selection.
func MergeKey(itemID, size string, addons []string) string {
	normalized := NormalizeAddons(addons)
	quoted := make([]string, len(normalized))
	for i, name := range normalized {
		quoted[i] = strconv.Quote(name)
	}
	return strconv.Quote(itemID) + "|" + strconv.Quote(size) + "|" + strings.Join(quoted, ",")
}

// NormalizeAddons returns a sorted copy of addons with duplicates removed.
func NormalizeAddons(addons []string) []string {
	out := make([]string, 0, len(addons))
	seen := make(map[string]struct{}, len(addons))
	for _, name := range addons {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (l LineItem) clone() LineItem {
	l.SelectedAddons = append([]string(nil), l.SelectedAddons...)
	if l.SelectedAddons == nil {
		l.SelectedAddons = []string{}
	}
	return l
}
