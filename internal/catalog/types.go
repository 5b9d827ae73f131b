package catalog

import (
	"github.com/shopspring/decimal"
)

// Category groups menu items for browsing.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Option is a named size variant or add-on with its price delta.
type Option struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Customizations lists the sizes (ordered, first is the default) and add-ons an item offers.
type Customizations struct {
	Sizes  []Option `json:"sizes,omitempty"`
	Addons []Option `json:"addons,omitempty"`
}

// Item is an orderable menu entry. Items are immutable once published.
type Item struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	BasePrice      decimal.Decimal `json:"price"`
	Image          string          `json:"image,omitempty"`
	Category       string          `json:"category"`
	Popular        bool            `json:"popular,omitempty"`
	Customizations *Customizations `json:"customizations,omitempty"`
}

// Sizes returns the declared size variants, or nil.
func (i Item) Sizes() []Option {
	if i.Customizations == nil {
		return nil
	}
	return i.Customizations.Sizes
}

// Addons returns the declared add-ons, or nil.
func (i Item) Addons() []Option {
	if i.Customizations == nil {
		return nil
	}
	return i.Customizations.Addons
}

// DefaultSize is the first declared size, or "" when the item has none.
func (i Item) DefaultSize() string {
	sizes := i.Sizes()
	if len(sizes) == 0 {
		return ""
	}
	return sizes[0].Name
}

// Size looks up a declared size variant by name.
func (i Item) Size(name string) (Option, bool) {
	return findOption(i.Sizes(), name)
}

// Addon looks up a declared add-on by name.
func (i Item) Addon(name string) (Option, bool) {
	return findOption(i.Addons(), name)
}

func findOption(options []Option, name string) (Option, bool) {
	for _, opt := range options {
		if opt.Name == name {
			return opt, true
		}
	}
	return Option{}, false
}
