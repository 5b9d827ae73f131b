package catalog

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks the item invariants: non-negative prices and unique option names
// per item. Every violation is reported, not only the first.
func Validate(categories []Category, items []Item) error {
	var err error

	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c.ID == "" {
			err = multierr.Append(err, fmt.Errorf("category %q has empty id", c.Name))
			continue
		}
		if _, dup := known[c.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("duplicate category id %q", c.ID))
		}
		known[c.ID] = struct{}{}
	}

	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ID == "" {
			err = multierr.Append(err, fmt.Errorf("item %q has empty id", item.Name))
			continue
		}
		if _, dup := ids[item.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("duplicate item id %q", item.ID))
		}
		ids[item.ID] = struct{}{}

		if item.BasePrice.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("item %q: base price must be non-negative", item.ID))
		}
		if _, ok := known[item.Category]; !ok {
			err = multierr.Append(err, fmt.Errorf("item %q: unknown category %q", item.ID, item.Category))
		}
		err = multierr.Append(err, validateOptions(item.ID, "size", item.Sizes()))
		err = multierr.Append(err, validateOptions(item.ID, "add-on", item.Addons()))
	}
	return err
}

func validateOptions(itemID, kind string, options []Option) error {
	var err error
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt.Name == "" {
			err = multierr.Append(err, fmt.Errorf("item %q: %s with empty name", itemID, kind))
			continue
		}
		if _, dup := seen[opt.Name]; dup {
			err = multierr.Append(err, fmt.Errorf("item %q: duplicate %s %q", itemID, kind, opt.Name))
		}
		seen[opt.Name] = struct{}{}
		if opt.Price.IsNegative() {
			err = multierr.Append(err, fmt.Errorf("item %q: %s %q has negative price", itemID, kind, opt.Name))
		}
	}
	return err
}
