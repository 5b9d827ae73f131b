package catalog

import (
	"context"
	"time"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Provider is the read-only catalog surface consumed by the storefront.
type Provider interface {
	ListCategories(ctx context.Context) ([]Category, error)
	// ListItems returns every item when categoryID is empty.
	ListItems(ctx context.Context, categoryID string) ([]Item, error)
	PopularItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id string) (Item, error)
}

// StaticProvider serves an in-memory menu, optionally simulating lookup latency.
type StaticProvider struct {
	categories []Category
	items      []Item
	byID       map[string]int
	latency    time.Duration
}

// NewStaticProvider validates the menu and indexes it by item id.
func NewStaticProvider(categories []Category, items []Item, latency time.Duration) (*StaticProvider, error) {
	if err := Validate(categories, items); err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(items))
	for i, item := range items {
		byID[item.ID] = i
	}
	return &StaticProvider{
		categories: append([]Category(nil), categories...),
		items:      append([]Item(nil), items...),
		byID:       byID,
		latency:    latency,
	}, nil
}

// NewDefaultProvider serves the published menu.
func NewDefaultProvider(latency time.Duration) (*StaticProvider, error) {
	return NewStaticProvider(DefaultCategories(), DefaultItems(), latency)
}

func (p *StaticProvider) ListCategories(ctx context.Context) ([]Category, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return append([]Category(nil), p.categories...), nil
}

func (p *StaticProvider) ListItems(ctx context.Context, categoryID string) ([]Item, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.filter(func(item Item) bool {
		return categoryID == "" || item.Category == categoryID
	}), nil
}

func (p *StaticProvider) PopularItems(ctx context.Context) ([]Item, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}
	return p.filter(func(item Item) bool { return item.Popular }), nil
}

func (p *StaticProvider) GetItem(ctx context.Context, id string) (Item, error) {
	if err := ctx.Err(); err != nil {
		return Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog lookup cancelled")
	}
	idx, ok := p.byID[id]
	if !ok {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found").WithDetails(map[string]any{"item_id": id})
	}
	return p.items[idx], nil
}

func (p *StaticProvider) filter(keep func(Item) bool) []Item {
	out := make([]Item, 0, len(p.items))
	for _, item := range p.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (p *StaticProvider) wait(ctx context.Context) error {
	if p.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(p.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "catalog lookup cancelled")
	case <-timer.C:
		return nil
	}
}
