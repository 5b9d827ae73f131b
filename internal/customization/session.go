// Package customization stages size, add-on and quantity choices for one catalog
// item before they are committed to a cart.
package customization

import (
	"strings"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// State is the lifecycle position of a Session.
type State string

const (
	StateIdle        State = "idle"
	StateConfiguring State = "configuring"
)

// Adder receives committed lines. *cart.Store satisfies it.
type Adder interface {
	AddItem(line cart.LineItem) (cart.LineItem, error)
}

// Snapshot is a read-only view of the staged selection.
type Snapshot struct {
	State        State           `json:"state"`
	Item         *catalog.Item   `json:"item,omitempty"`
	Size         string          `json:"size,omitempty"`
	Addons       []string        `json:"addons"`
	Quantity     int             `json:"quantity"`
	Instructions string          `json:"instructions,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// Session is single-owner state; it performs no locking.
type Session struct {
	item         *catalog.Item
	size         string
	addons       map[string]struct{}
	quantity     int
	instructions string
	unitPrice    decimal.Decimal
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// State reports whether an item is being configured.
func (s *Session) State() State {
	if s.item == nil {
		return StateIdle
	}
	return StateConfiguring
}

// Select starts configuring item with its default size, no add-ons and a quantity
// of one. Any previously staged selection is discarded.
func (s *Session) Select(item catalog.Item) {
	s.item = &item
	s.size = item.DefaultSize()
	s.addons = make(map[string]struct{})
	s.quantity = 1
	s.instructions = ""
	s.reprice()
}

// SetSize stages a declared size.
func (s *Session) SetSize(name string) error {
	if err := s.requireConfiguring(); err != nil {
		return err
	}
	if _, ok := s.item.Size(name); !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown size").
			WithDetails(map[string]any{"size": name, "item_id": s.item.ID})
	}
	s.size = name
	s.reprice()
	return nil
}

// ToggleAddon adds the named add-on if absent and removes it if present.
func (s *Session) ToggleAddon(name string) error {
	if err := s.requireConfiguring(); err != nil {
		return err
	}
	if _, ok := s.item.Addon(name); !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown add-on").
			WithDetails(map[string]any{"addon": name, "item_id": s.item.ID})
	}
	if _, on := s.addons[name]; on {
		delete(s.addons, name)
	} else {
		s.addons[name] = struct{}{}
	}
	s.reprice()
	return nil
}

// SetQuantity stages n, floored at one.
func (s *Session) SetQuantity(n int) error {
	if err := s.requireConfiguring(); err != nil {
		return err
	}
	if n < 1 {
		n = 1
	}
	s.quantity = n
	return nil
}

func (s *Session) Increment() error {
	if err := s.requireConfiguring(); err != nil {
		return err
	}
	s.quantity++
	return nil
}

// Decrement is a no-op at a quantity of one.
func (s *Session) Decrement() error {
	if err := s.requireConfiguring(); err != nil {
		return err
	}
	if s.quantity > 1 {
		s.quantity--
	}
	return nil
}

func (s *Session) SetInstructions(text string) error {
	if err := s.requireConfiguring(); err != nil {
		return err
	}
	s.instructions = strings.TrimSpace(text)
	return nil
}

// UnitPrice is the pricing engine's value for the staged selection.
func (s *Session) UnitPrice() (decimal.Decimal, error) {
	if err := s.requireConfiguring(); err != nil {
		return decimal.Zero, err
	}
	return s.unitPrice, nil
}

// LineTotal is UnitPrice × the staged quantity.
func (s *Session) LineTotal() (decimal.Decimal, error) {
	if err := s.requireConfiguring(); err != nil {
		return decimal.Zero, err
	}
	return s.lineTotal(), nil
}

// Snapshot describes the current state; an idle session yields an empty snapshot.
func (s *Session) Snapshot() Snapshot {
	if s.item == nil {
		return Snapshot{State: StateIdle, Addons: []string{}, UnitPrice: decimal.Zero, LineTotal: decimal.Zero}
	}
	item := *s.item
	return Snapshot{
		State:        StateConfiguring,
		Item:         &item,
		Size:         s.size,
		Addons:       s.selectedAddons(),
		Quantity:     s.quantity,
		Instructions: s.instructions,
		UnitPrice:    s.unitPrice,
		LineTotal:    s.lineTotal(),
	}
}

// Commit hands the staged selection to adder and returns the session to idle. When
// adder rejects the line the session keeps its state so the caller can retry.
func (s *Session) Commit(adder Adder) (cart.LineItem, error) {
	if err := s.requireConfiguring(); err != nil {
		return cart.LineItem{}, err
	}
	if adder == nil {
		return cart.LineItem{}, pkgerrors.New(pkgerrors.CodeInternal, "cart required")
	}
	line, err := adder.AddItem(cart.LineItem{
		Item:                *s.item,
		Quantity:            s.quantity,
		SelectedSize:        s.size,
		SelectedAddons:      s.selectedAddons(),
		SpecialInstructions: s.instructions,
		UnitPrice:           s.unitPrice,
	})
	if err != nil {
		return cart.LineItem{}, err
	}
	s.Cancel()
	return line, nil
}

// Cancel discards the staged selection without touching any cart.
func (s *Session) Cancel() {
	*s = Session{}
}

func (s *Session) requireConfiguring() error {
	if s.item == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "no item is being customized")
	}
	return nil
}

func (s *Session) selectedAddons() []string {
	names := make([]string, 0, len(s.addons))
	for name := range s.addons {
		names = append(names, name)
	}
	return cart.NormalizeAddons(names)
}

func (s *Session) lineTotal() decimal.Decimal {
	return s.unitPrice.Mul(decimal.NewFromInt(int64(s.quantity)))
}

func (s *Session) reprice() {
	s.unitPrice = pricing.ComputeUnitPrice(*s.item, s.size, s.selectedAddons())
}
