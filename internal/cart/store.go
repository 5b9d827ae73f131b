// Package cart owns the in-memory line items of one visitor's cart.
package cart

import (
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Store holds line items in insertion order. It is not safe for concurrent use;
// callers serialize access per visitor.
type Store struct {
	lines []LineItem
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides how new line ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewStore builds an empty cart.
func NewStore(opts ...Option) *Store {
	s := &Store{newID: func() string { return uuid.NewString() }}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InvalidQuantity is returned when a line is added with a quantity below one.
func InvalidQuantity(quantity int) error {
	return pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1").
		WithDetails(map[string]any{"quantity": quantity})
}

// AddItem merges line into an existing line with the same merge key, or inserts it
// under a freshly generated id. On merge only the quantity changes; the existing
// unit price and instructions are kept. The returned value is the resulting line.
func (s *Store) AddItem(line LineItem) (LineItem, error) {
	if line.Quantity < 1 {
		return LineItem{}, InvalidQuantity(line.Quantity)
	}
	line.SelectedAddons = NormalizeAddons(line.SelectedAddons)

	key := line.MergeKey()
	for i := range s.lines {
		if s.lines[i].MergeKey() == key {
			s.lines[i].Quantity += line.Quantity
			return s.lines[i].clone(), nil
		}
	}

	line.ID = s.newID()
	s.lines = append(s.lines, line)
	return line.clone(), nil
}

// RemoveItem deletes the line with the given id. Unknown ids are ignored.
func (s *Store) RemoveItem(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
}

// UpdateQuantity overwrites a line's quantity, removing the line when quantity <= 0.
// Unknown ids are ignored.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}
	if idx := s.indexOf(id); idx >= 0 {
		s.lines[idx].Quantity = quantity
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
}

// Get returns a copy of the line with the given id.
func (s *Store) Get(id string) (LineItem, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return LineItem{}, false
	}
	return s.lines[idx].clone(), true
}

// Items returns a snapshot of the lines in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.lines))
	for i, line := range s.lines {
		out[i] = line.clone()
	}
	return out
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// TotalItems is the sum of quantities across lines.
func (s *Store) TotalItems() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of line totals.
func (s *Store) TotalPrice() decimal.Decimal {
	return SumLines(s.lines)
}

// SumLines adds up the line totals of lines.
func SumLines(lines []LineItem) decimal.Decimal {
	total := money.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

func (s *Store) indexOf(id string) int {
	for i := range s.lines {
		if s.lines[i].ID == id {
			return i
		}
	}
	return -1
}
