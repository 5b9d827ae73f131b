package sessions

import (
	"sync"
	"sync/atomic"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/customization"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Visitor owns one shopper's cart and customization session. All access goes
// through Do or Cart so requests for the same visitor are serialized.
type Visitor struct {
	ID string

	mu            sync.Mutex
	cart          *cart.Store
	customization *customization.Session
	submitting    atomic.Bool
}

func newVisitor(id string, opts ...cart.Option) *Visitor {
	return &Visitor{
		ID:            id,
		cart:          cart.NewStore(opts...),
		customization: customization.NewSession(),
	}
}

// Do runs fn with exclusive access to the visitor's state.
func (v *Visitor) Do(fn func(c *cart.Store, s *customization.Session) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fn(v.cart, v.customization)
}

// Cart returns a view whose calls each take the visitor lock. The lock is not held
// between calls, so the cart stays usable while an order is in flight.
func (v *Visitor) Cart() *LockedCart {
	return &LockedCart{v: v}
}

// BeginSubmission marks an order submission as in flight. The returned func ends
// it. A second concurrent submission is refused with CONFLICT.
func (v *Visitor) BeginSubmission() (func(), error) {
	if !v.submitting.CompareAndSwap(false, true) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "an order submission is already in progress")
	}
	return func() { v.submitting.Store(false) }, nil
}

// Submitting reports whether an order submission is in flight.
func (v *Visitor) Submitting() bool {
	return v.submitting.Load()
}

// LockedCart adapts a visitor's cart to callers that must not hold the lock across
// a blocking call.
type LockedCart struct {
	v *Visitor
}

func (c *LockedCart) Items() []cart.LineItem {
	c.v.mu.Lock()
	defer c.v.mu.Unlock()
	return c.v.cart.Items()
}

func (c *LockedCart) Clear() {
	c.v.mu.Lock()
	defer c.v.mu.Unlock()
	c.v.cart.Clear()
}
