// Package sessions holds per-visitor storefront state in memory.
package sessions

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/google/uuid"
)

const defaultTTL = 2 * time.Hour

type entry struct {
	visitor  *Visitor
	lastSeen time.Time
}

// Registry maps visitor ids to their state and evicts idle visitors.
type Registry struct {
	mu       sync.Mutex
	visitors map[string]*entry
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
	cartOpts []cart.Option
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock overrides time.Now for last-seen bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithVisitorIDGenerator overrides how visitor ids are minted.
func WithVisitorIDGenerator(fn func() string) Option {
	return func(r *Registry) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// WithCartOptions is applied to every new visitor's cart.
func WithCartOptions(opts ...cart.Option) Option {
	return func(r *Registry) {
		r.cartOpts = append(r.cartOpts, opts...)
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(r *Registry) {
		if logg != nil {
			r.logg = logg
		}
	}
}

func WithMetrics(m *metrics.StorefrontMetrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// NewRegistry builds an empty registry.
func NewRegistry(cfg config.SessionsConfig, opts ...Option) *Registry {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	r := &Registry{
		visitors: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
		logg:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns the visitor for id, creating it when id is empty or unknown.
// Client-supplied ids that are not UUIDs are replaced with a fresh one. The bool
// reports whether a new visitor was created.
func (r *Registry) Acquire(id string) (*Visitor, bool) {
	id = strings.TrimSpace(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.visitors[id]; ok && id != "" {
		e.lastSeen = now
		return e.visitor, false
	}
	if _, err := uuid.Parse(id); err != nil {
		id = r.newID()
	}
	v := newVisitor(id, r.cartOpts...)
	r.visitors[id] = &entry{visitor: v, lastSeen: now}
	r.metrics.SetVisitors(len(r.visitors))
	return v, true
}

// Get returns an existing visitor without creating one.
func (r *Registry) Get(id string) (*Visitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.visitors[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.visitor, true
}

// Len is the number of live visitors.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Sweep evicts visitors idle for longer than the TTL. Visitors with an order in
// flight are kept. It returns the number evicted.
func (r *Registry) Sweep(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl)
	evicted := 0
	for id, e := range r.visitors {
		if e.lastSeen.After(cutoff) || e.visitor.Submitting() {
			continue
		}
		delete(r.visitors, id)
		evicted++
	}
	r.metrics.SetVisitors(len(r.visitors))
	if evicted > 0 {
		r.logg.Info(r.logg.WithFields(ctx, map[string]any{
			"evicted":   evicted,
			"remaining": len(r.visitors),
		}), "sessions.swept")
	}
	return evicted
}
