// Package orders hands completed checkouts to the order-acceptance collaborator.
package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Acceptor accepts or rejects an order. Implementations must honour ctx.
type Acceptor interface {
	Accept(ctx context.Context, req Request) (*Result, error)
}

// History exposes recently accepted orders.
type History interface {
	Recent(n int) []Record
}

const (
	defaultHistorySize = 50
	acceptedMessage    = "Order placed successfully!"
	rejectedMessage    = "Failed to place order. Please try again."
)

// MockAcceptor simulates the remote order service: it waits a fixed delay, mints an
// ORD-<unix millis> id and remembers what it accepted.
type MockAcceptor struct {
	cfg     config.OrdersConfig
	logg    *logger.Logger
	now     func() time.Time
	mu      sync.Mutex
	history []Record
	lastID  int64
}

// MockOption customizes a MockAcceptor.
type MockOption func(*MockAcceptor)

// WithClock replaces time.Now, used for ids and timestamps.
func WithClock(now func() time.Time) MockOption {
	return func(m *MockAcceptor) {
		if now != nil {
			m.now = now
		}
	}
}

// NewMockAcceptor builds the mock collaborator from orders configuration.
func NewMockAcceptor(cfg config.OrdersConfig, logg *logger.Logger, opts ...MockOption) *MockAcceptor {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = defaultHistorySize
	}
	if logg == nil {
		logg = logger.Nop()
	}
	m := &MockAcceptor{cfg: cfg, logg: logg, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *MockAcceptor) Accept(ctx context.Context, req Request) (*Result, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	if m.cfg.Fail {
		m.logg.Warn(ctx, "orders.mock.rejected")
		return &Result{Success: false, Message: rejectedMessage}, nil
	}

	placedAt := m.now()
	record := Record{
		OrderID:       m.nextID(placedAt),
		EstimatedTime: m.eta(req.Mode),
		Customer:      req.Customer,
		Mode:          req.Mode,
		Lines:         append([]Line(nil), req.Lines...),
		Totals:        req.Totals,
		CardLast4:     req.CardLast4,
		PlacedAt:      placedAt.UTC(),
	}
	m.remember(record)

	ctx = m.logg.WithFields(ctx, map[string]any{
		"order_id": record.OrderID,
		"mode":     record.Mode.String(),
		"total":    record.Totals.Total.StringFixed(2),
	})
	m.logg.Info(ctx, "orders.mock.accepted")

	return &Result{
		Success:       true,
		OrderID:       record.OrderID,
		EstimatedTime: record.EstimatedTime,
		Message:       acceptedMessage,
	}, nil
}

// Recent returns up to n accepted orders, newest first. n <= 0 returns all retained.
func (m *MockAcceptor) Recent(n int) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || n > len(m.history) {
		n = len(m.history)
	}
	out := make([]Record, 0, n)
	for i := len(m.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.history[i])
	}
	return out
}

func (m *MockAcceptor) wait(ctx context.Context) error {
	if m.cfg.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.cfg.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *MockAcceptor) eta(mode enums.FulfillmentMode) string {
	if mode == enums.FulfillmentDelivery && m.cfg.DeliveryETA != "" {
		return m.cfg.DeliveryETA
	}
	return m.cfg.PickupETA
}

// nextID keeps ids unique when two orders land in the same millisecond.
func (m *MockAcceptor) nextID(at time.Time) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	millis := at.UnixMilli()
	if millis <= m.lastID {
		millis = m.lastID + 1
	}
	m.lastID = millis
	return fmt.Sprintf("ORD-%d", millis)
}

func (m *MockAcceptor) remember(record Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, record)
	if over := len(m.history) - m.cfg.HistorySize; over > 0 {
		m.history = append([]Record(nil), m.history[over:]...)
	}
}
