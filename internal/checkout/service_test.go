package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/orders"
	pkgcheckout "github.com/angelmondragon/storefront/pkg/checkout"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubAcceptor struct {
	mu       sync.Mutex
	calls    []orders.Request
	result   *orders.Result
	err      error
	blocking bool
}

func (s *stubAcceptor) Accept(ctx context.Context, req orders.Request) (*orders.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.blocking {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &orders.Result{Success: true, OrderID: "ORD-1", EstimatedTime: "15-20 minutes", Message: "Order placed successfully!"}, nil
}

func (s *stubAcceptor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore()
	for _, line := range scenarioLines() {
		_, err := store.AddItem(line)
		require.NoError(t, err)
	}
	return store
}

func validInput(mode enums.FulfillmentMode) SubmitInput {
	return SubmitInput{
		Customer: pkgcheckout.CustomerDetails{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100"},
		Payment:  pkgcheckout.PaymentDetails{CardNumber: "4242 4242 4242 4242", ExpiryDate: "12/30", CVV: "123", CardName: "Ada Lovelace"},
		Mode:     mode,
	}
}

func newTestService(t *testing.T, acceptor orders.Acceptor, timeout time.Duration, m *metrics.StorefrontMetrics) Service {
	t.Helper()
	svc, err := NewService(Options{Acceptor: acceptor, Rates: DefaultRates(), Timeout: timeout, Metrics: m})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresAcceptor(t *testing.T) {
	_, err := NewService(Options{Rates: DefaultRates()})
	require.Error(t, err)
}

func TestSubmitOrderSuccessClearsCart(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(reg)
	acceptor := &stubAcceptor{}
	svc := newTestService(t, acceptor, time.Second, m)
	store := filledCart(t)

	conf, err := svc.SubmitOrder(context.Background(), store, validInput(enums.FulfillmentDelivery))
	require.NoError(t, err)

	assert.Equal(t, "ORD-1", conf.OrderID)
	assert.Equal(t, "15-20 minutes", conf.EstimatedTime)
	assert.Equal(t, "Order placed successfully!", conf.Message)
	assert.Equal(t, "41.77", money.Format(conf.Totals.Total))
	assert.Equal(t, 0, store.Len())

	require.Equal(t, 1, acceptor.callCount())
	req := acceptor.calls[0]
	assert.Equal(t, "4242", req.CardLast4)
	assert.Equal(t, enums.FulfillmentDelivery, req.Mode)
	assert.Equal(t, "34.98", money.Format(req.Lines[0].LineTotal))
	assert.Equal(t, "41.77", money.Format(req.Totals.Total))

	assert.Equal(t, 1.0, outcomeCount(t, reg, metrics.OutcomeAccepted))
}

func TestSubmitOrderValidationHappensFirst(t *testing.T) {
	acceptor := &stubAcceptor{}
	svc := newTestService(t, acceptor, time.Second, nil)
	store := filledCart(t)

	input := validInput(enums.FulfillmentPickup)
	input.Customer.Name = ""
	_, err := svc.SubmitOrder(context.Background(), store, input)

	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["customer.name"])
	assert.Equal(t, 0, acceptor.callCount())
	assert.Equal(t, 1, store.Len())
}

func TestSubmitOrderRejectsMissingPayment(t *testing.T) {
	acceptor := &stubAcceptor{}
	svc := newTestService(t, acceptor, time.Second, nil)

	input := validInput(enums.FulfillmentPickup)
	input.Payment = pkgcheckout.PaymentDetails{}
	_, err := svc.SubmitOrder(context.Background(), filledCart(t), input)

	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, 0, acceptor.callCount())
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	acceptor := &stubAcceptor{}
	svc := newTestService(t, acceptor, time.Second, nil)

	_, err := svc.SubmitOrder(context.Background(), cart.NewStore(), validInput(enums.FulfillmentPickup))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, 0, acceptor.callCount())
}

func TestSubmitOrderInvalidMode(t *testing.T) {
	acceptor := &stubAcceptor{}
	svc := newTestService(t, acceptor, time.Second, nil)

	_, err := svc.SubmitOrder(context.Background(), filledCart(t), validInput(enums.FulfillmentMode("drone")))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, 0, acceptor.callCount())
}

func TestSubmitOrderCollaboratorFailureKeepsCart(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewStorefrontMetrics(reg)
	acceptor := &stubAcceptor{err: errors.New("connection refused")}
	svc := newTestService(t, acceptor, time.Second, m)
	store := filledCart(t)
	before := ComputeTotals(store.Items(), enums.FulfillmentDelivery, DefaultRates())

	_, err := svc.SubmitOrder(context.Background(), store, validInput(enums.FulfillmentDelivery))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeSubmissionFailed))

	assert.Equal(t, 1, store.Len())
	after := ComputeTotals(store.Items(), enums.FulfillmentDelivery, DefaultRates())
	assert.Equal(t, before, after)
	assert.Equal(t, 1.0, outcomeCount(t, reg, metrics.OutcomeRejected))
}

func TestSubmitOrderRejectionKeepsCart(t *testing.T) {
	acceptor := &stubAcceptor{result: &orders.Result{Success: false, Message: "kitchen closed"}}
	svc := newTestService(t, acceptor, time.Second, nil)
	store := filledCart(t)

	_, err := svc.SubmitOrder(context.Background(), store, validInput(enums.FulfillmentPickup))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeSubmissionFailed))
	assert.Equal(t, "kitchen closed", pkgerrors.As(err).Message())
	assert.Equal(t, 1, store.Len())
}

func TestSubmitOrderTimeout(t *testing.T) {
	acceptor := &stubAcceptor{blocking: true}
	svc := newTestService(t, acceptor, 20*time.Millisecond, nil)
	store := filledCart(t)

	started := time.Now()
	_, err := svc.SubmitOrder(context.Background(), store, validInput(enums.FulfillmentPickup))
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeSubmissionFailed))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(started), 5*time.Second)
	assert.Equal(t, 1, store.Len())
}

func TestSubmitOrderRetryAfterFailure(t *testing.T) {
	acceptor := &stubAcceptor{err: errors.New("unavailable")}
	svc := newTestService(t, acceptor, time.Second, nil)
	store := filledCart(t)

	_, err := svc.SubmitOrder(context.Background(), store, validInput(enums.FulfillmentPickup))
	require.Error(t, err)

	acceptor.err = nil
	conf, err := svc.SubmitOrder(context.Background(), store, validInput(enums.FulfillmentPickup))
	require.NoError(t, err)
	assert.Equal(t, "37.78", money.Format(conf.Totals.Total))
	assert.Equal(t, 0, store.Len())
}

func TestSubmitOrderWithMockAcceptor(t *testing.T) {
	acceptor := orders.NewMockAcceptor(ordersConfigForTest(), nil)
	svc := newTestService(t, acceptor, time.Second, nil)
	store := filledCart(t)

	conf, err := svc.SubmitOrder(context.Background(), store, validInput(enums.FulfillmentDelivery))
	require.NoError(t, err)
	assert.Regexp(t, `^ORD-\d+$`, conf.OrderID)
	assert.Equal(t, "30-40 minutes", conf.EstimatedTime)

	recent := acceptor.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, conf.OrderID, recent[0].OrderID)
	assert.Equal(t, "4242", recent[0].CardLast4)
}

func outcomeCount(t *testing.T, reg *prometheus.Registry, outcome string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "storefront_order_submissions_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "outcome" && label.GetValue() == outcome {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func ordersConfigForTest() config.OrdersConfig {
	return config.OrdersConfig{PickupETA: "15-20 minutes", DeliveryETA: "30-40 minutes", HistorySize: 10}
}
