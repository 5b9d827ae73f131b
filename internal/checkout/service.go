package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/orders"
	pkgcheckout "github.com/angelmondragon/storefront/pkg/checkout"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const defaultSubmitTimeout = 10 * time.Second

// Cart is the view of a visitor's cart that checkout needs. Implementations may
// guard each call with a lock; no lock is expected to be held between calls.
type Cart interface {
	Items() []cart.LineItem
	Clear()
}

// SubmitInput carries both checkout steps and the fulfillment choice.
type SubmitInput struct {
	Customer pkgcheckout.CustomerDetails
	Payment  pkgcheckout.PaymentDetails
	Mode     enums.FulfillmentMode
}

// Confirmation is returned once the order collaborator accepts an order.
type Confirmation struct {
	OrderID       string                `json:"order_id"`
	EstimatedTime string                `json:"estimated_time"`
	Message       string                `json:"message"`
	Mode          enums.FulfillmentMode `json:"order_type"`
	Totals        Totals                `json:"totals"`
}

// Service computes summaries and submits orders.
type Service interface {
	Summary(lines []cart.LineItem, mode enums.FulfillmentMode) Totals
	SubmitOrder(ctx context.Context, c Cart, input SubmitInput) (*Confirmation, error)
}

// Options configures the checkout service.
type Options struct {
	Acceptor orders.Acceptor
	Rates    Rates
	Timeout  time.Duration
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
}

type service struct {
	acceptor orders.Acceptor
	rates    Rates
	timeout  time.Duration
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
}

// NewService builds the checkout service.
func NewService(opts Options) (Service, error) {
	if opts.Acceptor == nil {
		return nil, fmt.Errorf("order acceptor required")
	}
	if opts.Rates.TaxRate.IsNegative() || opts.Rates.DeliveryFee.IsNegative() {
		return nil, fmt.Errorf("checkout rates must be non-negative")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultSubmitTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &service{
		acceptor: opts.Acceptor,
		rates:    opts.Rates,
		timeout:  opts.Timeout,
		logg:     opts.Logger,
		metrics:  opts.Metrics,
	}, nil
}

func (s *service) Summary(lines []cart.LineItem, mode enums.FulfillmentMode) Totals {
	return ComputeTotals(lines, mode, s.rates)
}

// SubmitOrder validates the details, hands a snapshot of the cart to the order
// collaborator and clears the cart only once the order is accepted. Any failure
// leaves the cart as it was.
func (s *service) SubmitOrder(ctx context.Context, c Cart, input SubmitInput) (*Confirmation, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart required")
	}
	mode := input.Mode
	if mode == "" {
		mode = enums.FulfillmentPickup
	}
	if !mode.IsValid() {
		s.metrics.IncOrder(metrics.OutcomeInvalid)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid fulfillment mode").
			WithDetails(map[string]string{"order_type": "must be pickup or delivery"})
	}
	if err := pkgcheckout.ValidateDetails(input.Customer, input.Payment); err != nil {
		s.metrics.IncOrder(metrics.OutcomeInvalid)
		return nil, err
	}

	lines := c.Items()
	if len(lines) == 0 {
		s.metrics.IncOrder(metrics.OutcomeInvalid)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	totals := ComputeTotals(lines, mode, s.rates)
	customer := input.Customer.Normalize()
	req := orders.Request{
		Customer: orders.Customer{
			Name:  customer.Name,
			Email: customer.Email,
			Phone: customer.Phone,
		},
		Mode:      mode,
		Lines:     toOrderLines(lines),
		Totals:    orders.Totals(totals),
		CardLast4: pkgcheckout.CardLast4(input.Payment.CardNumber),
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"mode":  mode.String(),
		"lines": len(lines),
		"total": totals.Total.StringFixed(2),
	})

	res, err := s.accept(ctx, req)
	if err != nil {
		s.metrics.IncOrder(metrics.OutcomeRejected)
		s.logg.Error(ctx, "checkout.failed", err)
		return nil, err
	}

	c.Clear()
	s.metrics.IncOrder(metrics.OutcomeAccepted)
	s.logg.Info(s.logg.WithField(ctx, "order_id", res.OrderID), "checkout.submitted")

	return &Confirmation{
		OrderID:       res.OrderID,
		EstimatedTime: res.EstimatedTime,
		Message:       res.Message,
		Mode:          mode,
		Totals:        totals,
	}, nil
}

func (s *service) accept(ctx context.Context, req orders.Request) (*orders.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	res, err := s.acceptor.Accept(ctx, req)
	s.metrics.ObserveSubmission(time.Since(started))

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return nil, pkgerrors.Wrap(pkgerrors.CodeSubmissionFailed, err, "order submission timed out")
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeSubmissionFailed, err, "order submission failed")
	case res == nil || !res.Success:
		msg := "order rejected"
		if res != nil && res.Message != "" {
			msg = res.Message
		}
		return nil, pkgerrors.New(pkgerrors.CodeSubmissionFailed, msg)
	}
	return res, nil
}

func toOrderLines(lines []cart.LineItem) []orders.Line {
	out := make([]orders.Line, len(lines))
	for i, line := range lines {
		out[i] = orders.Line{
			ItemID:       line.Item.ID,
			Name:         line.Item.Name,
			Quantity:     line.Quantity,
			Size:         line.SelectedSize,
			Addons:       line.SelectedAddons,
			Instructions: line.SpecialInstructions,
			UnitPrice:    line.UnitPrice,
			LineTotal:    line.LineTotal(),
		}
	}
	return out
}
