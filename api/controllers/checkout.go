package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	checkoutsvc "github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/customization"
	pkgcheckout "github.com/angelmondragon/storefront/pkg/checkout"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Customer and payment fields are validated by the checkout service so that
// both steps report their field errors together.
type checkoutRequest struct {
	Customer    pkgcheckout.CustomerDetails `json:"customer" validate:"-"`
	Payment     pkgcheckout.PaymentDetails  `json:"payment" validate:"-"`
	Fulfillment string                      `json:"fulfillment"`
}

type summaryResponse struct {
	Fulfillment enums.FulfillmentMode `json:"fulfillment"`
	Items       []cart.LineItem       `json:"items"`
	ItemCount   int                   `json:"item_count"`
	Totals      checkoutsvc.Totals    `json:"totals"`
}

// CheckoutSummary prices the visitor's cart for the requested fulfillment mode.
func CheckoutSummary(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := validators.ParseFulfillmentQuery(r, "fulfillment")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp := summaryResponse{Fulfillment: mode}
		_ = visitor.Do(func(c *cart.Store, _ *customization.Session) error {
			resp.Items = c.Items()
			resp.ItemCount = c.TotalItems()
			return nil
		})
		resp.Totals = svc.Summary(resp.Items, mode)

		responses.WriteSuccess(w, resp)
	}
}

// Checkout submits the visitor's cart. The visitor lock is not held while the
// order collaborator runs; a second submission for the same visitor is refused.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParseFulfillmentMode(payload.Fulfillment)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fulfillment mode").WithDetails(map[string]any{
				"field":   "fulfillment",
				"allowed": []string{"pickup", "delivery"},
			}))
			return
		}

		done, err := visitor.BeginSubmission()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer done()

		confirmation, err := svc.SubmitOrder(r.Context(), visitor.Cart(), checkoutsvc.SubmitInput{
			Customer: payload.Customer,
			Payment:  payload.Payment,
			Mode:     mode,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, confirmation)
	}
}
