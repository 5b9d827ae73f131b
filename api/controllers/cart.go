package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/customization"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

const maxInstructionsLen = 500

type cartResponse struct {
	Items     []cart.LineItem `json:"items"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type cartLineResponse struct {
	Line cart.LineItem `json:"line"`
	Cart cartResponse  `json:"cart"`
}

type addCartItemRequest struct {
	ItemID       string   `json:"item_id" validate:"required"`
	Size         string   `json:"size"`
	Addons       []string `json:"addons"`
	Quantity     int      `json:"quantity"`
	Instructions string   `json:"instructions" validate:"max=500"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func newCartResponse(c *cart.Store) cartResponse {
	return cartResponse{
		Items:     c.Items(),
		ItemCount: c.TotalItems(),
		Subtotal:  c.TotalPrice(),
	}
}

// GetCart returns the visitor's lines, item count and subtotal.
func GetCart(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var resp cartResponse
		_ = visitor.Do(func(c *cart.Store, _ *customization.Session) error {
			resp = newCartResponse(c)
			return nil
		})
		responses.WriteSuccess(w, resp)
	}
}

// AddCartItem configures and commits an item in one request. The price is always
// derived from the catalog; size and add-on names are checked against the item.
func AddCartItem(provider catalog.Provider, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}
		if body.Quantity < 0 {
			responses.WriteError(r.Context(), logg, w, cart.InvalidQuantity(body.Quantity))
			return
		}

		item, err := provider.GetItem(r.Context(), strings.TrimSpace(body.ItemID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		staged, err := stageItem(item, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var resp cartLineResponse
		err = visitor.Do(func(c *cart.Store, _ *customization.Session) error {
			line, err := staged.Commit(c)
			if err != nil {
				return err
			}
			resp = cartLineResponse{Line: line, Cart: newCartResponse(c)}
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncCartOp("add")
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// stageItem runs the request through a throwaway customization session so the
// one-shot path and the staged path price and validate identically.
func stageItem(item catalog.Item, body addCartItemRequest) (*customization.Session, error) {
	s := customization.NewSession()
	s.Select(item)
	if size := strings.TrimSpace(body.Size); size != "" {
		if err := s.SetSize(size); err != nil {
			return nil, err
		}
	}
	for _, addon := range cart.NormalizeAddons(body.Addons) {
		if err := s.ToggleAddon(addon); err != nil {
			return nil, err
		}
	}
	if err := s.SetQuantity(body.Quantity); err != nil {
		return nil, err
	}
	if err := s.SetInstructions(validators.SanitizeString(body.Instructions, maxInstructionsLen)); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func UpdateCartItem(m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID := chi.URLParam(r, "lineId")
		var resp cartResponse
		err = visitor.Do(func(c *cart.Store, _ *customization.Session) error {
			if _, ok := c.Get(lineID); !ok {
				return lineNotFound(lineID)
			}
			c.UpdateQuantity(lineID, *body.Quantity)
			resp = newCartResponse(c)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncCartOp("update")
		responses.WriteSuccess(w, resp)
	}
}

func RemoveCartItem(m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineID := chi.URLParam(r, "lineId")
		var resp cartResponse
		err = visitor.Do(func(c *cart.Store, _ *customization.Session) error {
			if _, ok := c.Get(lineID); !ok {
				return lineNotFound(lineID)
			}
			c.RemoveItem(lineID)
			resp = newCartResponse(c)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncCartOp("remove")
		responses.WriteSuccess(w, resp)
	}
}

func ClearCart(m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var resp cartResponse
		_ = visitor.Do(func(c *cart.Store, _ *customization.Session) error {
			c.Clear()
			resp = newCartResponse(c)
			return nil
		})

		m.IncCartOp("clear")
		responses.WriteSuccess(w, resp)
	}
}

func lineNotFound(lineID string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found").WithDetails(map[string]any{"line_id": lineID})
}
