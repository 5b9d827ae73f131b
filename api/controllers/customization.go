package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/customization"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

type selectItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

type setSizeRequest struct {
	Size string `json:"size" validate:"required"`
}

type setQuantityRequest struct {
	Quantity *int   `json:"quantity"`
	Step     string `json:"step" validate:"omitempty,oneof=increment decrement"`
}

type setInstructionsRequest struct {
	Instructions string `json:"instructions" validate:"max=500"`
}

type commitResponse struct {
	Line          cart.LineItem          `json:"line"`
	Cart          cartResponse           `json:"cart"`
	Customization customization.Snapshot `json:"customization"`
}

// sessionStep runs one mutation against the visitor's customization session and
// writes the resulting snapshot.
func sessionStep(w http.ResponseWriter, r *http.Request, logg *logger.Logger, step func(s *customization.Session) error) {
	visitor, err := visitorFromRequest(r)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}

	var snap customization.Snapshot
	err = visitor.Do(func(_ *cart.Store, s *customization.Session) error {
		if err := step(s); err != nil {
			return err
		}
		snap = s.Snapshot()
		return nil
	})
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, snap)
}

func GetCustomization(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionStep(w, r, logg, func(*customization.Session) error { return nil })
	}
}

// SelectItem opens the customization session for a catalog item, replacing any
// selection in progress.
func SelectItem(provider catalog.Provider, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var body selectItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := provider.GetItem(r.Context(), strings.TrimSpace(body.ItemID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionStep(w, r, logg, func(s *customization.Session) error {
			s.Select(item)
			return nil
		})
	}
}

func CancelCustomization(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionStep(w, r, logg, func(s *customization.Session) error {
			s.Cancel()
			return nil
		})
	}
}

func SetCustomizationSize(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body setSizeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		sessionStep(w, r, logg, func(s *customization.Session) error {
			return s.SetSize(strings.TrimSpace(body.Size))
		})
	}
}

// SetCustomizationQuantity accepts either an absolute quantity or a step of
// "increment" or "decrement".
func SetCustomizationQuantity(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body setQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if body.Quantity == nil && body.Step == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity or step is required"))
			return
		}

		sessionStep(w, r, logg, func(s *customization.Session) error {
			switch body.Step {
			case "increment":
				return s.Increment()
			case "decrement":
				return s.Decrement()
			}
			return s.SetQuantity(*body.Quantity)
		})
	}
}

func SetCustomizationInstructions(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body setInstructionsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		text := validators.SanitizeString(body.Instructions, maxInstructionsLen)
		sessionStep(w, r, logg, func(s *customization.Session) error {
			return s.SetInstructions(text)
		})
	}
}

func ToggleCustomizationAddon(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if decoded, err := url.PathUnescape(name); err == nil {
			name = decoded
		}
		name = strings.TrimSpace(name)
		if name == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "add-on name is required"))
			return
		}
		sessionStep(w, r, logg, func(s *customization.Session) error {
			return s.ToggleAddon(name)
		})
	}
}

// CommitCustomization adds the staged selection to the cart and resets the
// session. On failure the staged selection is kept.
func CommitCustomization(m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		visitor, err := visitorFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var resp commitResponse
		err = visitor.Do(func(c *cart.Store, s *customization.Session) error {
			line, err := s.Commit(c)
			if err != nil {
				return err
			}
			resp = commitResponse{
				Line:          line,
				Cart:          newCartResponse(c),
				Customization: s.Snapshot(),
			}
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
