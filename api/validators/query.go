package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseFulfillmentQuery reads a pickup/delivery choice; absent means pickup.
func ParseFulfillmentQuery(r *http.Request, key string) (enums.FulfillmentMode, error) {
	mode, err := enums.ParseFulfillmentMode(r.URL.Query().Get(key))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid fulfillment mode").WithDetails(map[string]any{"field": key, "allowed": []string{"pickup", "delivery"}})
	}
	return mode, nil
}
