package middleware

import (
	"net/http"

	"github.com/angelmondragon/storefront/internal/sessions"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// SessionHeader carries the visitor id between the front-end and the API.
const SessionHeader = "X-Session-Id"

// Session resolves the visitor for the request, minting one when the header is
// missing or unknown, and echoes the effective id back on the response.
func Session(registry *sessions.Registry, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitor, created := registry.Acquire(r.Header.Get(SessionHeader))
			w.Header().Set(SessionHeader, visitor.ID)

			ctx := WithVisitor(r.Context(), visitor)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, visitor.ID)
				if created {
					logg.Debug(ctx, "session.created")
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
