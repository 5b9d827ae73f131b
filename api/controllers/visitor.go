package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/sessions"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func visitorFromRequest(r *http.Request) (*sessions.Visitor, error) {
	v := middleware.VisitorFromContext(r.Context())
	if v == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "visitor session missing")
	}
	return v, nil
}
