package testutils

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bidding/internal/auth"
	"bidding/models"
)

// WithChiURLParams injects path parameters into the chi request context for
// handler tests.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for k, v := range params {
		chiCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// WithPrincipal injects an authenticated principal, bypassing the JWT
// middleware in handler tests.
func WithPrincipal(req *http.Request, p models.Principal) *http.Request {
	return req.WithContext(auth.WithPrincipal(req.Context(), p))
}
