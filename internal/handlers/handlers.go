package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bidding/internal/auth"
	"bidding/models"
)

// Handler wraps the storage layer behind the lifecycle rule checks.
type Handler struct {
	Store StorageInterface
}

// NewHandler creates a new Handler.
func NewHandler(store StorageInterface) *Handler {
	return &Handler{Store: store}
}

// PingHandler answers "ok" for liveness checks.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type PaginationParams struct {
	Limit  int
	Offset int
}

// parsePaginationParams parses limit and offset from the query, with
// defaults and caps.
func parsePaginationParams(r *http.Request) PaginationParams {
	params := PaginationParams{Limit: 5, Offset: 0}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 50 {
			params.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			params.Offset = o
		}
	}
	return params
}

// requirePrincipal pulls the authenticated principal out of the request
// context. Writes 401 and returns false when it is missing.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (models.Principal, bool) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing authentication", http.StatusUnauthorized)
		return models.Principal{}, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
