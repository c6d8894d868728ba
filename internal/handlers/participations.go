package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"bidding/internal/rules"
	"bidding/internal/scoring"
	"bidding/models"
)

// SubmitParticipationHandler handles POST
// /api/biddings/{biddingId}/participations. Supplier submissions are gated
// by the eligibility checker, never by the buyer authorization engine.
func (h *Handler) SubmitParticipationHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var input struct {
		UnitPrice decimal.Decimal `json:"unitPrice"`
		Quantity  int             `json:"quantity"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if input.UnitPrice.LessThanOrEqual(decimal.Zero) {
		http.Error(w, "unitPrice must be positive", http.StatusBadRequest)
		return
	}
	if input.Quantity <= 0 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if d := rules.CanParticipate(*bidding, p, time.Now()); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}

	participation := &models.Participation{
		BiddingID:  bidding.ID,
		SupplierID: p.SupplierID,
		UnitPrice:  input.UnitPrice,
		Quantity:   input.Quantity,
	}
	if err := h.Store.CreateParticipation(r.Context(), participation); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// The unique (bidding_id, supplier_id) index caught a race
			// the eligibility check could not see.
			http.Error(w, string(rules.DenyAlreadyParticipating), http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create participation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, participation)
}

// EvaluateParticipationHandler handles PUT
// /api/biddings/{biddingId}/participations/{participationId}/evaluation.
// Incomplete grade sets are rejected; a complete re-evaluation overwrites
// the stored evaluation.
func (h *Handler) EvaluateParticipationHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Cannot read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var grades scoring.Grades
	if err := json.Unmarshal(body, &grades); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if d := rules.Authorize(p, models.ActionEvaluate, bidding.Status); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}

	participationID := chi.URLParam(r, "participationId")
	found := false
	for _, part := range bidding.Participations {
		if part.ID == participationID {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "Participation not found", http.StatusNotFound)
		return
	}

	evaluation, err := scoring.BuildEvaluation(participationID, grades, time.Now())
	if errors.Is(err, scoring.ErrIncompleteGrades) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Failed to score evaluation", http.StatusInternalServerError)
		return
	}

	if err := h.Store.SaveEvaluation(r.Context(), &evaluation); err != nil {
		http.Error(w, "Failed to save evaluation", http.StatusInternalServerError)
		return
	}

	writeJSON(w, evaluation)
}

// ScorePreviewHandler handles POST /api/evaluations/score. It runs the
// rubric over a (possibly partial) grade set without persisting anything,
// so evaluators can see running totals while grading.
func (h *Handler) ScorePreviewHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Cannot read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var grades scoring.Grades
	if err := json.Unmarshal(body, &grades); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	writeJSON(w, scoring.Score(grades))
}
