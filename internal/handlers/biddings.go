package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bidding/db"
	"bidding/internal/rules"
	"bidding/models"
)

type biddingInput struct {
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	Method             models.BiddingMethod `json:"method"`
	Deadline           *time.Time           `json:"deadline"`
	InvitedSupplierIDs []string             `json:"invitedSupplierIds"`
}

func validateBiddingInput(in *biddingInput) error {
	if in.Name == "" || len(in.Name) > 100 {
		return errors.New("name is required and max length 100")
	}
	if len(in.Description) > 500 {
		return errors.New("description max length 500")
	}
	if !models.ValidBiddingMethod(in.Method) {
		return errors.New("invalid method")
	}
	if in.Method == models.MethodFixedPrice && len(in.InvitedSupplierIDs) == 0 {
		return errors.New("FIXED_PRICE bidding requires at least one invited supplier")
	}
	if in.Method == models.MethodOpenPrice && len(in.InvitedSupplierIDs) > 0 {
		return errors.New("invitedSupplierIds is only valid for FIXED_PRICE")
	}
	return nil
}

// CreateBiddingHandler handles POST /api/biddings/new. New biddings always
// start in PENDING.
func (h *Handler) CreateBiddingHandler(w http.ResponseWriter, r *http.Request) {
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

	var input biddingInput
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if err := validateBiddingInput(&input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if d := rules.Authorize(p, models.ActionCreate, models.StatusPending); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}

	bidding := &models.BiddingRecord{
		Name:               input.Name,
		Description:        input.Description,
		Status:             models.StatusPending,
		Method:             input.Method,
		Deadline:           input.Deadline,
		OrganizationID:     p.OrganizationID,
		InvitedSupplierIDs: input.InvitedSupplierIDs,
	}
	if err := h.Store.CreateBidding(r.Context(), bidding); err != nil {
		http.Error(w, "Failed to create bidding", http.StatusInternalServerError)
		return
	}

	writeJSON(w, bidding)
}

// GetBiddingsHandler returns the bidding list with an optional status filter.
func (h *Handler) GetBiddingsHandler(w http.ResponseWriter, r *http.Request) {
	params := parsePaginationParams(r)

	status := models.BiddingStatus(r.URL.Query().Get("status"))
	if status != "" && !models.ValidBiddingStatus(status) {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	biddings, err := h.Store.GetBiddings(r.Context(), status, params.Limit, params.Offset)
	if err != nil {
		http.Error(w, "Failed to get biddings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, biddings)
}

// GetBiddingHandler returns one bidding with its participations.
func (h *Handler) GetBiddingHandler(w http.ResponseWriter, r *http.Request) {
	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}
	writeJSON(w, bidding)
}

// EditBiddingHandler handles PATCH /api/biddings/{biddingId}/edit.
func (h *Handler) EditBiddingHandler(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		Name               *string    `json:"name"`
		Description        *string    `json:"description"`
		Deadline           *time.Time `json:"deadline"`
		InvitedSupplierIDs []string   `json:"invitedSupplierIds"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if d := rules.Authorize(p, models.ActionEdit, bidding.Status); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}

	if input.Name != nil {
		if len(*input.Name) == 0 || len(*input.Name) > 100 {
			http.Error(w, "Invalid name length", http.StatusBadRequest)
			return
		}
		bidding.Name = *input.Name
	}
	if input.Description != nil {
		if len(*input.Description) > 500 {
			http.Error(w, "Invalid description length", http.StatusBadRequest)
			return
		}
		bidding.Description = *input.Description
	}
	if input.Deadline != nil {
		bidding.Deadline = input.Deadline
	}
	if input.InvitedSupplierIDs != nil {
		if bidding.Method != models.MethodFixedPrice {
			http.Error(w, "invitedSupplierIds is only valid for FIXED_PRICE", http.StatusBadRequest)
			return
		}
		bidding.InvitedSupplierIDs = input.InvitedSupplierIDs
	}

	if err := h.Store.UpdateBidding(r.Context(), bidding); err != nil {
		http.Error(w, "Failed to update bidding", http.StatusInternalServerError)
		return
	}

	writeJSON(w, bidding)
}

// DeleteBiddingHandler handles DELETE /api/biddings/{biddingId}. Biddings
// are only deletable while PENDING; from ONGOING on they can only be
// canceled through the status route.
func (h *Handler) DeleteBiddingHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if bidding.Status != models.StatusPending {
		http.Error(w, "Only PENDING biddings can be deleted", http.StatusBadRequest)
		return
	}
	if d := rules.Authorize(p, models.ActionDelete, bidding.Status); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}

	if err := h.Store.DeleteBidding(r.Context(), bidding.ID); err != nil {
		http.Error(w, "Failed to delete bidding", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangeBiddingStatusHandler handles PUT /api/biddings/{biddingId}/status.
// Authorization and transition validity are checked independently so the
// caller always learns which one failed.
func (h *Handler) ChangeBiddingStatusHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	newStatus := models.BiddingStatus(r.URL.Query().Get("status"))
	if !models.ValidBiddingStatus(newStatus) {
		http.Error(w, "Invalid status value", http.StatusBadRequest)
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if d := rules.Authorize(p, models.ActionChangeStatus, bidding.Status); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}
	if !rules.IsValidTransition(bidding.Status, newStatus) {
		http.Error(w, "Invalid status transition", http.StatusBadRequest)
		return
	}

	expectedVersion := bidding.Version
	if versionStr := r.URL.Query().Get("version"); versionStr != "" {
		v, err := strconv.Atoi(versionStr)
		if err != nil || v < 1 {
			http.Error(w, "Invalid version", http.StatusBadRequest)
			return
		}
		expectedVersion = v
	}

	err := h.Store.UpdateBiddingStatus(r.Context(), bidding.ID, newStatus, expectedVersion)
	if errors.Is(err, db.ErrVersionConflict) {
		http.Error(w, "Bidding was modified concurrently", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update status", http.StatusInternalServerError)
		return
	}

	bidding.Status = newStatus
	bidding.Version = expectedVersion + 1
	writeJSON(w, bidding)
}

// SelectWinnerHandler handles PUT /api/biddings/{biddingId}/select-winner.
// Selection happens on a CLOSED bidding and must reference one of its own
// participations.
func (h *Handler) SelectWinnerHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	participationID := r.URL.Query().Get("participationId")
	if participationID == "" {
		http.Error(w, "Missing participationId", http.StatusBadRequest)
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if d := rules.Authorize(p, models.ActionSelectWinner, bidding.Status); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}
	if bidding.Status != models.StatusClosed {
		http.Error(w, "Winner can only be selected on a CLOSED bidding", http.StatusBadRequest)
		return
	}

	found := false
	for _, part := range bidding.Participations {
		if part.ID == participationID {
			found = true
			break
		}
	}
	if !found {
		http.Error(w, "Participation does not belong to this bidding", http.StatusBadRequest)
		return
	}

	if err := h.Store.SelectWinner(r.Context(), bidding.ID, participationID); err != nil {
		http.Error(w, "Failed to select winner", http.StatusInternalServerError)
		return
	}

	bidding.SelectedParticipationID = &participationID
	writeJSON(w, bidding)
}

// CreateContractHandler handles POST /api/biddings/{biddingId}/contract.
func (h *Handler) CreateContractHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if d := rules.Authorize(p, models.ActionCreateContract, bidding.Status); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}
	if bidding.SelectedParticipationID == nil {
		http.Error(w, "No bidder has been selected", http.StatusBadRequest)
		return
	}
	if bidding.HasContract {
		http.Error(w, "Contract already exists", http.StatusConflict)
		return
	}

	contract := &db.Contract{BiddingID: bidding.ID}
	if err := h.Store.CreateContract(r.Context(), contract); err != nil {
		http.Error(w, "Failed to create contract", http.StatusInternalServerError)
		return
	}

	writeJSON(w, contract)
}

// CreateOrderHandler handles POST /api/biddings/{biddingId}/order.
func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}

	if d := rules.Authorize(p, models.ActionCreateOrder, bidding.Status); !d.Allowed {
		http.Error(w, string(d.Reason), http.StatusForbidden)
		return
	}
	if !bidding.HasContract {
		http.Error(w, "Order requires an existing contract", http.StatusBadRequest)
		return
	}
	if bidding.HasOrder {
		http.Error(w, "Order already exists", http.StatusConflict)
		return
	}

	order := &db.Order{BiddingID: bidding.ID}
	if err := h.Store.CreateOrder(r.Context(), order); err != nil {
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, order)
}

// GetBiddingSummaryHandler handles GET /api/biddings/{biddingId}/summary.
func (h *Handler) GetBiddingSummaryHandler(w http.ResponseWriter, r *http.Request) {
	bidding, ok := h.loadBidding(w, r)
	if !ok {
		return
	}
	writeJSON(w, rules.Summarize(*bidding))
}

func (h *Handler) loadBidding(w http.ResponseWriter, r *http.Request) (*models.BiddingRecord, bool) {
	biddingID := chi.URLParam(r, "biddingId")
	if biddingID == "" {
		http.Error(w, "Missing biddingId", http.StatusBadRequest)
		return nil, false
	}
	bidding, err := h.Store.GetBidding(r.Context(), biddingID)
	if err != nil {
		http.Error(w, "Bidding not found", http.StatusNotFound)
		return nil, false
	}
	return bidding, true
}
