package rules

import (
	"testing"

	"bidding/models"
)

var allActions = []models.Action{
	models.ActionCreate,
	models.ActionEdit,
	models.ActionDelete,
	models.ActionChangeStatus,
	models.ActionSelectWinner,
	models.ActionCreateContract,
	models.ActionCreateOrder,
	models.ActionEvaluate,
	models.ActionParticipate,
}

func TestAuthorizeAdminAllowsEverything(t *testing.T) {
	admin := models.Principal{Role: models.RoleAdmin}
	for _, action := range allActions {
		for _, status := range allStatuses {
			if d := Authorize(admin, action, status); !d.Allowed {
				t.Errorf("Authorize(admin, %s, %s) denied: %s", action, status, d.Reason)
			}
		}
	}
}

func TestAuthorizeRoleMismatch(t *testing.T) {
	supplier := models.Principal{Role: models.RoleSupplier, RankHint: 7}
	d := Authorize(supplier, models.ActionEdit, models.StatusPending)
	if d.Allowed {
		t.Fatal("supplier must not pass buyer authorization")
	}
	if d.Reason != DenyRoleMismatch {
		t.Errorf("reason = %q, want %q", d.Reason, DenyRoleMismatch)
	}
}

func TestAuthorizeManagerRankAllowsEverything(t *testing.T) {
	// Rank resolved from the display name, as the identity layer often
	// only carries a name with an embedded title.
	manager := models.Principal{Role: models.RoleBuyer, DisplayName: "구매팀 과장1"}
	for _, action := range allActions {
		if d := Authorize(manager, action, models.StatusPending); !d.Allowed {
			t.Errorf("Authorize(manager, %s, PENDING) denied: %s", action, d.Reason)
		}
	}
}

func TestAuthorizeLowRankRules(t *testing.T) {
	staff := models.Principal{Role: models.RoleBuyer, RankHint: RankStaff}
	assistant := models.Principal{Role: models.RolePurchase, RankHint: RankAssistantManager}

	tests := []struct {
		name      string
		principal models.Principal
		action    models.Action
		status    models.BiddingStatus
		allowed   bool
		reason    DenyReason
	}{
		{"create allowed for any buyer rank", staff, models.ActionCreate, models.StatusPending, true, DenyNone},
		{"staff cannot edit", staff, models.ActionEdit, models.StatusPending, false, DenyRankTooLow},
		{"assistant edits pending", assistant, models.ActionEdit, models.StatusPending, true, DenyNone},
		{"assistant cannot edit ongoing", assistant, models.ActionEdit, models.StatusOngoing, false, DenyWrongStatus},
		{"assistant deletes pending", assistant, models.ActionDelete, models.StatusPending, true, DenyNone},
		{"assistant changes status", assistant, models.ActionChangeStatus, models.StatusPending, true, DenyNone},
		{"staff cannot change status", staff, models.ActionChangeStatus, models.StatusPending, false, DenyRankTooLow},
		{"assistant cannot select winner", assistant, models.ActionSelectWinner, models.StatusClosed, false, DenyRankTooLow},
		{"assistant cannot create contract", assistant, models.ActionCreateContract, models.StatusClosed, false, DenyRankTooLow},
		{"assistant cannot create order", assistant, models.ActionCreateOrder, models.StatusClosed, false, DenyRankTooLow},
		{"assistant cannot evaluate", assistant, models.ActionEvaluate, models.StatusClosed, false, DenyRankTooLow},
		{"unknown action denied", assistant, models.Action("archive"), models.StatusPending, false, DenyUnknownAction},
		{"participate is not a buyer action", assistant, models.ActionParticipate, models.StatusOngoing, false, DenyUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Authorize(tt.principal, tt.action, tt.status)
			if d.Allowed != tt.allowed {
				t.Fatalf("Allowed = %v, want %v (reason %q)", d.Allowed, tt.allowed, d.Reason)
			}
			if d.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.reason)
			}
		})
	}
}

func TestStatusChangeRequiresBothChecks(t *testing.T) {
	manager := models.Principal{Role: models.RoleBuyer, TitleText: "부장"}

	// Authorized, but the transition itself is invalid: the caller must be
	// able to tell these apart.
	if d := Authorize(manager, models.ActionChangeStatus, models.StatusClosed); !d.Allowed {
		t.Fatalf("manager should be authorized: %s", d.Reason)
	}
	if IsValidTransition(models.StatusClosed, models.StatusOngoing) {
		t.Fatal("CLOSED -> ONGOING must be rejected by the transition table")
	}
}
