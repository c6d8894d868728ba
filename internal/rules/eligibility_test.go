package rules

import (
	"testing"
	"time"

	"bidding/models"
)

func openBidding(deadline *time.Time) models.BiddingRecord {
	return models.BiddingRecord{
		ID:       "b1",
		Status:   models.StatusOngoing,
		Method:   models.MethodOpenPrice,
		Deadline: deadline,
	}
}

func TestCanParticipateDeadline(t *testing.T) {
	deadline := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := openBidding(&deadline)
	supplier := models.Principal{Role: models.RoleSupplier, SupplierID: "s1"}

	if d := CanParticipate(b, supplier, deadline.Add(-time.Second)); !d.Allowed {
		t.Errorf("just before deadline denied: %s", d.Reason)
	}
	if d := CanParticipate(b, supplier, deadline); !d.Allowed {
		t.Errorf("at deadline denied: %s", d.Reason)
	}
	if d := CanParticipate(b, supplier, deadline.Add(time.Second)); d.Allowed {
		t.Error("after deadline must be denied")
	} else if d.Reason != DenyDeadlinePassed {
		t.Errorf("reason = %q, want %q", d.Reason, DenyDeadlinePassed)
	}
}

func TestCanParticipateNoDeadlineMeansNoExpiry(t *testing.T) {
	b := openBidding(nil)
	supplier := models.Principal{Role: models.RoleSupplier, SupplierID: "s1"}

	farFuture := time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)
	if d := CanParticipate(b, supplier, farFuture); !d.Allowed {
		t.Errorf("nil deadline denied: %s", d.Reason)
	}
}

func TestCanParticipateChecks(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	supplier := models.Principal{Role: models.RoleSupplier, SupplierID: "s1"}

	tests := []struct {
		name      string
		bidding   models.BiddingRecord
		principal models.Principal
		allowed   bool
		reason    DenyReason
	}{
		{
			name:      "buyer cannot participate",
			bidding:   openBidding(nil),
			principal: models.Principal{Role: models.RoleBuyer},
			allowed:   false,
			reason:    DenyNotSupplier,
		},
		{
			name: "pending bidding not accepting",
			bidding: models.BiddingRecord{
				Status: models.StatusPending,
				Method: models.MethodOpenPrice,
			},
			principal: supplier,
			allowed:   false,
			reason:    DenyBiddingNotOngoing,
		},
		{
			name: "prior participation denies",
			bidding: models.BiddingRecord{
				Status:         models.StatusOngoing,
				Method:         models.MethodOpenPrice,
				Participations: []models.Participation{{SupplierID: "s1"}},
			},
			principal: supplier,
			allowed:   false,
			reason:    DenyAlreadyParticipating,
		},
		{
			name: "fixed price requires invitation",
			bidding: models.BiddingRecord{
				Status:             models.StatusOngoing,
				Method:             models.MethodFixedPrice,
				InvitedSupplierIDs: []string{"s2", "s3"},
			},
			principal: supplier,
			allowed:   false,
			reason:    DenyNotInvited,
		},
		{
			name: "invited supplier passes fixed price",
			bidding: models.BiddingRecord{
				Status:             models.StatusOngoing,
				Method:             models.MethodFixedPrice,
				InvitedSupplierIDs: []string{"s1", "s2"},
			},
			principal: supplier,
			allowed:   true,
		},
		{
			name:      "open price has no invitation restriction",
			bidding:   openBidding(nil),
			principal: supplier,
			allowed:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanParticipate(tt.bidding, tt.principal, now)
			if d.Allowed != tt.allowed {
				t.Fatalf("Allowed = %v, want %v (reason %q)", d.Allowed, tt.allowed, d.Reason)
			}
			if !tt.allowed && d.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", d.Reason, tt.reason)
			}
		})
	}
}
