package rules

import (
	"time"

	"bidding/models"
)

const (
	DenyNotSupplier          DenyReason = "only suppliers may participate"
	DenyBiddingNotOngoing    DenyReason = "bidding is not accepting proposals"
	DenyDeadlinePassed       DenyReason = "submission deadline has passed"
	DenyAlreadyParticipating DenyReason = "supplier already submitted a proposal"
	DenyNotInvited           DenyReason = "supplier is not on the invitation list"
)

// CanParticipate decides whether a supplier may submit a proposal against a
// bidding at the given instant. A nil deadline means no expiry. Resubmission
// is not eligibility; an existing participation always denies here.
func CanParticipate(b models.BiddingRecord, p models.Principal, now time.Time) Decision {
	if p.Role != models.RoleSupplier {
		return deny(DenyNotSupplier)
	}
	if b.Status != models.StatusOngoing {
		return deny(DenyBiddingNotOngoing)
	}
	if b.Deadline != nil && now.After(*b.Deadline) {
		return deny(DenyDeadlinePassed)
	}
	for _, part := range b.Participations {
		if part.SupplierID == p.SupplierID {
			return deny(DenyAlreadyParticipating)
		}
	}
	if b.Method == models.MethodFixedPrice && !invited(b.InvitedSupplierIDs, p.SupplierID) {
		return deny(DenyNotInvited)
	}
	return allow()
}

func invited(ids []string, supplierID string) bool {
	for _, id := range ids {
		if id == supplierID {
			return true
		}
	}
	return false
}
