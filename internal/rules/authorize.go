package rules

import "bidding/models"

// DenyReason identifies which rule rejected a request, so callers can
// render a precise message instead of a generic "forbidden".
type DenyReason string

const (
	DenyNone          DenyReason = ""
	DenyRoleMismatch  DenyReason = "role is not permitted to perform buyer actions"
	DenyRankTooLow    DenyReason = "organizational rank is too low for this action"
	DenyWrongStatus   DenyReason = "bidding status does not permit this action"
	DenyUnknownAction DenyReason = "unrecognized action"
)

// Decision is the outcome of an authorization or eligibility check.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision            { return Decision{Allowed: true} }
func deny(r DenyReason) Decision { return Decision{Allowed: false, Reason: r} }

// Authorize decides whether a principal may perform a lifecycle action on a
// bidding in the given status. Rules are evaluated in order, first match
// wins:
//
//  1. ADMIN is allowed unconditionally.
//  2. Non-buyer roles are denied.
//  3. Rank >= manager is allowed unconditionally.
//  4. Per-action rules for lower ranks.
//  5. Unknown actions are denied.
//
// A status change additionally has to pass IsValidTransition; the two
// checks are deliberately independent so callers can tell an authorization
// failure from an invalid transition.
func Authorize(p models.Principal, action models.Action, status models.BiddingStatus) Decision {
	if p.Role == models.RoleAdmin {
		return allow()
	}
	if !p.Role.BuyerSide() {
		return deny(DenyRoleMismatch)
	}

	rank := ResolveRank(p)
	if rank >= RankManager {
		return allow()
	}

	switch action {
	case models.ActionCreate:
		return allow()
	case models.ActionEdit, models.ActionDelete:
		if status != models.StatusPending {
			return deny(DenyWrongStatus)
		}
		if rank < RankAssistantManager {
			return deny(DenyRankTooLow)
		}
		return allow()
	case models.ActionChangeStatus:
		if rank < RankAssistantManager {
			return deny(DenyRankTooLow)
		}
		return allow()
	case models.ActionSelectWinner, models.ActionCreateContract,
		models.ActionCreateOrder, models.ActionEvaluate:
		// Only reachable via rule 3; below manager rank these are denied.
		return deny(DenyRankTooLow)
	default:
		return deny(DenyUnknownAction)
	}
}
