package rules

import "bidding/models"

// transitions is the fixed status graph. CLOSED and CANCELED have no
// outgoing edges; a bidding never regresses and never skips ONGOING.
var transitions = map[models.BiddingStatus][]models.BiddingStatus{
	models.StatusPending:  {models.StatusOngoing, models.StatusCanceled},
	models.StatusOngoing:  {models.StatusClosed, models.StatusCanceled},
	models.StatusClosed:   {},
	models.StatusCanceled: {},
}

// IsValidTransition reports whether a bidding may move from one status to
// another. Pure lookup; terminal states reject everything, including
// self-transitions.
func IsValidTransition(from, to models.BiddingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transitions exist.
func IsTerminalStatus(s models.BiddingStatus) bool {
	return len(transitions[s]) == 0 && models.ValidBiddingStatus(s)
}
