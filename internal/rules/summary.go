package rules

import "bidding/models"

// Summarize derives the read-only lifecycle snapshot for a bidding.
// The evaluated milestone requires at least one participation; an empty
// list would otherwise light it before any proposal exists.
func Summarize(b models.BiddingRecord) models.ProcessSummary {
	evaluated := len(b.Participations) > 0
	for _, p := range b.Participations {
		if p.Evaluation == nil {
			evaluated = false
			break
		}
	}

	return models.ProcessSummary{
		Created:         true,
		Ongoing:         b.Status == models.StatusOngoing || b.Status == models.StatusClosed,
		Closed:          b.Status == models.StatusClosed,
		Evaluated:       evaluated,
		BidderSelected:  b.SelectedParticipationID != nil,
		ContractCreated: b.HasContract,
		OrderCreated:    b.HasOrder,
	}
}
