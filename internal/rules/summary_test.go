package rules

import (
	"testing"

	"bidding/models"
)

func TestSummarizeClosedEvaluatedSelected(t *testing.T) {
	selected := "p1"
	b := models.BiddingRecord{
		Status: models.StatusClosed,
		Participations: []models.Participation{
			{ID: "p1", Evaluation: &models.Evaluation{ParticipationID: "p1"}},
			{ID: "p2", Evaluation: &models.Evaluation{ParticipationID: "p2"}},
		},
		SelectedParticipationID: &selected,
	}

	got := Summarize(b)
	want := models.ProcessSummary{
		Created:        true,
		Ongoing:        true,
		Closed:         true,
		Evaluated:      true,
		BidderSelected: true,
	}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarizePartiallyEvaluated(t *testing.T) {
	b := models.BiddingRecord{
		Status: models.StatusOngoing,
		Participations: []models.Participation{
			{ID: "p1", Evaluation: &models.Evaluation{}},
			{ID: "p2"},
		},
	}

	got := Summarize(b)
	if got.Evaluated {
		t.Error("Evaluated must be false while a participation lacks an evaluation")
	}
	if !got.Ongoing || got.Closed {
		t.Errorf("milestones = %+v", got)
	}
}

func TestSummarizeFreshBidding(t *testing.T) {
	b := models.BiddingRecord{Status: models.StatusPending}

	got := Summarize(b)
	want := models.ProcessSummary{Created: true}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
}

func TestSummarizeContractAndOrderPassThrough(t *testing.T) {
	selected := "p1"
	b := models.BiddingRecord{
		Status:                  models.StatusClosed,
		Participations:          []models.Participation{{ID: "p1", Evaluation: &models.Evaluation{}}},
		SelectedParticipationID: &selected,
		HasContract:             true,
		HasOrder:                true,
	}

	got := Summarize(b)
	if !got.ContractCreated || !got.OrderCreated {
		t.Errorf("contract/order flags not passed through: %+v", got)
	}
}
