package scoring

import (
	"errors"
	"testing"
	"time"
)

func TestScoreTopGrades(t *testing.T) {
	g := Grades{Price: 1, Quality: 1, Tech1: 1, Tech2: 1, Support: 1}

	got := Score(g)
	if got.TotalPoints != 100 {
		t.Errorf("TotalPoints = %d, want 100", got.TotalPoints)
	}
	if !got.IsComplete {
		t.Error("IsComplete = false, want true")
	}
}

func TestScoreDeterministic(t *testing.T) {
	g := Grades{Price: 2, Quality: 3, Tech1: 2, Tech2: 2, Support: 2}

	first := Score(g)
	second := Score(g)
	if first != second {
		t.Errorf("Score not deterministic: %+v vs %+v", first, second)
	}
	if want := 16 + 19 + 16 + 7 + 15; first.TotalPoints != want {
		t.Errorf("TotalPoints = %d, want %d", first.TotalPoints, want)
	}
}

func TestScoreIncomplete(t *testing.T) {
	// Four of five leaves graded: total accumulates but stays provisional.
	g := Grades{Price: 1, Quality: 1, Tech1: 1, Tech2: 1}

	got := Score(g)
	if got.IsComplete {
		t.Error("IsComplete = true with an ungraded leaf")
	}
	if got.TotalPoints != 80 {
		t.Errorf("TotalPoints = %d, want 80", got.TotalPoints)
	}
}

func TestScoreLowestPriceOnly(t *testing.T) {
	g := Grades{Price: 3}

	got := Score(g)
	if got.TotalPoints != 12 {
		t.Errorf("TotalPoints = %d, want 12", got.TotalPoints)
	}
	if got.IsComplete {
		t.Error("IsComplete = true, want false")
	}
}

func TestScoreOutOfRangeGradeTreatedAsUngraded(t *testing.T) {
	g := Grades{Price: 4, Quality: 1, Tech1: 1, Tech2: 1, Support: 1}

	got := Score(g)
	if got.IsComplete {
		t.Error("out-of-range grade must not count as graded")
	}
	if got.TotalPoints != 80 {
		t.Errorf("TotalPoints = %d, want 80", got.TotalPoints)
	}
}

func TestFivePointScale(t *testing.T) {
	tests := []struct {
		raw, max, want int
	}{
		{20, 20, 5},
		{16, 20, 4},
		{12, 20, 3},
		{30, 30, 5},
		{25, 30, 4}, // 4.17 rounds down
		{19, 30, 3},
		{7, 10, 4}, // 3.5 rounds half away from zero
		{15, 20, 4},
		{9, 20, 2}, // 2.25 rounds down
		{6, 30, 1},
	}
	for _, tt := range tests {
		if got := FivePointScale(tt.raw, tt.max); got != tt.want {
			t.Errorf("FivePointScale(%d, %d) = %d, want %d", tt.raw, tt.max, got, tt.want)
		}
	}
}

func TestBuildEvaluation(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g := Grades{Price: 2, Quality: 3, Tech1: 2, Tech2: 2, Support: 2}

	eval, err := BuildEvaluation("p1", g, now)
	if err != nil {
		t.Fatalf("BuildEvaluation() error = %v", err)
	}

	if eval.ParticipationID != "p1" {
		t.Errorf("ParticipationID = %q", eval.ParticipationID)
	}
	if eval.PriceGrade != 4 {
		t.Errorf("PriceGrade = %d, want 4", eval.PriceGrade)
	}
	if eval.QualityGrade != 3 {
		t.Errorf("QualityGrade = %d, want 3", eval.QualityGrade)
	}
	// tech1: 16/20 -> 4, tech2: 7/10 -> 3.5 -> 4, average 4.
	if eval.TechnicalGrade != 4 {
		t.Errorf("TechnicalGrade = %d, want 4", eval.TechnicalGrade)
	}
	if eval.SupportGrade != 4 {
		t.Errorf("SupportGrade = %d, want 4", eval.SupportGrade)
	}
	if want := 16 + 19 + 16 + 7 + 15; eval.TotalPoints != want {
		t.Errorf("TotalPoints = %d, want %d", eval.TotalPoints, want)
	}
	if !eval.EvaluatedAt.Equal(now) {
		t.Errorf("EvaluatedAt = %v, want %v", eval.EvaluatedAt, now)
	}
}

func TestBuildEvaluationTechnicalAverageRounding(t *testing.T) {
	// tech1 grade 3 -> 11/20 -> 2.75 -> 3; tech2 grade 1 -> 10/10 -> 5.
	// Average (3+5)/2 = 4.
	g := Grades{Price: 1, Quality: 1, Tech1: 3, Tech2: 1, Support: 1}

	eval, err := BuildEvaluation("p1", g, time.Now())
	if err != nil {
		t.Fatalf("BuildEvaluation() error = %v", err)
	}
	if eval.TechnicalGrade != 4 {
		t.Errorf("TechnicalGrade = %d, want 4", eval.TechnicalGrade)
	}
}

func TestBuildEvaluationIncomplete(t *testing.T) {
	g := Grades{Price: 1, Quality: 1, Tech1: 1, Support: 1}

	_, err := BuildEvaluation("p1", g, time.Now())
	if !errors.Is(err, ErrIncompleteGrades) {
		t.Errorf("error = %v, want ErrIncompleteGrades", err)
	}
}
