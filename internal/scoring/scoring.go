// Package scoring computes weighted rubric scores for supplier proposals.
//
// The rubric is a fixed tree with five leaf criteria whose weights sum to
// 100: price (20), quality (30), two technical-capability sub-criteria
// (20 + 10) and support capability (20). Each leaf has a small discrete
// grade set; grade levels map to point values through per-criterion lookup
// tables, not through an even spacing of the weight. The tables are
// constant data and must never change mid-process.
package scoring

import (
	"errors"
	"math"
	"time"

	"bidding/models"
)

// ErrIncompleteGrades is returned when an evaluation is built before every
// leaf criterion has a grade. Incomplete scores must never be persisted.
var ErrIncompleteGrades = errors.New("scoring: not all criteria have been graded")

// Grade levels are 1-based, 1 being the best. 0 means "not graded yet".
const Ungraded = 0

// Grades holds one grade level per leaf criterion.
type Grades struct {
	Price   int `json:"price"`
	Quality int `json:"quality"`
	Tech1   int `json:"tech1"` // technical strength: capability
	Tech2   int `json:"tech2"` // technical strength: track record
	Support int `json:"support"`
}

// Result is the outcome of scoring a (possibly partial) set of grades.
type Result struct {
	TotalPoints int  `json:"totalPoints"`
	IsComplete  bool `json:"isComplete"`
}

// Per-criterion grade -> point tables, best grade first. Values are
// deliberately non-linear; the top grade always yields the full weight.
var (
	pricePoints   = []int{20, 16, 12}
	qualityPoints = []int{30, 25, 19, 12, 6}
	tech1Points   = []int{20, 16, 11, 7, 3}
	tech2Points   = []int{10, 7, 4}
	supportPoints = []int{20, 15, 9}
)

// Criterion maxima, used for the 5-point-scale projection.
const (
	PriceMax   = 20
	QualityMax = 30
	Tech1Max   = 20
	Tech2Max   = 10
	SupportMax = 20
)

// Score sums the looked-up point values for every graded leaf. IsComplete
// is true only when all five leaves are graded; callers must treat an
// incomplete result as provisional. Grades outside a criterion's table are
// treated as ungraded rather than erroring.
func Score(g Grades) Result {
	total := 0
	complete := true
	for _, leaf := range []struct {
		grade  int
		points []int
	}{
		{g.Price, pricePoints},
		{g.Quality, qualityPoints},
		{g.Tech1, tech1Points},
		{g.Tech2, tech2Points},
		{g.Support, supportPoints},
	} {
		pts, ok := lookup(leaf.grade, leaf.points)
		if !ok {
			complete = false
			continue
		}
		total += pts
	}
	return Result{TotalPoints: total, IsComplete: complete}
}

func lookup(grade int, points []int) (int, bool) {
	if grade < 1 || grade > len(points) {
		return 0, false
	}
	return points[grade-1], true
}

// FivePointScale projects a criterion's raw points onto the common 1-5
// scale. Rounding is half away from zero; the source behavior was
// ambiguous here, so one direction is fixed and tested.
func FivePointScale(rawPoints, criterionMax int) int {
	return int(math.Round(float64(rawPoints) / float64(criterionMax) * 5))
}

// BuildEvaluation converts a complete grade set into the stored Evaluation.
// The two technical sub-scores are projected to the 5-point scale and
// averaged (round half away from zero) into the single technical grade.
// Rebuilding for the same participation overwrites the previous evaluation.
func BuildEvaluation(participationID string, g Grades, now time.Time) (models.Evaluation, error) {
	result := Score(g)
	if !result.IsComplete {
		return models.Evaluation{}, ErrIncompleteGrades
	}

	pricePts, _ := lookup(g.Price, pricePoints)
	qualityPts, _ := lookup(g.Quality, qualityPoints)
	tech1Pts, _ := lookup(g.Tech1, tech1Points)
	tech2Pts, _ := lookup(g.Tech2, tech2Points)
	supportPts, _ := lookup(g.Support, supportPoints)

	tech1Scale := FivePointScale(tech1Pts, Tech1Max)
	tech2Scale := FivePointScale(tech2Pts, Tech2Max)

	return models.Evaluation{
		ParticipationID: participationID,
		PriceGrade:      FivePointScale(pricePts, PriceMax),
		QualityGrade:    FivePointScale(qualityPts, QualityMax),
		TechnicalGrade:  int(math.Round(float64(tech1Scale+tech2Scale) / 2)),
		SupportGrade:    FivePointScale(supportPts, SupportMax),
		TotalPoints:     result.TotalPoints,
		EvaluatedAt:     now,
	}, nil
}
