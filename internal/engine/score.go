package engine

import (
	"fmt"

	"github.com/MOYARU/krs/internal/report"
	"github.com/MOYARU/krs/internal/rubric"
)

// Sub-score weighting: cue presence is suggestive evidence (40%), structural
// volume corroborates implementation depth (30% + 30%).
const (
	evidenceWeight  = 0.4
	functionsWeight = 0.3
	slocWeight      = 0.3

	// Total cue hits across the repository that saturate the evidence
	// sub-score at 100.
	evidenceSaturation = 10
)

// AggregationError reports a category with no components: its weighted
// average is undefined. Fatal, like a ConfigError.
type AggregationError struct {
	Category rubric.Category
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("category %q has no components to aggregate", e.Category)
}

// ScoreComponent normalizes the three raw counts against their targets and
// combines them. Every sub-score and the combined score is clamped to
// [0,100] no matter how large the input counts are.
func ScoreComponent(c rubric.Component, ev Evidence, functions, sloc int) report.Scores {
	s := report.Scores{
		Evidence:  clampPercent(float64(ev.Total) / evidenceSaturation * 100),
		Functions: clampPercent(float64(functions) / float64(c.TargetFunctions) * 100),
		SLOC:      clampPercent(float64(sloc) / float64(c.TargetSLOC) * 100),
	}
	// No evidence files means no structural credit, never NaN.
	if len(ev.Files) == 0 {
		s.Functions = 0
		s.SLOC = 0
	}
	s.Overall = s.Evidence*evidenceWeight + s.Functions*functionsWeight + s.SLOC*slocWeight
	return s
}

// AggregateCategory computes the weighted average of the component scores
// belonging to cat, dividing by the weights actually present in that
// category so customized rubrics aggregate correctly.
func AggregateCategory(cat rubric.Category, results []report.ComponentResult) (float64, error) {
	var weighted, weightSum float64
	for _, r := range results {
		if r.Category != string(cat) {
			continue
		}
		weighted += r.Scores.Overall * float64(r.Weight)
		weightSum += float64(r.Weight)
	}
	if weightSum == 0 {
		return 0, &AggregationError{Category: cat}
	}
	return weighted / weightSum, nil
}

// OverallScore is the simple mean of the two category scores.
func OverallScore(kernelScore, osScore float64) float64 {
	return (kernelScore + osScore) / 2
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
