package engine

import (
	"errors"
	"testing"

	"github.com/MOYARU/krs/internal/report"
	"github.com/MOYARU/krs/internal/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreComponentSaturation(t *testing.T) {
	c := component("scheduler")
	ev := Evidence{Total: 1_000_000, Files: []string{"a.c"}}

	s := ScoreComponent(c, ev, 1_000_000, 1_000_000)
	assert.Equal(t, 100.0, s.Evidence)
	assert.Equal(t, 100.0, s.Functions)
	assert.Equal(t, 100.0, s.SLOC)
	assert.Equal(t, 100.0, s.Overall, "all sub-scores clamp, so the combination does too")
}

func TestScoreComponentEvidenceSaturatesAtTenMatches(t *testing.T) {
	c := component("scheduler")

	s := ScoreComponent(c, Evidence{Total: 5, Files: []string{"a.c"}}, 0, 0)
	assert.Equal(t, 50.0, s.Evidence)

	s = ScoreComponent(c, Evidence{Total: 10, Files: []string{"a.c"}}, 0, 0)
	assert.Equal(t, 100.0, s.Evidence)

	s = ScoreComponent(c, Evidence{Total: 12, Files: []string{"a.c"}}, 0, 0)
	assert.Equal(t, 100.0, s.Evidence)
}

func TestScoreComponentZeroEvidenceFiles(t *testing.T) {
	c := component("scheduler")

	s := ScoreComponent(c, Evidence{}, 0, 0)
	assert.Zero(t, s.Evidence)
	assert.Zero(t, s.Functions, "no evidence files means zero structural credit, not NaN")
	assert.Zero(t, s.SLOC)
	assert.Zero(t, s.Overall)
}

func TestScoreComponentReferenceScenario(t *testing.T) {
	// One file with 12 cue hits, 1 function shape, 40 qualifying lines
	// against targets 20 functions / 800 SLOC.
	c := component("scheduler")
	ev := Evidence{Total: 12, Files: []string{"sched.c"}}

	s := ScoreComponent(c, ev, 1, 40)
	assert.InDelta(t, 100.0, s.Evidence, 1e-9)
	assert.InDelta(t, 5.0, s.Functions, 1e-9)
	assert.InDelta(t, 5.0, s.SLOC, 1e-9)
	assert.InDelta(t, 43.0, s.Overall, 1e-9)
}

func TestAggregateCategoryWeightedAverage(t *testing.T) {
	results := []report.ComponentResult{
		{Category: "kernel", Weight: 10, Scores: report.Scores{Overall: 100}},
		{Category: "kernel", Weight: 20, Scores: report.Scores{Overall: 50}},
		{Category: "os", Weight: 5, Scores: report.Scores{Overall: 10}},
	}

	score, err := AggregateCategory(rubric.CategoryKernel, results)
	require.NoError(t, err)
	assert.InDelta(t, 66.67, score, 0.01, "(100*10 + 50*20) / 30")

	score, err = AggregateCategory(rubric.CategoryOS, results)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, score, 1e-9)
}

func TestAggregateCategoryEmpty(t *testing.T) {
	_, err := AggregateCategory(rubric.CategoryOS, []report.ComponentResult{
		{Category: "kernel", Weight: 10, Scores: report.Scores{Overall: 50}},
	})
	var aggErr *AggregationError
	require.True(t, errors.As(err, &aggErr))
	assert.Equal(t, rubric.CategoryOS, aggErr.Category)
}

func TestOverallScore(t *testing.T) {
	assert.InDelta(t, 35.0, OverallScore(50, 20), 1e-9)
	assert.Zero(t, OverallScore(0, 0))
}

func TestClassifyThresholdTable(t *testing.T) {
	cases := []struct {
		kernel, os float64
		want       report.Classification
	}{
		{60, 41, report.ClassificationKernelGrade},
		{95, 100, report.ClassificationKernelGrade},
		{60, 40, report.ClassificationApplicationOther}, // rule 1 needs os strictly above 40
		{75, 10, report.ClassificationApplicationOther}, // strong kernel alone is no grade
		{30, 0, report.ClassificationKernelPrototype},
		{59.9, 100, report.ClassificationKernelPrototype}, // rule 2 outranks os-platform
		{29.9, 50, report.ClassificationOSPlatform},
		{0, 100, report.ClassificationOSPlatform},
		{0, 49.9, report.ClassificationApplicationOther},
		{0, 0, report.ClassificationApplicationOther},
	}

	for _, tc := range cases {
		got, rationale := Classify(tc.kernel, tc.os)
		assert.Equalf(t, tc.want, got, "kernel=%.1f os=%.1f", tc.kernel, tc.os)
		assert.NotEmpty(t, rationale)
	}
}
