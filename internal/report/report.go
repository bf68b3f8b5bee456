package report

import (
	"fmt"
	"sort"
	"time"
)

// Classification is the qualitative label derived from the two category
// scores.
type Classification string

const (
	ClassificationKernelGrade      Classification = "kernel-grade"
	ClassificationKernelPrototype  Classification = "kernel-prototype"
	ClassificationOSPlatform       Classification = "os-platform"
	ClassificationApplicationOther Classification = "application-other"
)

// EvidenceDetail records where and how often a component's cues matched.
type EvidenceDetail struct {
	TotalMatches int            `json:"total_matches"`
	MatchedFiles int            `json:"matched_files"`
	CueMatches   map[string]int `json:"cue_matches"`
	Files        []string       `json:"files,omitempty"`
}

// Metric is a raw count measured against a rubric target.
type Metric struct {
	Found  int     `json:"found"`
	Target int     `json:"target"`
	Score  float64 `json:"score"`
}

// Scores holds the three sub-scores and their weighted combination, each in
// [0,100].
type Scores struct {
	Evidence  float64 `json:"evidence"`
	Functions float64 `json:"functions"`
	SLOC      float64 `json:"sloc"`
	Overall   float64 `json:"overall"`
}

type ComponentResult struct {
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Weight      int            `json:"weight"`
	Criticality string         `json:"criticality"`
	Description string         `json:"description,omitempty"`
	Evidence    EvidenceDetail `json:"evidence"`
	Functions   Metric         `json:"functions"`
	SLOC        Metric         `json:"sloc"`
	Scores      Scores         `json:"scores"`
}

type Summary struct {
	KernelScore    float64        `json:"kernel_primitives_score"`
	OSScore        float64        `json:"os_services_score"`
	OverallScore   float64        `json:"overall_score"`
	Classification Classification `json:"classification"`
	Rationale      string         `json:"classification_rationale,omitempty"`
	FilesScanned   int            `json:"total_files_scanned"`
	FilesSkipped   int            `json:"total_files_skipped"`
}

// Report is the engine's sole output contract. Downstream consumers (the
// task generator, CI wrappers) read it; the engine knows nothing about them.
type Report struct {
	Generator    string            `json:"generator"`
	Target       string            `json:"target"`
	Rubric       string            `json:"rubric"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	Kernel       []ComponentResult `json:"kernel_primitives"`
	OS           []ComponentResult `json:"os_services"`
	Summary      Summary           `json:"summary"`
	SkipWarnings []string          `json:"skip_warnings,omitempty"`
}

// Components returns kernel and OS results as one slice, kernel first.
func (r *Report) Components() []ComponentResult {
	out := make([]ComponentResult, 0, len(r.Kernel)+len(r.OS))
	out = append(out, r.Kernel...)
	return append(out, r.OS...)
}

// Gap describes how far a below-threshold component is from its targets.
type Gap struct {
	Component         string  `json:"component"`
	Category          string  `json:"category"`
	Criticality       string  `json:"criticality"`
	Weight            int     `json:"weight"`
	Score             float64 `json:"score"`
	FunctionsGap      int     `json:"functions_gap"`
	SLOCGap           int     `json:"sloc_gap"`
	FunctionsProgress string  `json:"functions_progress"`
	SLOCProgress      string  `json:"sloc_progress"`
}

// GapAnalysis lists components scoring below threshold, heaviest weight
// first, so the most impactful gaps lead the remediation section.
func GapAnalysis(r *Report, threshold float64) []Gap {
	var gaps []Gap
	for _, c := range r.Components() {
		if c.Scores.Overall >= threshold {
			continue
		}
		gaps = append(gaps, Gap{
			Component:         c.Name,
			Category:          c.Category,
			Criticality:       c.Criticality,
			Weight:            c.Weight,
			Score:             c.Scores.Overall,
			FunctionsGap:      missing(c.Functions),
			SLOCGap:           missing(c.SLOC),
			FunctionsProgress: fmt.Sprintf("%d/%d", c.Functions.Found, c.Functions.Target),
			SLOCProgress:      fmt.Sprintf("%d/%d", c.SLOC.Found, c.SLOC.Target),
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		if gaps[i].Weight == gaps[j].Weight {
			return gaps[i].Component < gaps[j].Component
		}
		return gaps[i].Weight > gaps[j].Weight
	})
	return gaps
}

func missing(m Metric) int {
	if gap := m.Target - m.Found; gap > 0 {
		return gap
	}
	return 0
}
