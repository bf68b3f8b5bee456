package engine

import (
	"testing"

	"github.com/MOYARU/krs/internal/rubric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanWith(files map[string]string) *ScanResult {
	sr := &ScanResult{Files: files, Lines: make(map[string]int)}
	return sr
}

func component(cues ...string) rubric.Component {
	return rubric.Component{
		Name:            "scheduling",
		Category:        rubric.CategoryKernel,
		Weight:          10,
		EvidenceCues:    cues,
		TargetFunctions: 20,
		TargetSLOC:      800,
	}
}

func TestMatchEvidenceWholeWord(t *testing.T) {
	sr := scanWith(map[string]string{
		"ratio.c": "int ratios = 0; // aspect ratio handling\n",
	})

	ev := MatchEvidence(component("io"), sr)
	assert.Zero(t, ev.Total, "io must not match inside ratios/ratio")
	assert.Empty(t, ev.Files)
}

func TestMatchEvidenceCaseInsensitive(t *testing.T) {
	sr := scanWith(map[string]string{
		"io.c": "IO subsystem: Io init, io start\n",
	})

	ev := MatchEvidence(component("io"), sr)
	assert.Equal(t, 3, ev.Total)
	assert.Equal(t, []string{"io.c"}, ev.Files)
	assert.Equal(t, 3, ev.CueMatches["io"])
}

func TestMatchEvidenceUnderscoreBoundsWord(t *testing.T) {
	// Underscore is a word character: "scheduler" inside "scheduler_init"
	// is not a whole-word occurrence.
	sr := scanWith(map[string]string{
		"sched.c": "void scheduler_init(void);\nstruct scheduler sched;\n",
	})

	ev := MatchEvidence(component("scheduler"), sr)
	assert.Equal(t, 1, ev.Total)
}

func TestMatchEvidenceAcrossFilesAndCues(t *testing.T) {
	sr := scanWith(map[string]string{
		"a.c": "scheduler scheduler yield\n",
		"b.c": "yield\n",
		"c.c": "nothing relevant\n",
	})

	ev := MatchEvidence(component("scheduler", "yield"), sr)
	assert.Equal(t, 4, ev.Total)
	assert.Equal(t, 2, ev.CueMatches["scheduler"])
	assert.Equal(t, 2, ev.CueMatches["yield"])
	assert.Equal(t, []string{"a.c", "b.c"}, ev.Files, "evidence files sorted, non-matching excluded")
}

func TestMatchEvidenceMonotonicity(t *testing.T) {
	content := "scheduler\n"
	for i := 0; i < 30; i++ {
		before := MatchEvidence(component("scheduler"), scanWith(map[string]string{"a.c": content}))
		content += "scheduler\n"
		after := MatchEvidence(component("scheduler"), scanWith(map[string]string{"a.c": content}))
		require.GreaterOrEqual(t, after.Total, before.Total)

		sBefore := ScoreComponent(component("scheduler"), before, 0, 0)
		sAfter := ScoreComponent(component("scheduler"), after, 0, 0)
		require.GreaterOrEqual(t, sAfter.Evidence, sBefore.Evidence,
			"adding an occurrence must never decrease the evidence score")
	}
}

func TestMatchEvidenceRegexMetaCue(t *testing.T) {
	// Cues are literals; regex metacharacters must not be interpreted.
	sr := scanWith(map[string]string{
		"a.c": "a.c abc\n",
	})
	ev := MatchEvidence(component("a.c"), sr)
	assert.Equal(t, 1, ev.Total, "dot must not act as a wildcard")
}
