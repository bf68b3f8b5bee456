package engine

import (
	"regexp"
	"sort"

	"github.com/MOYARU/krs/internal/rubric"
)

// Evidence is the per-component match summary: total cue occurrences across
// all files, counts per cue, and the set of files with at least one match.
// That file set, not the whole scan, bounds function/SLOC counting so
// structural credit stays concentrated on files relevant to the component.
type Evidence struct {
	Total      int
	CueMatches map[string]int
	Files      []string
}

// MatchEvidence counts whole-word, case-insensitive occurrences of every
// evidence cue of c across the scanned files. Whole-word means non-word
// boundaries on both sides: cue "io" must not match inside "ratio".
func MatchEvidence(c rubric.Component, sr *ScanResult) Evidence {
	ev := Evidence{CueMatches: make(map[string]int, len(c.EvidenceCues))}

	patterns := make([]*regexp.Regexp, len(c.EvidenceCues))
	for i, cue := range c.EvidenceCues {
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(cue) + `\b`)
		ev.CueMatches[cue] = 0
	}

	for path, content := range sr.Files {
		matched := false
		for i, cue := range c.EvidenceCues {
			n := len(patterns[i].FindAllStringIndex(content, -1))
			if n == 0 {
				continue
			}
			ev.CueMatches[cue] += n
			ev.Total += n
			matched = true
		}
		if matched {
			ev.Files = append(ev.Files, path)
		}
	}

	sort.Strings(ev.Files)
	return ev
}
