package rubric

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Category string

const (
	CategoryKernel Category = "kernel"
	CategoryOS     Category = "os"
)

// ConfigError reports a malformed or invalid rubric document. It is fatal:
// nothing is scanned when the rubric does not validate.
type ConfigError struct {
	Component string
	Reason    string
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "invalid rubric: " + e.Reason
	}
	return fmt.Sprintf("invalid rubric: component %q: %s", e.Component, e.Reason)
}

// Component is one scored unit of functionality (e.g. "scheduling").
// Immutable once loaded.
type Component struct {
	Name            string   `yaml:"name" json:"name"`
	Category        Category `yaml:"category" json:"category"`
	Weight          int      `yaml:"weight" json:"weight"`
	Criticality     string   `yaml:"criticality" json:"criticality"`
	Description     string   `yaml:"description" json:"description"`
	EvidenceCues    []string `yaml:"evidence_cues" json:"evidence_cues"`
	TargetFunctions int      `yaml:"target_functions" json:"target_functions"`
	TargetSLOC      int      `yaml:"target_sloc" json:"target_sloc"`
}

type Rubric struct {
	Name       string      `yaml:"name"`
	Components []Component `yaml:"components"`
}

// ByCategory returns the components tagged with the given category, in
// rubric order.
func (r *Rubric) ByCategory(cat Category) []Component {
	var out []Component
	for _, c := range r.Components {
		if c.Category == cat {
			out = append(out, c)
		}
	}
	return out
}

func (r *Rubric) Kernel() []Component { return r.ByCategory(CategoryKernel) }
func (r *Rubric) OS() []Component     { return r.ByCategory(CategoryOS) }

// Load reads and validates a rubric document from disk. JSON rubrics parse
// too, JSON being a YAML subset.
func Load(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rubric %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a rubric document. Validation is eager: a
// structural violation is rejected here rather than failing mid-scan.
func Parse(data []byte) (*Rubric, error) {
	var r Rubric
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &ConfigError{Reason: "parse: " + err.Error()}
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Rubric) validate() error {
	if len(r.Components) == 0 {
		return &ConfigError{Reason: "no components defined"}
	}

	seen := make(map[string]bool, len(r.Components))
	for i := range r.Components {
		c := &r.Components[i]
		if strings.TrimSpace(c.Name) == "" {
			return &ConfigError{Reason: fmt.Sprintf("component #%d has no name", i+1)}
		}
		if seen[c.Name] {
			return &ConfigError{Component: c.Name, Reason: "defined twice"}
		}
		seen[c.Name] = true

		if c.Category != CategoryKernel && c.Category != CategoryOS {
			return &ConfigError{Component: c.Name, Reason: fmt.Sprintf("unknown category %q (want %q or %q)", c.Category, CategoryKernel, CategoryOS)}
		}
		if c.Weight <= 0 {
			return &ConfigError{Component: c.Name, Reason: fmt.Sprintf("weight must be positive, got %d", c.Weight)}
		}
		if c.TargetFunctions <= 0 {
			return &ConfigError{Component: c.Name, Reason: fmt.Sprintf("target_functions must be positive, got %d", c.TargetFunctions)}
		}
		if c.TargetSLOC <= 0 {
			return &ConfigError{Component: c.Name, Reason: fmt.Sprintf("target_sloc must be positive, got %d", c.TargetSLOC)}
		}

		c.EvidenceCues = dedupeCues(c.EvidenceCues)
		if len(c.EvidenceCues) == 0 {
			return &ConfigError{Component: c.Name, Reason: "evidence_cues must not be empty"}
		}
	}
	return nil
}

// dedupeCues trims, drops empties, and removes case-insensitive duplicates
// while preserving rubric order. Matching is case-insensitive downstream, so
// duplicates that differ only in case would double-count.
func dedupeCues(cues []string) []string {
	seen := make(map[string]bool, len(cues))
	out := make([]string, 0, len(cues))
	for _, cue := range cues {
		cue = strings.TrimSpace(cue)
		if cue == "" {
			continue
		}
		key := strings.ToLower(cue)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cue)
	}
	return out
}
