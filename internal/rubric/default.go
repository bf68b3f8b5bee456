package rubric

import "embed"

//go:embed default_rubric.yaml
var defaultFS embed.FS

// Default returns the built-in rubric: 10 kernel primitives and 8 OS
// platform services with the canonical weight profile (100/60).
func Default() (*Rubric, error) {
	data, err := defaultFS.ReadFile("default_rubric.yaml")
	if err != nil {
		return nil, &ConfigError{Reason: "built-in rubric missing: " + err.Error()}
	}
	return Parse(data)
}
