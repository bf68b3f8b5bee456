package config

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnginePolicy tunes the evaluation run. All fields are optional; invalid
// values fall back to defaults rather than failing the run.
type EnginePolicy struct {
	MaxConcurrency    int      `yaml:"max_concurrency"`
	FollowUpThreshold float64  `yaml:"follow_up_threshold"`
	TopGapsLimit      int      `yaml:"top_gaps_limit"`
	ExtraExtensions   []string `yaml:"extra_extensions"`
}

var policyCache struct {
	mu      sync.RWMutex
	path    string
	exists  bool
	modTime int64
	policy  EnginePolicy
}

func DefaultEnginePolicy() EnginePolicy {
	return EnginePolicy{
		MaxConcurrency:    0, // 0 means one worker per CPU
		FollowUpThreshold: 70,
		TopGapsLimit:      10,
	}
}

// LoadEnginePolicy reads optional top-level keys from ".krs.yaml":
// max_concurrency: 8
// follow_up_threshold: 70
// top_gaps_limit: 10
// extra_extensions: [.rs, .zig]
// The parsed policy is cached by path and mtime so repeated loads within one
// process stay cheap.
func LoadEnginePolicy() EnginePolicy {
	p := DefaultEnginePolicy()
	path := ".krs.yaml"
	if absPath, err := filepath.Abs(path); err == nil {
		path = absPath
	}

	st, statErr := os.Stat(path)
	if statErr != nil {
		policyCache.mu.Lock()
		policyCache.path = path
		policyCache.exists = false
		policyCache.modTime = 0
		policyCache.policy = p
		policyCache.mu.Unlock()
		return p
	}

	modTime := st.ModTime().UnixNano()
	policyCache.mu.RLock()
	if policyCache.path == path && policyCache.exists && policyCache.modTime == modTime {
		cached := policyCache.policy
		policyCache.mu.RUnlock()
		return cached
	}
	policyCache.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}

	var raw EnginePolicy
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return p
	}
	if raw.MaxConcurrency > 0 {
		p.MaxConcurrency = raw.MaxConcurrency
	}
	if raw.FollowUpThreshold > 0 && raw.FollowUpThreshold <= 100 {
		p.FollowUpThreshold = raw.FollowUpThreshold
	}
	if raw.TopGapsLimit > 0 {
		p.TopGapsLimit = raw.TopGapsLimit
	}
	if len(raw.ExtraExtensions) > 0 {
		p.ExtraExtensions = raw.ExtraExtensions
	}

	policyCache.mu.Lock()
	policyCache.path = path
	policyCache.exists = true
	policyCache.modTime = modTime
	policyCache.policy = p
	policyCache.mu.Unlock()

	return p
}
