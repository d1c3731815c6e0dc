package config

import (
	"github.com/gobwas/glob"
)

// Merge merges a loaded config on top of defaults. The loaded config's rules
// override the defaults; any rule not mentioned in loaded keeps its default
// value. Ignore and Overrides come from the loaded config only.
func Merge(defaults, loaded *Config) *Config {
	rules := make(map[string]RuleCfg, len(defaults.Rules))
	for k, v := range defaults.Rules {
		rules[k] = v
	}

	if loaded == nil {
		return &Config{
			Rules:       rules,
			MinSeverity: defaults.MinSeverity,
			Engine:      defaults.Engine,
		}
	}

	for k, v := range loaded.Rules {
		rules[k] = v
	}

	minSev := defaults.MinSeverity
	if loaded.MinSeverity != "" {
		minSev = loaded.MinSeverity
	}
	eng := defaults.Engine
	if loaded.Engine.Name != "" {
		eng.Name = loaded.Engine.Name
	}
	if loaded.Engine.ServiceURL != "" {
		eng.ServiceURL = loaded.Engine.ServiceURL
	}

	return &Config{
		Rules:       rules,
		Ignore:      loaded.Ignore,
		Overrides:   loaded.Overrides,
		MinSeverity: minSev,
		Engine:      eng,
	}
}

// Effective returns the effective rule configuration for a given notebook
// path. It starts with the top-level rules and then applies each override
// whose file patterns match, in order. Later overrides take precedence.
func Effective(cfg *Config, path string) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(cfg.Rules))
	for k, v := range cfg.Rules {
		result[k] = v
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Files, path) {
			for k, v := range o.Rules {
				result[k] = v
			}
		}
	}

	return result
}

// Ignored reports whether path matches any of the configured ignore
// patterns.
func Ignored(cfg *Config, path string) bool {
	return matchesAny(cfg.Ignore, path)
}

// matchesAny returns true if path matches any of the given glob patterns.
func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			// Skip invalid patterns silently.
			continue
		}
		if g.Match(path) {
			return true
		}
	}
	return false
}
