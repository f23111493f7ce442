package lint

import (
	"slices"

	"github.com/yaklabco/gopystyle/pkg/config"
)

// ResolvedRule pairs a Rule with the settings that apply to it after
// defaults, config file entries, and CLI flags are merged.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	AutoFix  bool

	// Config holds the rule's own config section, nil when absent.
	Config *config.RuleConfig
}

// ResolveRules merges registry defaults with cfg and returns the rules
// that end up enabled, in registry order.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var enabled []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolveRule(registry, rule, cfg); rr.Enabled {
			enabled = append(enabled, rr)
		}
	}
	return enabled
}

// resolveRule settles one rule's configuration. Keys in cfg may be rule
// IDs, names, or registered aliases.
func resolveRule(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	out := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return out
	}

	// CLI enable/disable flags, with disable winning on overlap.
	if anyKeyMatches(registry, rule, cfg.EnableRules) {
		out.Enabled = true
	}
	if anyKeyMatches(registry, rule, cfg.DisableRules) {
		out.Enabled = false
	}

	if rc, ok := lookupRuleConfig(registry, rule, cfg); ok {
		out.Config = &rc
		if rc.Enabled != nil {
			out.Enabled = *rc.Enabled
		}
		if rc.Severity != nil {
			out.Severity = config.Severity(*rc.Severity)
		}
		if rc.AutoFix != nil {
			out.AutoFix = *rc.AutoFix && rule.CanFix()
		}
	}

	// --fix-rules narrows fixing to the listed rules.
	if len(cfg.FixRules) > 0 {
		out.AutoFix = rule.CanFix() && anyKeyMatches(registry, rule, cfg.FixRules)
	}

	// Auto-fix only ever runs under --fix.
	if !cfg.Fix {
		out.AutoFix = false
	}

	return out
}

// anyKeyMatches reports whether any key in keys names rule.
func anyKeyMatches(registry *Registry, rule Rule, keys []string) bool {
	for _, key := range keys {
		if matchesRule(registry, rule, key) {
			return true
		}
	}
	return false
}

// matchesRule reports whether key names rule, directly or via alias.
func matchesRule(registry *Registry, rule Rule, key string) bool {
	if key == rule.ID() || key == rule.Name() {
		return true
	}
	if registry != nil {
		if id, _, ok := registry.Resolve(key); ok {
			return id == rule.ID()
		}
	}
	return false
}

// lookupRuleConfig finds the config entry for a rule. The canonical ID
// wins; otherwise the first matching key in sorted order is used so the
// result is deterministic when a rule is configured under an alias.
func lookupRuleConfig(registry *Registry, rule Rule, cfg *config.Config) (config.RuleConfig, bool) {
	if rc, ok := cfg.Rules[rule.ID()]; ok {
		return rc, true
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if matchesRule(registry, rule, key) {
			return cfg.Rules[key], true
		}
	}

	return config.RuleConfig{}, false
}
