package configloader

import (
	"maps"

	"github.com/yaklabco/gopystyle/pkg/config"
)

// merge layers override on top of base and returns the combined config.
// Scalars win when set to a non-zero value and slices replace wholesale
// when non-nil; the rules map merges per rule. Boolean flags can only be
// switched on by an override, never back off; their zero value is
// indistinguishable from "not set".
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	overlay(&result.SeverityDefault, override.SeverityDefault)
	overlay(&result.Format, override.Format)
	overlay(&result.RuleFormat, override.RuleFormat)
	overlay(&result.Jobs, override.Jobs)
	overlay(&result.Fix, override.Fix)
	overlay(&result.DryRun, override.DryRun)
	overlay(&result.NoBackups, override.NoBackups)
	overlay(&result.Backups.Enabled, override.Backups.Enabled)
	overlay(&result.Backups.Mode, override.Backups.Mode)

	overlaySlice(&result.Ignore, override.Ignore)
	overlaySlice(&result.EnableRules, override.EnableRules)
	overlaySlice(&result.DisableRules, override.DisableRules)
	overlaySlice(&result.FixRules, override.FixRules)

	result.Rules = mergeRules(base.Rules, override.Rules)

	return &result
}

// overlay writes src over *dst unless src holds its type's zero value.
// Handles the scalar and pointer fields of a config overlay; for pointers
// the zero value is nil, so a set pointer always wins.
func overlay[T comparable](dst *T, src T) {
	var zero T
	if src != zero {
		*dst = src
	}
}

// overlaySlice replaces *dst whenever src was set at all. An empty but
// non-nil src deliberately clears the base list.
func overlaySlice(dst *[]string, src []string) {
	if src != nil {
		*dst = src
	}
}

// mergeRules combines two rule maps rule by rule. Neither input map is
// modified.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	result := make(map[string]config.RuleConfig, len(base)+len(override))
	maps.Copy(result, base)
	for key, val := range override {
		if existing, ok := result[key]; ok {
			val = mergeRuleConfig(existing, val)
		}
		result[key] = val
	}
	return result
}

// mergeRuleConfig overlays one rule's settings.
func mergeRuleConfig(base, override config.RuleConfig) config.RuleConfig {
	result := base

	overlay(&result.Enabled, override.Enabled)
	overlay(&result.Severity, override.Severity)
	overlay(&result.AutoFix, override.AutoFix)

	if override.Options != nil {
		// Write to a fresh map; base may share its Options with the caller.
		merged := make(map[string]any, len(base.Options)+len(override.Options))
		maps.Copy(merged, base.Options)
		maps.Copy(merged, override.Options)
		result.Options = merged
	}

	return result
}
