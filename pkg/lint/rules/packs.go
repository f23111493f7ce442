package rules

import "github.com/yaklabco/gopystyle/pkg/config"

// Pack is a named bundle of rule settings, usable as a starting point for
// a .gopystyle.yml.
type Pack struct {
	// Name identifies the pack, e.g. "core" or "strict".
	Name string

	// Description says what the pack is for.
	Description string

	// Rules holds the pack's settings keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// Every built-in rule, for packs that cover the whole set.
//
//nolint:gochecknoglobals // Read-only ID list.
var allRuleIDs = []string{
	"W291", // trailing-whitespace
	"E111", // indentation
	"E225", // missing-whitespace-around-operator
	"E501", // line-too-long
	"I100", // import-order
	"N801", // class-naming
	"N802", // function-naming
}

// CorePack enables the standard checks at their default severities,
// matching out-of-the-box behavior.
func CorePack() Pack {
	return Pack{
		Name:        "core",
		Description: "Standard checks: whitespace, indentation, line length, imports, naming",
		Rules:       uniformRules("warning", allRuleIDs...),
	}
}

// StrictPack elevates every check to an error, for CI gates.
func StrictPack() Pack {
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every check is an error, suitable for CI gates",
		Rules:       uniformRules("error", allRuleIDs...),
	}
}

// RelaxedPack keeps only low-noise whitespace cleanup, for loose style
// guides and legacy codebases.
func RelaxedPack() Pack {
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: only whitespace cleanup, minimal noise",
		Rules:       uniformRules("info", "W291", "E111"),
	}
}

// NamingPack checks identifier conventions only, for trees where a
// formatter already owns layout.
func NamingPack() Pack {
	return Pack{
		Name:        "naming",
		Description: "Naming pack: class and function naming conventions only",
		Rules:       uniformRules("warning", "N801", "N802"),
	}
}

// Packs lists every built-in pack.
func Packs() []Pack {
	return []Pack{CorePack(), StrictPack(), RelaxedPack(), NamingPack()}
}

// PackByName finds one pack, or nil when the name is unknown.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames lists the packs by name, in presentation order.
func PackNames() []string {
	var names []string
	for _, p := range Packs() {
		names = append(names, p.Name)
	}
	return names
}

// uniformRules enables each listed rule at one severity.
func uniformRules(severity string, ids ...string) map[string]config.RuleConfig {
	rules := make(map[string]config.RuleConfig, len(ids))
	for _, id := range ids {
		on := true
		sev := severity
		rules[id] = config.RuleConfig{Enabled: &on, Severity: &sev}
	}
	return rules
}
