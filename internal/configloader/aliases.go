package configloader

import (
	"maps"
	"slices"
	"strings"
)

// Static tables mapping the spellings found in legacy configs onto the
// built-in rules. The lint registry resolves names too, but converting a
// pycodestyle or flake8 file has to work without any rules registered, so
// the migration path carries its own copy.
//
//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// ruleAliases maps human-readable rule names to rule IDs. Config files
	// may use either spelling.
	ruleAliases = map[string]string{
		"trailing-whitespace":                "W291",
		"missing-whitespace-around-operator": "E225",
		"indentation":                        "E111",
		"line-too-long":                      "E501",
		"line-length":                        "E501",
		"import-order":                       "I100",
		"class-naming":                       "N801",
		"function-naming":                    "N802",
	}

	// codeAliases folds pycodestyle codes with no dedicated rule here into
	// the built-in rule covering the same check.
	codeAliases = map[string]string{
		"W293": "W291", // whitespace on blank line is a case of trailing whitespace
		"E114": "E111", // indentation of comment lines
		"E226": "E225", // whitespace around arithmetic operators
	}

	// ruleGroups expands the class prefixes legacy ignore/select lists use
	// to address whole families of checks at once.
	ruleGroups = map[string][]string{
		"E":  {"E111", "E225", "E501"},
		"E1": {"E111"},
		"E2": {"E225"},
		"E5": {"E501"},
		"W":  {"W291"},
		"W2": {"W291"},
		"I":  {"I100"},
		"I1": {"I100"},
		"N":  {"N801", "N802"},
		"N8": {"N801", "N802"},
	}
)

// NormalizeRuleID converts a rule name, code alias, or ID to its canonical
// rule ID. Well-formed codes that are not recognized come back uppercased so
// later validation can warn about them; anything else yields "".
func NormalizeRuleID(key string) string {
	upper := strings.ToUpper(key)
	if isRuleCode(upper) {
		if canonical, ok := codeAliases[upper]; ok {
			return canonical
		}
		return upper
	}
	return ruleAliases[key]
}

// isRuleCode reports whether key has the shape of a pycodestyle code: one
// uppercase class letter followed by digits (E501, W291, N801).
func isRuleCode(key string) bool {
	if len(key) < 2 || key[0] < 'A' || key[0] > 'Z' {
		return false
	}
	for i := 1; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}

// GetGroupRules returns the rule IDs a class prefix covers, or nil for an
// unrecognized prefix.
func GetGroupRules(group string) []string {
	return ruleGroups[strings.ToUpper(group)]
}

// GetAllRuleIDs returns the IDs of every built-in rule, sorted.
func GetAllRuleIDs() []string {
	seen := make(map[string]struct{}, len(ruleAliases))
	for _, id := range ruleAliases {
		seen[id] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}
