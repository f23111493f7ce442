package config

// FormatRuleID renders a rule identifier for display. An empty name
// falls back to the bare ID no matter which format is asked for.
func FormatRuleID(format RuleFormat, ruleID, ruleName string) string {
	if ruleName == "" {
		return ruleID
	}

	switch format {
	case RuleFormatName:
		return ruleName
	case RuleFormatCombined:
		return ruleID + "/" + ruleName
	}

	// RuleFormatID, and anything unrecognized, renders the pycodestyle code.
	return ruleID
}
