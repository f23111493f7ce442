package rules

import (
	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
)

// RegisterAll installs every built-in rule into registry.
func RegisterAll(registry *lint.Registry) {
	// Whitespace
	registry.Register(NewTrailingWhitespaceRule()) // W291
	registry.Register(NewOperatorSpacingRule())    // E225

	// Layout
	registry.Register(NewIndentationRule())   // E111
	registry.Register(NewMaxLineLengthRule()) // E501

	// Imports
	registry.Register(NewImportOrderRule()) // I100

	// Naming
	registry.Register(NewClassNamingRule())    // N801
	registry.Register(NewFunctionNamingRule()) // N802
}

// RegisterCompatAliases registers pycodestyle codes that map onto a broader
// built-in rule. These aliases let configuration written for pycodestyle or
// flake8 enable, disable, and configure the matching rule here. For example:
//   - "W293" -> W291 (whitespace on blank lines is a case of trailing whitespace)
//   - "E114" -> E111 (indentation of comment lines is checked the same way).
func RegisterCompatAliases(registry *lint.Registry) {
	// W291: trailing-whitespace also covers whitespace-only blank lines.
	registry.RegisterAlias("W293", "W291")

	// E111: indentation applies to comment lines as well.
	registry.RegisterAlias("E114", "E111")

	// E225: operator spacing covers arithmetic operators too.
	registry.RegisterAlias("E226", "E225")
}

// init populates the default registry and points config template
// generation at it.
//
//nolint:gochecknoinits // Importing the package must register the rules
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterCompatAliases(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = registryRuleInfos
}

// registryRuleInfos snapshots rule metadata for config template generation.
func registryRuleInfos() []config.RuleInfo {
	rules := lint.DefaultRegistry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
			Tags:        rule.Tags(),
			CanFix:      rule.CanFix(),
		})
	}
	return infos
}
