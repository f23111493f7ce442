package lint

import "github.com/yaklabco/gopystyle/pkg/config"

// BaseRule carries the descriptive half of the Rule interface so rule
// implementations only write Apply. Fields stay unexported to keep them
// from colliding with the interface methods; construct via NewBaseRule.
type BaseRule struct {
	id      string
	name    string
	desc    string
	tags    []string
	fixable bool
}

// NewBaseRule builds the embedded descriptive part of a rule.
func NewBaseRule(id, name, desc string, tags []string, fixable bool) BaseRule {
	return BaseRule{
		id:      id,
		name:    name,
		desc:    desc,
		tags:    tags,
		fixable: fixable,
	}
}

// ID returns the stable rule identifier.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the readable rule name.
func (r *BaseRule) Name() string {
	return r.name
}

// Description explains what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled reports true; rules that are opt-in override this.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity reports warning; stricter rules override this.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityWarning
}

// Tags groups related rules.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// CanFix reports whether the rule proposes auto-fix edits.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Apply reports nothing; concrete rules override it.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
