// Package lint provides the rule engine, diagnostics, and registry for gopystyle.
package lint

import (
	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// Diagnostic is one style violation reported against a file.
type Diagnostic struct {
	// RuleID identifies the reporting rule, for example "W291".
	RuleID string

	// RuleName is the rule's readable name, for example "trailing-whitespace".
	RuleName string

	// Message describes the violation.
	Message string

	// Severity is the resolved severity after configuration overrides.
	Severity config.Severity

	// FilePath names the offending file.
	FilePath string

	// Position of the violation. Lines are 1-based, columns 0-based.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion optionally tells the user how to resolve the issue.
	Suggestion string

	// FixEdits carries the edits that would fix the issue, if any.
	FixEdits []fix.TextEdit
}

// HasFix reports whether the diagnostic carries fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// SourcePosition converts the diagnostic location for position helpers.
func (d *Diagnostic) SourcePosition() pysrc.SourcePosition {
	return pysrc.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Rule is a single style check. Implementations embed BaseRule for the
// descriptive methods and override Apply.
type Rule interface {
	// ID returns the stable rule identifier, for example "E501".
	ID() string

	// Name returns the readable rule name.
	Name() string

	// Description explains what the rule checks.
	Description() string

	// DefaultEnabled reports whether the rule runs without explicit
	// configuration.
	DefaultEnabled() bool

	// DefaultSeverity is the severity used when the configuration does
	// not override it.
	DefaultSeverity() config.Severity

	// Tags groups related rules, for example "whitespace".
	Tags() []string

	// CanFix reports whether the rule proposes auto-fix edits.
	CanFix() bool

	// Apply checks one file and returns its violations. Rules attach
	// fix edits through the diagnostic Builder when CanFix is true,
	// honor context cancellation, and reserve the error return for
	// internal failures rather than findings.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
