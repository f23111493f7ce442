package lint

import (
	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// DiagnosticBuilder assembles a Diagnostic step by step.
type DiagnosticBuilder struct {
	diag Diagnostic
}

func builderAt(ruleID, filePath string, pos pysrc.SourcePosition, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   pos.StartLine,
			StartColumn: pos.StartColumn,
			EndLine:     pos.EndLine,
			EndColumn:   pos.EndColumn,
		},
	}
}

// NewDiagnostic begins a diagnostic anchored to a node. A nil node
// leaves the position zeroed.
func NewDiagnostic(ruleID string, node *pysrc.Node, message string) *DiagnosticBuilder {
	if node == nil {
		return builderAt(ruleID, "", pysrc.SourcePosition{}, message)
	}

	var filePath string
	if node.File != nil {
		filePath = node.File.Path
	}
	return builderAt(ruleID, filePath, node.SourcePosition(), message)
}

// NewDiagnosticAt begins a diagnostic at an explicit position.
func NewDiagnosticAt(ruleID, filePath string, pos pysrc.SourcePosition, message string) *DiagnosticBuilder {
	return builderAt(ruleID, filePath, pos, message)
}

// NewDiagnosticAtWithRegistry is NewDiagnosticAt plus the rule name
// resolved through the registry.
func NewDiagnosticAtWithRegistry(ruleID, filePath string, pos pysrc.SourcePosition, message string, reg *Registry) *DiagnosticBuilder {
	b := builderAt(ruleID, filePath, pos, message)
	if reg != nil {
		if rule, ok := reg.GetByID(ruleID); ok {
			b.diag.RuleName = rule.Name()
		}
	}
	return b
}

// WithSeverity overrides the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion attaches a human-readable remediation hint.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix appends the edits collected by an EditBuilder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit appends one edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the finished Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
