package rules

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// MaxLineLengthRule flags lines running past the configured limit (E501).
type MaxLineLengthRule struct {
	lint.BaseRule
}

// NewMaxLineLengthRule returns the E501 rule.
func NewMaxLineLengthRule() *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: lint.NewBaseRule(
			"E501",
			"line-too-long",
			"Lines should not exceed the configured maximum length",
			[]string{"line_length"},
			false, // No safe auto-fix; splitting statements changes semantics.
		),
	}
}

const defaultMaxLineLength = 100

// Apply measures every line against the limit.
//
// Trailing whitespace does not count toward the length, so a line that only
// exceeds the limit because of trailing blanks is left to the trailing
// whitespace rule.
func (r *MaxLineLengthRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil || len(ctx.File.Lines) == 0 {
		return nil, nil
	}

	maxLength := ctx.OptionInt("max_length", defaultMaxLineLength)
	if maxLength <= 0 {
		maxLength = defaultMaxLineLength
	}

	var diags []lint.Diagnostic

	for ln := 1; ln <= len(ctx.File.Lines); ln++ {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule interrupted: %w", ctx.Ctx.Err())
		}

		line := lint.LineContent(ctx.File, ln)
		// Length counts characters, not bytes, so multibyte text is not
		// penalized.
		length := utf8.RuneCount(bytes.TrimRight(line, " \t\v\f\r"))
		if length <= maxLength {
			continue
		}

		pos := pysrc.SourcePosition{
			StartLine:   ln,
			StartColumn: maxLength,
			EndLine:     ln,
			EndColumn:   length,
		}

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("Line too long (exceeds %d characters)", maxLength)).
			WithSeverity(config.SeverityWarning).
			WithSuggestion(fmt.Sprintf("Shorten the line to at most %d characters", maxLength)).
			Build()
		diags = append(diags, diag)
	}

	return diags, nil
}
