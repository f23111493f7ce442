package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// IndentationRule checks that indentation is a multiple of the indent size.
type IndentationRule struct {
	lint.BaseRule
}

// NewIndentationRule creates a new indentation rule.
func NewIndentationRule() *IndentationRule {
	return &IndentationRule{
		BaseRule: lint.NewBaseRule(
			"E111",
			"indentation",
			"Indentation should be a multiple of the configured indent size",
			[]string{"indentation"},
			true,
		),
	}
}

// defaultIndentSize is the default indentation unit in spaces.
const defaultIndentSize = 4

// Apply checks the leading whitespace of every non-blank line.
//
// The fix rounds the indentation down to the nearest multiple of the indent
// size and normalizes tabs to spaces in the process. Each tab counts as a
// single character, matching how the line's leading whitespace is measured.
func (r *IndentationRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	indentSize := ctx.OptionInt("indent_size", defaultIndentSize)
	if indentSize <= 0 {
		indentSize = defaultIndentSize
	}

	var diags []lint.Diagnostic

	for ln := 1; ln <= len(ctx.File.Lines); ln++ {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule interrupted: %w", ctx.Ctx.Err())
		}

		if lint.IsBlankLine(ctx.File, ln) {
			continue
		}

		width := lint.LeadingWhitespaceWidth(ctx.File, ln)
		if width%indentSize == 0 {
			continue
		}

		correctedWidth := (width / indentSize) * indentSize

		start, end := lint.LeadingWhitespaceRange(ctx.File, ln)
		if start < 0 || end <= start {
			continue
		}

		indent := strings.Repeat(" ", correctedWidth)
		builder := fix.NewEditBuilder()
		builder.ReplaceRange(start, end, indent)

		pos := pysrc.SourcePosition{
			StartLine:   ln,
			StartColumn: 0,
			EndLine:     ln,
			EndColumn:   width,
		}

		// The suggestion is the whole corrected line: the rounded-down
		// indent with the original content after it.
		info := ctx.File.Lines[ln-1]
		rest := string(ctx.File.Content[end:info.NewlineStart])

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			fmt.Sprintf("Indentation is not a multiple of %d", indentSize)).
			WithSeverity(config.SeverityWarning).
			WithSuggestion(indent + rest).
			WithFix(builder).
			Build()
		diags = append(diags, diag)
	}

	return diags, nil
}
