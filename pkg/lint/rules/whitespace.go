package rules

import (
	"fmt"
	"regexp"
	"unicode"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// TrailingWhitespaceRule flags lines ending in spaces or tabs (W291).
type TrailingWhitespaceRule struct {
	lint.BaseRule
}

// NewTrailingWhitespaceRule returns the W291 rule.
func NewTrailingWhitespaceRule() *TrailingWhitespaceRule {
	return &TrailingWhitespaceRule{
		BaseRule: lint.NewBaseRule(
			"W291",
			"trailing-whitespace",
			"Lines should not have trailing whitespace",
			[]string{"whitespace"},
			true,
		),
	}
}

// Apply scans every line for trailing whitespace.
func (r *TrailingWhitespaceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for ln := 1; ln <= len(ctx.File.Lines); ln++ {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule interrupted: %w", ctx.Ctx.Err())
		}

		start, end := lint.TrailingWhitespaceRange(ctx.File, ln)
		if start < 0 {
			continue
		}

		// The fix deletes the whitespace run outright.
		builder := fix.NewEditBuilder()
		builder.Delete(start, end)

		// Columns anchor where the run begins, not at line start.
		info := ctx.File.Lines[ln-1]
		pos := pysrc.SourcePosition{
			StartLine:   ln,
			StartColumn: start - info.StartOffset,
			EndLine:     ln,
			EndColumn:   end - info.StartOffset,
		}

		trimmed := string(ctx.File.Content[info.StartOffset:start])

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos, "Trailing whitespace").
			WithSeverity(config.SeverityWarning).
			WithSuggestion(trimmed).
			WithFix(builder).
			Build()
		diags = append(diags, diag)
	}

	return diags, nil
}

// OperatorSpacingRule checks that binary operators are surrounded by whitespace.
type OperatorSpacingRule struct {
	lint.BaseRule
}

// NewOperatorSpacingRule creates a new operator spacing rule.
func NewOperatorSpacingRule() *OperatorSpacingRule {
	return &OperatorSpacingRule{
		BaseRule: lint.NewBaseRule(
			"E225",
			"missing-whitespace-around-operator",
			"Operators should be surrounded by whitespace",
			[]string{"whitespace", "operators"},
			true,
		),
	}
}

// operatorPattern matches arithmetic and comparison operators, preferring
// two-character forms (==, !=, <=, >=, +=, -=, *=, /=) over single characters.
var operatorPattern = regexp.MustCompile(`[+\-*/=<>!]=?|[+\-*/]`)

// Apply checks each operator occurrence for surrounding whitespace.
//
// An operator passes only when it has a whitespace character on both sides
// within the line. Operators at the very start or end of a line always fail,
// which intentionally flags unary forms like the minus in "-x". The fix
// rewrites the whole line with every operator occurrence padded, so only the
// first failing occurrence on a line carries the edit.
func (r *OperatorSpacingRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for ln := 1; ln <= len(ctx.File.Lines); ln++ {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule interrupted: %w", ctx.Ctx.Err())
		}

		line := lint.LineContent(ctx.File, ln)
		if len(line) == 0 {
			continue
		}

		matches := operatorPattern.FindAllIndex(line, -1)
		if matches == nil {
			continue
		}

		// Every diagnostic on the line suggests the same corrected text:
		// the whole line with each operator occurrence padded.
		corrected := operatorPattern.ReplaceAllString(string(line), " ${0} ")

		lineCarriesFix := false
		for _, match := range matches {
			start, end := match[0], match[1]
			if start > 0 && end < len(line) &&
				isSpaceByte(line[start-1]) && isSpaceByte(line[end]) {
				continue
			}

			info := ctx.File.Lines[ln-1]
			pos := pysrc.SourcePosition{
				StartLine:   ln,
				StartColumn: start,
				EndLine:     ln,
				EndColumn:   end,
			}

			diagBuilder := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				"Missing whitespace around operator").
				WithSeverity(config.SeverityWarning).
				WithSuggestion(corrected)

			if !lineCarriesFix {
				builder := fix.NewEditBuilder()
				builder.ReplaceRange(info.StartOffset, info.NewlineStart, corrected)
				diagBuilder = diagBuilder.WithFix(builder)
				lineCarriesFix = true
			}

			diags = append(diags, diagBuilder.Build())
		}
	}

	return diags, nil
}

// isSpaceByte reports whether b is an ASCII whitespace character.
func isSpaceByte(b byte) bool {
	return b < 0x80 && unicode.IsSpace(rune(b))
}
