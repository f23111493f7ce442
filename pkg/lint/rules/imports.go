package rules

import (
	"fmt"
	"sort"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
)

// ImportOrderRule checks that import statements appear in alphabetical order.
type ImportOrderRule struct {
	lint.BaseRule
}

// NewImportOrderRule creates a new import order rule.
func NewImportOrderRule() *ImportOrderRule {
	return &ImportOrderRule{
		BaseRule: lint.NewBaseRule(
			"I100",
			"import-order",
			"Import statements should be in alphabetical order",
			[]string{"imports"},
			true,
		),
	}
}

// Apply compares the file's import statements against their sorted order.
//
// All imports in the file are sorted together regardless of blank lines or
// intervening code between them. Each line whose statement differs from the
// one at its sorted position is flagged, and the fix rewrites that line with
// the statement that belongs there. Applying every fix therefore sorts the
// whole sequence in a single pass. The rewritten line drops any leading
// indentation, mirroring the stripped statement text that is compared.
func (r *ImportOrderRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil || len(ctx.File.Imports) < 2 {
		return nil, nil
	}

	imports := ctx.File.Imports
	sortedTexts := make([]string, len(imports))
	for i, imp := range imports {
		sortedTexts[i] = imp.Text
	}
	sort.Strings(sortedTexts)

	var diags []lint.Diagnostic

	for i, imp := range imports {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule interrupted: %w", ctx.Ctx.Err())
		}

		if imp.Text == sortedTexts[i] {
			continue
		}

		builder := fix.NewEditBuilder()
		builder.ReplaceRange(imp.StartOffset, imp.EndOffset, sortedTexts[i])

		pos := pysrc.SourcePosition{
			StartLine:   imp.Line,
			StartColumn: 0,
			EndLine:     imp.Line,
			EndColumn:   imp.EndOffset - imp.StartOffset,
		}

		diag := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
			"Import statements are not in alphabetical order").
			WithSeverity(config.SeverityWarning).
			WithSuggestion(sortedTexts[i]).
			WithFix(builder).
			Build()
		diags = append(diags, diag)
	}

	return diags, nil
}
