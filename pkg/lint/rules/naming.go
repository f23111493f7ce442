package rules

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/lint"
)

// ClassNamingRule checks that class names use the CapWords convention.
type ClassNamingRule struct {
	lint.BaseRule
}

// NewClassNamingRule creates a new class naming rule.
func NewClassNamingRule() *ClassNamingRule {
	return &ClassNamingRule{
		BaseRule: lint.NewBaseRule(
			"N801",
			"class-naming",
			"Class names should use CapWords convention",
			[]string{"naming", "classes"},
			true,
		),
	}
}

// capWordsPattern matches CapWords class names: an uppercase letter followed
// by letters and digits, with no underscores.
var capWordsPattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)

// Apply checks every class definition name in the file.
func (r *ClassNamingRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for _, node := range ctx.Classes() {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule interrupted: %w", ctx.Ctx.Err())
		}

		name := node.Name
		if name == "" || capWordsPattern.MatchString(name) {
			continue
		}

		diagBuilder := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, lint.KeywordPosition(node),
			fmt.Sprintf("Class name %q should use CapWords convention", name)).
			WithSeverity(config.SeverityWarning)

		if fixed, ok := capitalizeFirst(name); ok && node.NameStart >= 0 {
			builder := fix.NewEditBuilder()
			builder.ReplaceByte(node.NameStart, fixed[0])
			diagBuilder = diagBuilder.
				WithSuggestion(fmt.Sprintf("Rename to %q", fixed)).
				WithFix(builder)
		} else {
			diagBuilder = diagBuilder.WithSuggestion("Use CapWords, for example MyClass")
		}

		diags = append(diags, diagBuilder.Build())
	}

	return diags, nil
}

// FunctionNamingRule checks that function names are lowercase with underscores.
type FunctionNamingRule struct {
	lint.BaseRule
}

// NewFunctionNamingRule creates a new function naming rule.
func NewFunctionNamingRule() *FunctionNamingRule {
	return &FunctionNamingRule{
		BaseRule: lint.NewBaseRule(
			"N802",
			"function-naming",
			"Function names should be lowercase with underscores",
			[]string{"naming", "functions"},
			true,
		),
	}
}

// snakeCasePattern matches lowercase function names: a lowercase letter or
// underscore followed by lowercase letters, digits, and underscores.
var snakeCasePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Apply checks every function definition name in the file, including methods
// and async functions.
func (r *FunctionNamingRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic

	for _, node := range ctx.Functions() {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule interrupted: %w", ctx.Ctx.Err())
		}

		name := node.Name
		if name == "" || snakeCasePattern.MatchString(name) {
			continue
		}

		diagBuilder := lint.NewDiagnosticAt(r.ID(), ctx.File.Path, lint.KeywordPosition(node),
			fmt.Sprintf("Function name %q should be lowercase", name)).
			WithSeverity(config.SeverityWarning)

		if fixed, ok := lowercaseFirst(name); ok && node.NameStart >= 0 {
			builder := fix.NewEditBuilder()
			builder.ReplaceByte(node.NameStart, fixed[0])
			diagBuilder = diagBuilder.
				WithSuggestion(fmt.Sprintf("Rename to %q", fixed)).
				WithFix(builder)
		} else {
			diagBuilder = diagBuilder.WithSuggestion("Use lowercase_with_underscores")
		}

		diags = append(diags, diagBuilder.Build())
	}

	return diags, nil
}

// capitalizeFirst uppercases the first character of name. It reports false
// when the first character is not a lowercase ASCII letter, so no-op edits
// are never emitted.
func capitalizeFirst(name string) (string, bool) {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return name, false
	}
	return string(name[0]-'a'+'A') + name[1:], true
}

// lowercaseFirst lowercases the first character of name. It reports false
// when the first character is not an uppercase ASCII letter.
func lowercaseFirst(name string) (string, bool) {
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		return name, false
	}
	return string(name[0]-'A'+'a') + name[1:], true
}
