package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/fix"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/parser/pyscan"
)

// ruleCase drives one rule over one source: the source in, the expected
// diagnostic count, and the text the attached fixes must produce.
type ruleCase struct {
	name       string
	input      string
	wantIssues int
	wantFixed  string
	config     map[string]any
}

// applyRule parses input as test.py and runs a single rule over it.
// options, when non-nil, becomes the rule's per-rule configuration.
func applyRule(t *testing.T, rule lint.Rule, input string, options map[string]any) []lint.Diagnostic {
	t.Helper()

	snapshot, err := pyscan.New().Parse(context.Background(), "test.py", []byte(input))
	require.NoError(t, err)

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}
	ruleCtx := lint.NewRuleContext(context.Background(), snapshot, config.NewConfig(), ruleCfg)

	diags, err := rule.Apply(ruleCtx)
	require.NoError(t, err)
	return diags
}

// applyFixes applies every edit the diagnostics carry to input.
func applyFixes(t *testing.T, input string, diags []lint.Diagnostic) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	prepared, err := fix.PrepareEdits(edits, len(input))
	require.NoError(t, err)
	return string(fix.ApplyEdits([]byte(input), prepared))
}

// runFixableRuleCases checks each case's diagnostic count, applies the
// attached edits against wantFixed, and re-runs the rule over the fixed
// text to prove the fix leaves nothing behind.
func runFixableRuleCases(t *testing.T, rule lint.Rule, cases []ruleCase) {
	t.Helper()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			diags := applyRule(t, rule, tt.input, tt.config)
			assert.Len(t, diags, tt.wantIssues)

			if tt.wantIssues == 0 {
				return
			}

			fixed := applyFixes(t, tt.input, diags)
			assert.Equal(t, tt.wantFixed, fixed)

			assert.Empty(t, applyRule(t, rule, fixed, tt.config), "fix should be idempotent")
		})
	}
}
