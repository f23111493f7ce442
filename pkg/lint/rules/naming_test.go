package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
)

// runNamingRule applies rule to input, applies any fix edits, and verifies
// that a second application of the rule produces no further edits. Rename
// fixes only adjust the first character, so a diagnostic may legitimately
// remain after fixing; wantClean states whether the fixed source passes.
func runNamingRule(t *testing.T, rule lint.Rule, input string, wantIssues int, wantFixed string, wantClean bool) {
	t.Helper()

	diags := applyRule(t, rule, input, nil)
	assert.Len(t, diags, wantIssues)

	if wantIssues == 0 {
		return
	}

	fixed := applyFixes(t, input, diags)
	assert.Equal(t, wantFixed, fixed)

	diags2 := applyRule(t, rule, fixed, nil)
	if wantClean {
		assert.Empty(t, diags2, "fixed source should pass the rule")
		return
	}

	// The remaining diagnostics must not offer more edits, or repeated
	// fixing would never converge.
	for _, d := range diags2 {
		assert.False(t, d.HasFix(), "fix should converge after one application")
	}
}

func TestClassNamingRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIssues int
		wantFixed   string
		wantClean bool
	}{
		{
			name:       "capwords name",
			input:      "class Shape:\n    pass\n",
			wantIssues: 0,
		},
		{
			name:       "multi word capwords name",
			input:      "class HttpClient:\n    pass\n",
			wantIssues: 0,
		},
		{
			name:       "lowercase name",
			input:      "class shape:\n    pass\n",
			wantIssues: 1,
			wantFixed:  "class Shape:\n    pass\n",
			wantClean:  true,
		},
		{
			name:       "underscore in name",
			input:      "class My_Class:\n    pass\n",
			wantIssues: 1,
			wantFixed:  "class My_Class:\n    pass\n",
			wantClean:  false,
		},
		{
			name:       "lowercase with underscore",
			input:      "class my_class:\n    pass\n",
			wantIssues: 1,
			wantFixed:  "class My_class:\n    pass\n",
			wantClean:  false,
		},
		{
			name:       "two bad classes",
			input:      "class alpha:\n    pass\nclass beta:\n    pass\n",
			wantIssues: 2,
			wantFixed:  "class Alpha:\n    pass\nclass Beta:\n    pass\n",
			wantClean:  true,
		},
		{
			name:       "nested class",
			input:      "class Outer:\n    class inner:\n        pass\n",
			wantIssues: 1,
			wantFixed:  "class Outer:\n    class Inner:\n        pass\n",
			wantClean:  true,
		},
		{
			name:       "empty file",
			input:      "",
			wantIssues: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runNamingRule(t, NewClassNamingRule(), tt.input, tt.wantIssues, tt.wantFixed, tt.wantClean)
		})
	}
}

func TestClassNamingRule_Diagnostic(t *testing.T) {
	diags := applyRule(t, NewClassNamingRule(), "class shape:\n    pass\n", nil)
	require.Len(t, diags, 1)

	// The position points at the class keyword.
	assert.Equal(t, 1, diags[0].StartLine)
	assert.Equal(t, 0, diags[0].StartColumn)
	assert.Equal(t, `Class name "shape" should use CapWords convention`, diags[0].Message)
	assert.Equal(t, `Rename to "Shape"`, diags[0].Suggestion)
}

func TestFunctionNamingRule(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIssues int
		wantFixed   string
		wantClean bool
	}{
		{
			name:       "lowercase name",
			input:      "def process():\n    pass\n",
			wantIssues: 0,
		},
		{
			name:       "snake case name",
			input:      "def process_data():\n    pass\n",
			wantIssues: 0,
		},
		{
			name:       "dunder name",
			input:      "def __init__(self):\n    pass\n",
			wantIssues: 0,
		},
		{
			name:       "uppercase start",
			input:      "def Process():\n    pass\n",
			wantIssues: 1,
			wantFixed:  "def process():\n    pass\n",
			wantClean:  true,
		},
		{
			name:       "camel case",
			input:      "def getData():\n    pass\n",
			wantIssues: 1,
			wantFixed:  "def getData():\n    pass\n",
			wantClean:  false,
		},
		{
			name:       "uppercase camel case converges",
			input:      "def BadName():\n    pass\n",
			wantIssues: 1,
			wantFixed:  "def badName():\n    pass\n",
			wantClean:  false,
		},
		{
			// Only the first character is lowered; the rest of the
			// name is reported but left alone.
			name:       "all caps name",
			input:      "def BAD_FUNCTION_NAME():\n    pass\n",
			wantIssues: 1,
			wantFixed:  "def bAD_FUNCTION_NAME():\n    pass\n",
			wantClean:  false,
		},
		{
			name:       "async function is checked",
			input:      "async def Fetch():\n    pass\n",
			wantIssues: 1,
			wantFixed:  "async def fetch():\n    pass\n",
			wantClean:  true,
		},
		{
			name:       "method is checked",
			input:      "class Widget:\n    def Render(self):\n        pass\n",
			wantIssues: 1,
			wantFixed:  "class Widget:\n    def render(self):\n        pass\n",
			wantClean:  true,
		},
		{
			name:       "empty file",
			input:      "",
			wantIssues: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runNamingRule(t, NewFunctionNamingRule(), tt.input, tt.wantIssues, tt.wantFixed, tt.wantClean)
		})
	}
}

func TestFunctionNamingRule_Diagnostic(t *testing.T) {
	diags := applyRule(t, NewFunctionNamingRule(), "class Widget:\n    def Render(self):\n        pass\n", nil)
	require.Len(t, diags, 1)

	// The position points at the def keyword's line and column.
	assert.Equal(t, 2, diags[0].StartLine)
	assert.Equal(t, 4, diags[0].StartColumn)
	assert.Equal(t, `Function name "Render" should be lowercase`, diags[0].Message)
	assert.Equal(t, `Rename to "render"`, diags[0].Suggestion)
}

func TestClassNamingRule_Metadata(t *testing.T) {
	rule := NewClassNamingRule()

	assert.Equal(t, "N801", rule.ID())
	assert.Equal(t, "class-naming", rule.Name())
	assert.Contains(t, rule.Tags(), "naming")
	assert.Contains(t, rule.Tags(), "classes")
	assert.True(t, rule.CanFix())
	assert.True(t, rule.DefaultEnabled())
	assert.Equal(t, config.SeverityWarning, rule.DefaultSeverity())
}

func TestFunctionNamingRule_Metadata(t *testing.T) {
	rule := NewFunctionNamingRule()

	assert.Equal(t, "N802", rule.ID())
	assert.Equal(t, "function-naming", rule.Name())
	assert.Contains(t, rule.Tags(), "naming")
	assert.Contains(t, rule.Tags(), "functions")
	assert.True(t, rule.CanFix())
	assert.True(t, rule.DefaultEnabled())
	assert.Equal(t, config.SeverityWarning, rule.DefaultSeverity())
}
