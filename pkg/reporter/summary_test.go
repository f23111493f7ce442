package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopystyle/pkg/analysis"
	"github.com/yaklabco/gopystyle/pkg/config"
)

// renderSummary renders report with color disabled and returns the
// output.
func renderSummary(t *testing.T, opts Options, report *analysis.Report) string {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	opts.Color = "never"

	require.NoError(t, NewSummaryRenderer(opts).Render(context.Background(), report))
	return buf.String()
}

func TestSummaryRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, Options{}, &analysis.Report{})
	assert.Contains(t, output, "No issues found")
}

func TestSummaryRenderer_ShowsBothTables(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{Code: "W291", Name: "trailing-whitespace", Issues: 6, Errors: 2, Warnings: 4, Fixable: true},
			{Code: "E501", Name: "line-too-long", Issues: 3, Errors: 3, Fixable: false},
		},
		ByFile: []analysis.FileAnalysis{{Path: "app.py", Issues: 9, Errors: 5, Warnings: 4}},
		Totals: analysis.Totals{Issues: 9, Errors: 5, Warnings: 4, Files: 1, FilesWithIssues: 1},
	}

	output := renderSummary(t, Options{SummaryOrder: config.SummaryOrderRules}, report)
	assert.Contains(t, output, "trailing-whitespace")
	assert.Contains(t, output, "line-too-long")
	assert.Contains(t, output, "app.py")

	rules := strings.Index(output, "Rules Summary")
	files := strings.Index(output, "Files Summary")
	require.GreaterOrEqual(t, rules, 0, "rules table missing")
	assert.Less(t, rules, files, "rules table leads in the default order")
}

func TestSummaryRenderer_FilesFirstOrder(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		ByRule: []analysis.RuleAnalysis{{Code: "W291", Name: "trailing-whitespace", Issues: 2}},
		ByFile: []analysis.FileAnalysis{{Path: "util.py", Issues: 2}},
		Totals: analysis.Totals{Issues: 2, Files: 1, FilesWithIssues: 1},
	}

	output := renderSummary(t, Options{SummaryOrder: config.SummaryOrderFiles}, report)

	files := strings.Index(output, "Files Summary")
	require.GreaterOrEqual(t, files, 0, "files table missing")
	assert.Greater(t, strings.Index(output, "Rules Summary"), files, "files table leads under SummaryOrderFiles")
}

func TestSummaryRenderer_ShowsTotals(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		Totals: analysis.Totals{Issues: 12, Errors: 7, Warnings: 5, Files: 6, FilesWithIssues: 4},
	}

	output := renderSummary(t, Options{}, report)
	assert.Contains(t, output, "12 issues")
	assert.Contains(t, output, "7 errors")
	assert.Contains(t, output, "5 warnings")
	assert.Contains(t, output, "in 4 files")
}

func TestSummaryRenderer_FixableIndicator(t *testing.T) {
	t.Parallel()

	rules := []analysis.RuleAnalysis{
		{Code: "W291", Name: "fixable-rule", Issues: 1, Fixable: true},
		{Code: "E501", Name: "not-fixable", Issues: 1, Fixable: false},
	}
	output := renderSummary(t, Options{}, &analysis.Report{ByRule: rules, Totals: analysis.Totals{Issues: 2}})
	assert.Contains(t, output, "✓")
}

func TestPadHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab   ", rpad("ab", 5))
	assert.Equal(t, "   ab", lpad("ab", 5))
	assert.Equal(t, "abcdef", rpad("abcdef", 5))
	assert.Equal(t, "abcdef", lpad("abcdef", 5))
}
