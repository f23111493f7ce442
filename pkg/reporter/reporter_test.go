package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/reporter"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// outcomeWith wraps diagnostics in the nested per-file result shape
// the runner produces.
func outcomeWith(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			FileResult: &lint.FileResult{Diagnostics: diags},
		},
	}
}

func whitespaceDiag() lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:    "W291",
		RuleName:  "trailing-whitespace",
		Message:   "Trailing whitespace",
		Severity:  config.SeverityWarning,
		FilePath:  "app.py",
		StartLine: 1,
	}
}

// sampleResult holds one file with an error and a warning.
func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			outcomeWith("app.py",
				lint.Diagnostic{
					RuleID:      "E501",
					Message:     "Line too long (exceeds 100 characters)",
					Severity:    config.SeverityError,
					FilePath:    "app.py",
					StartLine:   5,
					StartColumn: 100,
					EndLine:     5,
					EndColumn:   132,
					Suggestion:  "Break the line into shorter statements",
				},
				lint.Diagnostic{
					RuleID:      "W291",
					Message:     "Trailing whitespace",
					Severity:    config.SeverityWarning,
					FilePath:    "app.py",
					StartLine:   10,
					StartColumn: 24,
					EndLine:     10,
					EndColumn:   27,
				},
			),
		},
		Stats: runner.Stats{
			FilesDiscovered:  1,
			FilesProcessed:   1,
			FilesWithIssues:  1,
			IssuesTotal:      2,
			IssuesBySeverity: map[string]int{"error": 1, "warning": 1},
		},
	}
}

// capture returns a buffer and options that write plain text into it.
func capture() (*bytes.Buffer, reporter.Options) {
	var buf bytes.Buffer
	return &buf, reporter.Options{Writer: &buf, Color: "never"}
}

// allFormats lists every valid output format, shared by the format tests.
var allFormats = []reporter.Format{
	reporter.FormatText,
	reporter.FormatTable,
	reporter.FormatJSON,
	reporter.FormatReport,
	reporter.FormatSARIF,
	reporter.FormatDiff,
	reporter.FormatSummary,
}

func TestParseFormat(t *testing.T) {
	// The empty string parses as the default text format; everything
	// else parses as itself.
	got, err := reporter.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, reporter.FormatText, got)

	for _, want := range allFormats {
		got, err := reporter.ParseFormat(string(want))
		require.NoError(t, err, "ParseFormat(%q)", want)
		assert.Equal(t, want, got)
	}

	_, err = reporter.ParseFormat("xml")
	require.Error(t, err)
}

func TestFormat_IsValid(t *testing.T) {
	for _, format := range allFormats {
		assert.True(t, format.IsValid(), "IsValid(%q)", format)
	}

	assert.False(t, reporter.Format("unknown").IsValid())
	assert.False(t, reporter.Format("").IsValid())
}

func TestNew(t *testing.T) {
	// Every valid format, plus the empty default, yields a reporter.
	for _, format := range append([]reporter.Format{""}, allFormats...) {
		_, opts := capture()
		opts.Format = format

		rep, err := reporter.New(opts)
		require.NoError(t, err, "New(%q)", format)
		assert.NotNil(t, rep)
	}

	rep, err := reporter.New(reporter.Options{Format: "xml"})
	require.Error(t, err)
	require.Nil(t, rep)
}

func TestTextReporter_NilResult(t *testing.T) {
	buf, opts := capture()
	opts.ShowSummary = true

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to check")
}

func TestTextReporter_EmptyResult(t *testing.T) {
	_, opts := capture()
	opts.ShowSummary = true

	result := &runner.Result{
		Files: []runner.FileOutcome{},
		Stats: runner.Stats{
			IssuesBySeverity: make(map[string]int),
		},
	}

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestTextReporter_WithDiagnostics(t *testing.T) {
	buf, opts := capture()
	opts.ShowSummary = true
	opts.GroupByFile = true

	count, err := reporter.NewTextReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	output := buf.String()
	assert.Contains(t, output, "app.py")
	assert.Contains(t, output, "E501")
	assert.Contains(t, output, "error")
	assert.Contains(t, output, "2 issues")
}

func TestTextReporter_RuleFormat(t *testing.T) {
	buf, opts := capture()
	opts.RuleFormat = config.RuleFormatName

	result := &runner.Result{Files: []runner.FileOutcome{outcomeWith("app.py", whitespaceDiag())}}

	_, err := reporter.NewTextReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "trailing-whitespace")
	assert.NotContains(t, buf.String(), "W291")
}

func TestJSONReporter_NilResult(t *testing.T) {
	buf, opts := capture()

	count, err := reporter.NewJSONReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Even with nothing to report the document parses.
	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "1.0.0", output.Version)
	assert.Empty(t, output.Files)
}

func TestJSONReporter_WithDiagnostics(t *testing.T) {
	buf, opts := capture()

	count, err := reporter.NewJSONReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var output reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0.0", output.Version)
	assert.Len(t, output.Files, 1)
	assert.Len(t, output.Files[0].Diagnostics, 2)
	assert.Equal(t, 2, output.Summary.TotalIssues)
	assert.Equal(t, 1, output.Summary.FilesWithIssues)
	assert.Equal(t, map[string]int{"error": 1, "warning": 1}, output.Summary.BySeverity)
}

func TestJSONReporter_IncludesRuleName(t *testing.T) {
	buf, opts := capture()
	result := &runner.Result{Files: []runner.FileOutcome{outcomeWith("app.py", whitespaceDiag())}}

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"ruleId": "W291"`)
	assert.Contains(t, buf.String(), `"ruleName": "trailing-whitespace"`)
}

func TestJSONReporter_Compact(t *testing.T) {
	buf, opts := capture()
	opts.Compact = true

	_, err := reporter.NewJSONReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
}

func TestSARIFReporter_IncludesRuleName(t *testing.T) {
	buf, opts := capture()
	result := &runner.Result{Files: []runner.FileOutcome{outcomeWith("app.py", whitespaceDiag())}}

	_, err := reporter.NewSARIFReporter(opts).Report(context.Background(), result)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "trailing-whitespace")
	assert.Contains(t, output, "W291")
}

func TestDiffReporter_NilResult(t *testing.T) {
	buf, opts := capture()

	count, err := reporter.NewDiffReporter(opts).Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, buf.String())
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	_, opts := capture()

	// sampleResult carries diagnostics but no pending diffs.
	count, err := reporter.NewDiffReporter(opts).Report(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDefaultOptions(t *testing.T) {
	opts := reporter.DefaultOptions()

	assert.NotNil(t, opts.Writer)
	assert.NotNil(t, opts.ErrorWriter)
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.True(t, opts.GroupByFile)
	assert.False(t, opts.Compact)
	assert.Equal(t, config.RuleFormatID, opts.RuleFormat)
}
