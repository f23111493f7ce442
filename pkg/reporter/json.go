package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

const (
	// jsonOutputVersion is the schema version stamped on every document.
	jsonOutputVersion = "1.0.0"

	// severityWarning is the severity bucket for diagnostics that carry
	// no explicit severity.
	severityWarning = "warning"
)

// JSONOutput is the document root of the machine-readable report.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult carries one file's diagnostics and outcome.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Modified    bool             `json:"modified,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is the wire form of a single diagnostic.
type JSONDiagnostic struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixable     bool      `json:"fixable"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix is the wire form of a proposed edit.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary rolls the run up into counts.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter emits machine-readable JSON.
type JSONReporter struct {
	opts Options
	buf  *bufio.Writer
}

// NewJSONReporter builds the machine-readable reporter. Output is one
// JSON document, indented unless Compact is set.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		buf:  bufio.NewWriterSize(opts.Writer, writerBufSize),
	}
}

// Report renders the whole run as one JSON document.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flushInto(r.buf, &err)

	doc := r.buildOutput(result)

	enc := json.NewEncoder(r.buf)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("write JSON report: %w", err)
	}

	return doc.Summary.TotalIssues, nil
}

// buildOutput assembles the document, keeping Files and Diagnostics
// non-nil so they serialize as [] rather than null.
func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	doc := &JSONOutput{
		Version: jsonOutputVersion,
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: map[string]int{}},
	}
	if result == nil {
		return doc
	}

	doc.Files = make([]JSONFileResult, 0, len(result.Files))
	for idx := range result.Files {
		file := &result.Files[idx]
		converted := jsonFile(file)

		if file.Error != nil {
			doc.Summary.FilesErrored++
		}
		for _, diag := range converted.Diagnostics {
			doc.Summary.BySeverity[severityOrDefault(diag.Severity)]++
		}
		doc.Summary.TotalIssues += len(converted.Diagnostics)
		if len(converted.Diagnostics) > 0 {
			doc.Summary.FilesWithIssues++
		}
		if converted.Modified {
			doc.Summary.FilesModified++
		}

		doc.Files = append(doc.Files, converted)
	}
	doc.Summary.FilesChecked = len(result.Files)

	return doc
}

// jsonFile converts one outcome. Summary bookkeeping stays with the
// caller.
func jsonFile(file *runner.FileOutcome) JSONFileResult {
	converted := JSONFileResult{
		Path:        file.Path,
		Diagnostics: []JSONDiagnostic{},
	}
	if file.Error != nil {
		converted.Error = file.Error.Error()
	}
	if file.Result == nil {
		return converted
	}

	converted.Modified = file.Result.Written
	if file.Result.FileResult == nil {
		return converted
	}
	for idx := range file.Result.Diagnostics {
		converted.Diagnostics = append(converted.Diagnostics, jsonDiagnostic(&file.Result.Diagnostics[idx]))
	}

	return converted
}

func jsonDiagnostic(diag *lint.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(diag.Severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     len(diag.FixEdits) > 0,
	}

	for _, edit := range diag.FixEdits {
		out.Fixes = append(out.Fixes, JSONFix{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}

	return out
}

func severityOrDefault(s string) string {
	if s == "" {
		return severityWarning
	}
	return s
}
