package analysis

import "time"

// Report holds every view of a lint run that a renderer might need.
// Analyze computes it once; text, JSON, and summary output all read from
// the same report.
type Report struct {
	// Diagnostics is the flat per-diagnostic list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty"`

	// ByFile aggregates diagnostics per file path.
	ByFile []FileAnalysis `json:"files,omitempty"`

	// ByRule aggregates diagnostics per check code.
	ByRule []RuleAnalysis `json:"rules,omitempty"`

	// Totals carries the run-wide counters.
	Totals Totals `json:"totals"`

	// Version identifies the report format.
	Version string `json:"version"`

	// Timestamp records when the analysis ran.
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic in report form. Code is the
// pycodestyle-style check code ("E501"), RuleName its registry name.
type DiagnosticEntry struct {
	File        string     `json:"file"`
	Code        string     `json:"code"`
	RuleName    string     `json:"rule,omitempty"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	StartLine   int        `json:"line"`
	StartColumn int        `json:"column"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	Suggestion  string     `json:"suggestion,omitempty"`
	Fixable     bool       `json:"fixable"`
	Fixes       []FixEntry `json:"fixes,omitempty"`
}

// FixEntry is one proposed text edit in report form. Offsets are byte
// positions into the original file content.
type FixEntry struct {
	StartOffset int    `json:"start"`
	EndOffset   int    `json:"end"`
	NewText     string `json:"text"`
}

// Totals carries the run-wide counters.
type Totals struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"filesWithIssues"`
	Issues          int `json:"issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
}

// HasIssues reports whether any diagnostics were recorded.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any error-severity diagnostics were recorded.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis aggregates one file's diagnostics.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates the diagnostics of one check code across
// the run.
type RuleAnalysis struct {
	Code     string   `json:"code"`
	Name     string   `json:"name,omitempty"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Infos    int      `json:"infos"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
