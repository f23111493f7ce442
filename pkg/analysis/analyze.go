package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// ReportVersion stamps every report so consumers can detect format changes.
const ReportVersion = "1.0.0"

const (
	severityError   = "error"
	severityWarning = "warning"
	severityInfo    = "info"
)

// displayPath rebases abs onto workDir for presentation. The absolute
// path is kept when no working directory is known or rebasing fails.
func displayPath(abs, workDir string) string {
	if workDir == "" {
		return abs
	}
	rel, err := filepath.Rel(workDir, abs)
	if err != nil {
		return abs
	}
	return rel
}

// normalizeSeverity fills in the default severity for diagnostics that
// carry none.
func normalizeSeverity(sev string) string {
	if sev == "" {
		return severityWarning
	}
	return sev
}

// tally accumulates per-rule and per-file aggregates during the single
// pass over diagnostics.
type tally struct {
	rules       map[string]*RuleAnalysis
	files       map[string]*FileAnalysis
	ruleToFiles map[string]map[string]bool
	fileToRules map[string]map[string]bool
}

func newTally() *tally {
	return &tally{
		rules:       make(map[string]*RuleAnalysis),
		files:       make(map[string]*FileAnalysis),
		ruleToFiles: make(map[string]map[string]bool),
		fileToRules: make(map[string]map[string]bool),
	}
}

func (t *tally) fileEntry(path string) *FileAnalysis {
	fa, ok := t.files[path]
	if !ok {
		fa = &FileAnalysis{Path: path}
		t.files[path] = fa
		t.fileToRules[path] = make(map[string]bool)
	}
	return fa
}

func (t *tally) ruleEntry(ruleID, ruleName string) *RuleAnalysis {
	ra, ok := t.rules[ruleID]
	if !ok {
		ra = &RuleAnalysis{Code: ruleID, Name: ruleName}
		t.rules[ruleID] = ra
		t.ruleToFiles[ruleID] = make(map[string]bool)
	}
	return ra
}

// record folds a single diagnostic into the totals and both aggregates.
func (t *tally) record(path string, diag *lint.Diagnostic, totals *Totals) {
	totals.Issues++
	severity := normalizeSeverity(string(diag.Severity))
	fixable := len(diag.FixEdits) > 0
	if fixable {
		totals.Fixable++
	}

	fa := t.fileEntry(path)
	fa.Issues++
	t.fileToRules[path][diag.RuleID] = true

	ra := t.ruleEntry(diag.RuleID, diag.RuleName)
	ra.Issues++
	if fixable {
		ra.Fixable = true
	}
	t.ruleToFiles[diag.RuleID][path] = true

	switch severity {
	case severityError:
		totals.Errors++
		fa.Errors++
		ra.Errors++
	case severityWarning:
		totals.Warnings++
		fa.Warnings++
		ra.Warnings++
	case severityInfo:
		totals.Infos++
		fa.Infos++
		ra.Infos++
	}
}

// byRule flattens the per-rule aggregates into a sorted slice.
func (t *tally) byRule(opts Options) []RuleAnalysis {
	out := make([]RuleAnalysis, 0, len(t.rules))
	for ruleID, ra := range t.rules {
		for f := range t.ruleToFiles[ruleID] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		out = append(out, *ra)
	}

	slices.SortFunc(out, func(left, right RuleAnalysis) int {
		switch opts.SortBy {
		case SortByAlpha:
			return cmp.Compare(left.Code, right.Code)
		case SortBySeverity:
			return severityCmp(left.Errors, left.Warnings, left.Issues,
				right.Errors, right.Warnings, right.Issues)
		default:
			return countCmp(left.Issues, right.Issues, opts.SortDesc)
		}
	})
	return out
}

// byFile flattens the per-file aggregates, dropping clean files.
func (t *tally) byFile(opts Options) []FileAnalysis {
	var out []FileAnalysis
	for path, fa := range t.files {
		if fa.Issues == 0 {
			continue
		}
		for r := range t.fileToRules[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		out = append(out, *fa)
	}

	slices.SortFunc(out, func(left, right FileAnalysis) int {
		switch opts.SortBy {
		case SortByAlpha:
			return cmp.Compare(left.Path, right.Path)
		case SortBySeverity:
			return severityCmp(left.Errors, left.Warnings, left.Issues,
				right.Errors, right.Warnings, right.Issues)
		default:
			return countCmp(left.Issues, right.Issues, opts.SortDesc)
		}
	})
	return out
}

// severityCmp orders by errors, then warnings, then total issues, most
// severe first. SortDesc does not apply to this mode.
func severityCmp(lErr, lWarn, lIssues, rErr, rWarn, rIssues int) int {
	if c := cmp.Compare(rErr, lErr); c != 0 {
		return c
	}
	if c := cmp.Compare(rWarn, lWarn); c != 0 {
		return c
	}
	return cmp.Compare(rIssues, lIssues)
}

// countCmp orders by issue count, optionally descending.
func countCmp(left, right int, desc bool) int {
	c := cmp.Compare(left, right)
	if desc {
		c = -c
	}
	return c
}

// diagnosticEntry converts one lint diagnostic into its report form.
func diagnosticEntry(path, severity string, diag *lint.Diagnostic) DiagnosticEntry {
	entry := DiagnosticEntry{
		File:        path,
		Code:        diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    severity,
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     len(diag.FixEdits) > 0,
	}
	for _, edit := range diag.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}

// Analyze folds a runner.Result into a Report in one pass over its
// diagnostics, building only the views the options ask for.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}
	if result == nil {
		return report
	}

	acc := newTally()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		path := displayPath(file.Path, opts.WorkingDir)
		acc.fileEntry(path)

		for _, diag := range file.Result.Diagnostics {
			acc.record(path, &diag, &report.Totals)

			if opts.IncludeDiagnostics {
				severity := normalizeSeverity(string(diag.Severity))
				report.Diagnostics = append(report.Diagnostics, diagnosticEntry(path, severity, &diag))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = acc.byRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = acc.byFile(opts)
	}
	return report
}
