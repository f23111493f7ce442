package runner

import "github.com/yaklabco/gopystyle/pkg/lint"

// FileOutcome pairs a processed path with its pipeline result or error.
type FileOutcome struct {
	// Path is the file that was processed.
	Path string

	// Result holds the pipeline output. Nil when processing failed.
	Result *lint.PipelineResult

	// Error is set when the file could not be processed at all.
	Error error
}

// Stats aggregates counters across a whole run.
type Stats struct {
	// FilesDiscovered counts every file discovery produced.
	FilesDiscovered int

	// FilesProcessed counts files the pipeline completed.
	FilesProcessed int

	// FilesSkipped counts files left alone, for example because another
	// process modified them mid-run.
	FilesSkipped int

	// FilesErrored counts files that failed outright.
	FilesErrored int

	// IssuesTotal counts diagnostics across all files.
	IssuesTotal int

	// IssuesFixable counts diagnostics carrying auto-fix edits.
	IssuesFixable int

	// IssuesBySeverity breaks the total down per severity level.
	IssuesBySeverity map[string]int

	// FilesWithIssues counts files with at least one diagnostic.
	FilesWithIssues int

	// FilesModified counts files rewritten by fixes.
	FilesModified int

	// EditsApplied counts edits actually applied across the run.
	EditsApplied int

	// RuleErrors counts rule execution failures across all files.
	RuleErrors int
}

// Result is everything a run produced.
type Result struct {
	// Files holds one outcome per file, in discovery order.
	Files []FileOutcome

	// Stats holds the run-wide counters.
	Stats Stats

	// Errors collects failures not tied to a single file.
	Errors []error
}

// HasFailures reports whether any error-severity diagnostics occurred.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesBySeverity["error"] > 0
}

// HasIssues reports whether any diagnostics were found at all.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

func newStats() Stats {
	return Stats{
		IssuesBySeverity: make(map[string]int),
	}
}

// accumulate folds one outcome into the result and its counters.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}
	r.Stats.EditsApplied += outcome.Result.EditsApplied

	if outcome.Result.FileResult == nil {
		return
	}

	diags := outcome.Result.Diagnostics
	r.Stats.IssuesTotal += len(diags)
	r.Stats.IssuesFixable += outcome.Result.FixableCount()
	r.Stats.RuleErrors += len(outcome.Result.RuleErrors)
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range diags {
		severity := string(diag.Severity)
		if severity == "" {
			severity = "warning"
		}
		r.Stats.IssuesBySeverity[severity]++
	}
}
