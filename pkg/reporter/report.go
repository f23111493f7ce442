package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gopystyle/internal/ui/pretty"
	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// reportRulerWidth is the width of the rulers framing report output.
const reportRulerWidth = 40

// ReportReporter formats results in the classic analysis-report layout:
// a banner header followed by one block per issue, each giving the file,
// position, code, and description on separate lines.
type ReportReporter struct {
	opts   Options
	styles *pretty.Styles
	buf    *bufio.Writer
}

// NewReportReporter builds the classic analysis-report reporter.
func NewReportReporter(opts Options) *ReportReporter {
	return &ReportReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		buf:    bufio.NewWriterSize(opts.Writer, writerBufSize),
	}
}

// Report implements Reporter.
func (r *ReportReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flushInto(r.buf, &err)

	if result == nil {
		fmt.Fprintln(r.buf, r.styles.Success.Render("✨No style issues detected✨"))
		return 0, nil
	}

	totalIssues := issueTotal(result)

	if totalIssues == 0 && !hasFileErrors(result) {
		fmt.Fprintln(r.buf, r.styles.Success.Render("✨No style issues detected✨"))
		r.writeFixOutcome(result)
		return 0, nil
	}

	fmt.Fprintln(r.buf)
	fmt.Fprintln(r.buf, r.styles.ReportHeader.Render("PEP 8 Style Analysis Report"))
	fmt.Fprintln(r.buf, strings.Repeat("=", reportRulerWidth))

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintln(r.buf)
			fmt.Fprintln(r.buf, r.styles.Error.Render(fmt.Sprintf("Error analyzing file: %v", file.Error)))
			fmt.Fprintln(r.buf, strings.Repeat("-", reportRulerWidth))
			continue
		}

		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for _, diag := range file.Result.Diagnostics {
			r.writeIssue(&diag)
		}
	}

	r.writeFixOutcome(result)

	return totalIssues, nil
}

// writeIssue writes a single issue block followed by a ruler.
func (r *ReportReporter) writeIssue(diag *lint.Diagnostic) {
	code := config.FormatRuleID(r.opts.RuleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintln(r.buf)
	fmt.Fprintln(r.buf, r.styles.ReportIssue.Render(fmt.Sprintf("File: %s", diag.FilePath)))
	fmt.Fprintln(r.buf, r.styles.ReportIssue.Render(fmt.Sprintf("Line %d, Column %d", diag.StartLine, diag.StartColumn)))
	fmt.Fprintln(r.buf, r.styles.ReportIssue.Render(fmt.Sprintf("Code: %s", code)))
	fmt.Fprintln(r.buf, r.styles.ReportIssue.Render(fmt.Sprintf("Issue: %s", diag.Message)))
	fmt.Fprintln(r.buf, strings.Repeat("-", reportRulerWidth))
}

// writeFixOutcome reports the auto-correction outcome when fixes were requested.
func (r *ReportReporter) writeFixOutcome(result *runner.Result) {
	if !r.opts.FixMode || result == nil {
		return
	}

	if result.Stats.FilesModified > 0 {
		fmt.Fprintln(r.buf, r.styles.Success.Render("🧼Auto-corrections applied to the file successfully🧼"))
		return
	}

	fmt.Fprintln(r.buf, r.styles.ReportClean.Render("🤌 Nothing to auto-correct. Code is clean."))
}

// hasFileErrors checks if any file failed to process.
func hasFileErrors(result *runner.Result) bool {
	for _, file := range result.Files {
		if file.Error != nil {
			return true
		}
	}
	return false
}
