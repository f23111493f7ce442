package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gopystyle/internal/ui/pretty"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/pysrc"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// TextReporter writes styled, human-readable terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	buf    *bufio.Writer
}

// NewTextReporter builds the default human-readable reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		buf:    bufio.NewWriterSize(opts.Writer, writerBufSize),
	}
}

// Report writes each file's diagnostics in turn and returns the total
// written.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flushInto(r.buf, &err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.buf, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for idx := range result.Files {
		total += r.reportFile(&result.Files[idx])
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.buf, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// reportFile writes one file's failure or diagnostics and returns how
// many diagnostics it wrote. GroupByFile adds the file heading and a
// separating blank line.
func (r *TextReporter) reportFile(file *runner.FileOutcome) int {
	if file.Error != nil {
		fmt.Fprintf(r.buf, "%s: %s\n",
			r.styles.FilePath.Render(file.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil || file.Result.FileResult == nil {
		return 0
	}

	diagnostics := file.Result.Diagnostics
	if len(diagnostics) == 0 {
		return 0
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.buf, r.styles.FormatFileHeader(file.Path, len(diagnostics)))
	}

	for idx := range diagnostics {
		r.writeDiagnostic(file.Result.Snapshot, &diagnostics[idx])
	}

	if r.opts.GroupByFile {
		fmt.Fprintln(r.buf)
	}

	return len(diagnostics)
}

func (r *TextReporter) writeDiagnostic(snapshot *pysrc.FileSnapshot, diag *lint.Diagnostic) {
	var sourceLine string
	if r.opts.ShowContext && snapshot != nil {
		sourceLine = getSourceLine(snapshot, diag.StartLine)
	}
	fmt.Fprint(r.buf, r.styles.FormatDiagnosticWithFormat(diag, r.opts.ShowContext, sourceLine, r.opts.RuleFormat))
}

// getSourceLine pulls one line out of the snapshot's line index. A nil
// snapshot or an out-of-range line comes back empty.
func getSourceLine(snapshot *pysrc.FileSnapshot, ln int) string {
	if snapshot == nil {
		return ""
	}
	return string(snapshot.LineContent(ln))
}
