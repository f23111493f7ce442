package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/gopystyle/internal/ui/pretty"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// defaultTermWidth applies when the writer is not a terminal.
const defaultTermWidth = 100

// TableReporter renders results as color-coded tables sized to the
// terminal.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	buf       *bufio.Writer
}

// NewTableReporter builds the aligned-table reporter, sized to the
// terminal width when the writer is one.
func NewTableReporter(opts Options) *TableReporter {
	enabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(enabled)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, enabled, getTerminalWidth(opts.Writer)),
		buf:       bufio.NewWriterSize(opts.Writer, writerBufSize),
	}
}

// Report renders one combined table, or one per file under PerFile,
// and returns the issue count.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer flushInto(r.buf, &err)

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.buf, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	totalIssues := issueTotal(result)
	if totalIssues == 0 {
		if r.opts.ShowSummary {
			r.writeAllClear(result.Stats.FilesProcessed)
		}
		return 0, nil
	}

	if r.opts.PerFile {
		r.renderPerFile(result)
	} else {
		r.renderCombined(result)
	}

	return totalIssues, nil
}

// writeAllClear celebrates a clean run.
func (r *TableReporter) writeAllClear(filesProcessed int) {
	fmt.Fprintln(r.buf)
	fmt.Fprintln(r.buf, r.styles.Success.Render("All files passed!"))
	fmt.Fprintln(r.buf, r.styles.Dim.Render(
		fmt.Sprintf("%d files checked", filesProcessed),
	))
}

// renderCombined renders every file into a single table.
func (r *TableReporter) renderCombined(result *runner.Result) {
	fmt.Fprint(r.buf, r.formatter.FormatTable(result))

	if r.opts.ShowSummary {
		fmt.Fprintln(r.buf, r.formatter.FormatTableSummary(result.Stats, ""))
		fmt.Fprintln(r.buf)
		r.fixHint(result)
	}
}

// renderPerFile renders its own table for every file with issues,
// followed by an overall summary block.
func (r *TableReporter) renderPerFile(result *runner.Result) {
	shown := 0

	for idx := range result.Files {
		file := &result.Files[idx]
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if len(file.Result.Diagnostics) == 0 {
			continue
		}

		shown++
		fmt.Fprintln(r.buf)
		fmt.Fprintln(r.buf, r.styles.Bold.Render(file.Path))
		fmt.Fprint(r.buf, r.formatter.FormatFileTable(*file))
	}

	if r.opts.ShowSummary && shown > 0 {
		fmt.Fprintln(r.buf)
		fmt.Fprintln(r.buf, r.styles.TableSeparator.Render("════════════════════════════════════════════════════════════════════════════════"))
		fmt.Fprintln(r.buf, r.styles.Bold.Render("Overall Summary"))
		fmt.Fprintln(r.buf, r.formatter.FormatTableSummary(result.Stats, ""))
		if anyFixable(result) {
			fmt.Fprintln(r.buf)
			r.fixHint(result)
		}
	}
}

// fixHint suggests --fix when at least one issue carries edits.
func (r *TableReporter) fixHint(result *runner.Result) {
	if anyFixable(result) {
		fmt.Fprintln(r.buf, r.styles.Dim.Render("Run with --fix to auto-repair fixable issues"))
	}
}

// issueTotal sums diagnostics across every processed file.
func issueTotal(result *runner.Result) int {
	var total int
	for idx := range result.Files {
		if outcome := &result.Files[idx]; outcome.Result != nil && outcome.Result.FileResult != nil {
			total += len(outcome.Result.Diagnostics)
		}
	}
	return total
}

// anyFixable reports whether any diagnostic carries fix edits.
func anyFixable(result *runner.Result) bool {
	for idx := range result.Files {
		outcome := &result.Files[idx]
		if outcome.Result == nil || outcome.Result.FileResult == nil {
			continue
		}
		for _, diag := range outcome.Result.Diagnostics {
			if len(diag.FixEdits) > 0 {
				return true
			}
		}
	}
	return false
}

// getTerminalWidth asks the writer for its terminal size, falling back
// to defaultTermWidth for pipes and buffers.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
