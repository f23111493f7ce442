package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

const (
	fixMark     = "+"
	fixMarkCols = 3
	cellGap     = 2

	fileColMin = 20
	locColMin  = 10
	msgColMin  = 35
	ruleColMin = 8

	rulerHeavy    = "="
	rulerLight    = "-"
	fallbackWidth = 100
)

// TableRow is one diagnostic flattened into table cells.
type TableRow struct {
	File     string
	Location string
	Message  string
	RuleID   string
	Severity config.Severity
	Fixable  bool
}

// RowForDiagnostic flattens one diagnostic into table cells.
func RowForDiagnostic(path string, diag *lint.Diagnostic) TableRow {
	return TableRow{
		File:     path,
		Location: fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn),
		Message:  diag.Message,
		RuleID:   diag.RuleID,
		Severity: diag.Severity,
		Fixable:  len(diag.FixEdits) > 0,
	}
}

// colWidths holds the resolved column widths. A zero file width means
// the table has no FILE column (the per-file layout).
type colWidths struct {
	file    int
	loc     int
	message int
	rule    int
}

// total is the full rendered line width, padding and fixable marker
// included.
func (w colWidths) total() int {
	cols := 4 // LOC, MESSAGE, RULE, FIXABLE
	if w.file > 0 {
		cols++
	}
	return w.file + w.loc + w.message + w.rule + cellGap*cols + fixMarkCols
}

// TableFormatter renders diagnostics as aligned, severity-colored
// tables. One formatter handles both the combined layout (with a FILE
// column) and the per-file layout (without).
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter builds a formatter that fits its tables into
// termWidth columns.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = fallbackWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// FormatTable renders every file's diagnostics into one table, file
// groups separated by light rulers, closed by the legend.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	groups := rowGroups(result)
	if len(groups) == 0 {
		return ""
	}

	widths := t.fitWidths(true, groups...)

	var b strings.Builder
	fmt.Fprintln(&b, t.header(widths))
	fmt.Fprintln(&b, t.separator(widths, rulerHeavy))

	for idx, group := range groups {
		if idx > 0 {
			fmt.Fprintln(&b, t.separator(widths, rulerLight))
		}
		for _, row := range group {
			fmt.Fprintln(&b, t.row(row, widths))
		}
	}

	fmt.Fprintln(&b, t.separator(widths, rulerHeavy))
	fmt.Fprintln(&b, t.legend())

	return b.String()
}

// FormatFileTable renders one file's diagnostics as a standalone table
// without the FILE column, closed by a per-file tally instead of the
// legend.
func (t *TableFormatter) FormatFileTable(file runner.FileOutcome) string {
	if file.Result == nil || file.Result.FileResult == nil {
		return ""
	}

	rows := diagnosticRows(file.Path, file.Result.Diagnostics)
	if len(rows) == 0 {
		return ""
	}

	widths := t.fitWidths(false, rows)

	var b strings.Builder
	fmt.Fprintln(&b, t.header(widths))
	fmt.Fprintln(&b, t.separator(widths, rulerHeavy))
	for _, row := range rows {
		fmt.Fprintln(&b, t.row(row, widths))
	}
	fmt.Fprintln(&b, t.separator(widths, rulerHeavy))
	fmt.Fprintln(&b, t.fileTally(rows))

	return b.String()
}

// FormatTableSummary is the one-line closing summary under a table.
// duration is appended dimmed when non-empty.
func (t *TableFormatter) FormatTableSummary(stats runner.Stats, duration string) string {
	parts := []string{fmt.Sprintf("%d files checked", stats.FilesProcessed)}
	parts = append(parts, t.countParts(
		stats.IssuesBySeverity["error"],
		stats.IssuesBySeverity["warning"],
		stats.IssuesBySeverity["info"],
		stats.IssuesFixable,
	)...)
	if duration != "" {
		parts = append(parts, t.styles.Dim.Render(duration))
	}
	return " " + strings.Join(parts, " | ")
}

// rowGroups flattens the result into per-file row slices, dropping
// files with nothing to show.
func rowGroups(result *runner.Result) [][]TableRow {
	var groups [][]TableRow
	for idx := range result.Files {
		file := &result.Files[idx]
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		rows := diagnosticRows(file.Path, file.Result.Diagnostics)
		if len(rows) == 0 {
			continue
		}
		groups = append(groups, rows)
	}
	return groups
}

func diagnosticRows(path string, diagnostics []lint.Diagnostic) []TableRow {
	rows := make([]TableRow, 0, len(diagnostics))
	for idx := range diagnostics {
		rows = append(rows, RowForDiagnostic(path, &diagnostics[idx]))
	}
	return rows
}

// fitWidths sizes each column to its widest cell, then shrinks the
// MESSAGE column and, in the combined layout, the FILE column until the
// table fits the terminal. Columns never go below their minimums, so a
// very narrow terminal still overflows rather than collapsing.
func (t *TableFormatter) fitWidths(withFile bool, groups ...[]TableRow) colWidths {
	w := colWidths{loc: locColMin, message: msgColMin, rule: ruleColMin}
	if withFile {
		w.file = fileColMin
	}

	for _, group := range groups {
		for _, row := range group {
			if withFile && len(row.File) > w.file {
				w.file = len(row.File)
			}
			if len(row.Location) > w.loc {
				w.loc = len(row.Location)
			}
			if len(row.Message) > w.message {
				w.message = len(row.Message)
			}
			if len(row.RuleID) > w.rule {
				w.rule = len(row.RuleID)
			}
		}
	}

	if excess := w.total() - t.termWidth; excess > 0 {
		w.message = max(msgColMin, w.message-excess)
	}
	if withFile {
		if excess := w.total() - t.termWidth; excess > 0 {
			w.file = max(fileColMin, w.file-excess)
		}
	}

	return w
}

func (t *TableFormatter) header(w colWidths) string {
	cells := make([]string, 0, 4)
	if w.file > 0 {
		cells = append(cells, fmt.Sprintf("%-*s", w.file, "FILE"))
	}
	cells = append(cells,
		fmt.Sprintf("%-*s", w.loc, "LOC"),
		fmt.Sprintf("%-*s", w.message, "MESSAGE"),
		fmt.Sprintf("%-*s", w.rule, "RULE"),
	)
	return t.styles.TableHeader.Render(" " + strings.Join(cells, "  ") + "   ")
}

func (t *TableFormatter) separator(w colWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, w.total()))
}

// row renders one line, severity styling applied over the whole row
// and the fixable marker styled on its own.
func (t *TableFormatter) row(row TableRow, w colWidths) string {
	cells := make([]string, 0, 4)
	if w.file > 0 {
		cells = append(cells, fmt.Sprintf("%-*s", w.file, clipPathStart(row.File, w.file)))
	}
	cells = append(cells,
		fmt.Sprintf("%-*s", w.loc, clip(row.Location, w.loc)),
		fmt.Sprintf("%-*s", w.message, clip(row.Message, w.message)),
		fmt.Sprintf("%-*s", w.rule, clip(row.RuleID, w.rule)),
	)

	mark := " "
	if row.Fixable {
		mark = t.styles.TableFixable.Render(fixMark)
	}

	return t.rowStyle(row.Severity).Render(" " + strings.Join(cells, "  ") + "  " + mark)
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

// fileTally is the closing count line under a per-file table.
func (t *TableFormatter) fileTally(rows []TableRow) string {
	counts := make(map[config.Severity]int, 3)
	fixable := 0
	for _, row := range rows {
		counts[row.Severity]++
		if row.Fixable {
			fixable++
		}
	}
	return " " + strings.Join(t.countParts(
		counts[config.SeverityError],
		counts[config.SeverityWarning],
		counts[config.SeverityInfo],
		fixable,
	), " | ")
}

// countParts builds the styled "N errors", "N warnings", "N info",
// "N fixable" fragments, skipping zero counts.
func (t *TableFormatter) countParts(errors, warnings, infos, fixable int) []string {
	var parts []string
	if errors > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d %s", errors, plural(errors, "error"))))
	}
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning"))))
	}
	if infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", infos)))
	}
	if fixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", fixable)))
	}
	return parts
}

// legend explains the row colors, or the letter codes when color is
// off.
func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: E = error | W = warning | %s = fixable", fixMark),
		)
	}

	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = fixable",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableFixable.Render(fixMark),
	))
}

// clip cuts str down to maxLen, marking the cut with "...".
func clip(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// clipPathStart cuts a path down to maxLen from the front, keeping the
// filename end.
func clipPathStart(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
