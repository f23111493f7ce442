package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gopystyle/pkg/runner"
)

const (
	summaryDividerWidth = 40

	// summaryValueColumn is where values start in the block summary.
	summaryValueColumn = 21
)

// FormatSummaryOneLine renders run statistics as a single trailing line.
// Example: "12 issues (8 errors, 4 warnings), in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fixedNote := ""
	if stats.EditsApplied > 0 {
		fixedNote = s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.EditsApplied, stats.FilesModified, plural(stats.FilesModified, "file")))
	}

	if stats.IssuesTotal == 0 {
		line := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
		// Corrections may have cleared every issue; still report them.
		if fixedNote != "" {
			line += ", " + fixedNote
		}
		return line + "\n"
	}

	head := fmt.Sprintf("%d %s", stats.IssuesTotal, plural(stats.IssuesTotal, "issue"))
	if breakdown := s.severityParts(stats.IssuesBySeverity); len(breakdown) > 0 {
		head += " (" + strings.Join(breakdown, ", ") + ")"
	}

	parts := []string{
		head,
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file")),
	}
	if stats.IssuesFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.IssuesFixable)))
	}
	if fixedNote != "" {
		parts = append(parts, fixedNote)
	}

	return strings.Join(parts, ", ") + "\n"
}

// severityParts renders the non-zero severity counts in display order.
func (s *Styles) severityParts(bySeverity map[string]int) []string {
	var parts []string
	if n := bySeverity["error"]; n > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", n, plural(n, "error"))))
	}
	if n := bySeverity["warning"]; n > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", n, plural(n, "warning"))))
	}
	if n := bySeverity["info"]; n > 0 {
		parts = append(parts, s.Info.Render(fmt.Sprintf("%d info", n)))
	}
	return parts
}

// FormatSummary renders run statistics as a labeled block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	row := func(indent int, label, value string) {
		text := strings.Repeat(" ", indent) + label + ":"
		fmt.Fprintf(&b, "%-*s%s\n", summaryValueColumn, text, value)
	}

	b.WriteString("\n")
	b.WriteString(s.SummaryTitle.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", summaryDividerWidth))
	b.WriteString("\n")

	row(2, "Files checked", s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)))
	if stats.FilesWithIssues > 0 {
		row(2, "Files with issues", s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)))
	}
	if stats.FilesModified > 0 {
		row(2, "Files modified", s.Success.Render(strconv.Itoa(stats.FilesModified)))
	}
	b.WriteString("\n")

	row(2, "Total issues", s.SummaryValue.Render(strconv.Itoa(stats.IssuesTotal)))
	if n := stats.IssuesBySeverity["error"]; n > 0 {
		row(4, "Errors", s.Error.Render(strconv.Itoa(n)))
	}
	if n := stats.IssuesBySeverity["warning"]; n > 0 {
		row(4, "Warnings", s.Warning.Render(strconv.Itoa(n)))
	}
	if n := stats.IssuesBySeverity["info"]; n > 0 {
		row(4, "Info", s.Info.Render(strconv.Itoa(n)))
	}
	b.WriteString("\n")

	switch {
	case stats.IssuesBySeverity["error"] > 0:
		b.WriteString(s.Failure.Render("Style check failed with errors"))
	case stats.IssuesBySeverity["warning"] > 0:
		b.WriteString(s.Warning.Render("Style check completed with warnings"))
	default:
		b.WriteString(s.Success.Render("Style check passed"))
	}
	b.WriteString("\n")

	return b.String()
}

// plural appends "s" to word when n is anything but one.
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
