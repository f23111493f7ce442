package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gopystyle/internal/ui/pretty"
	"github.com/yaklabco/gopystyle/pkg/analysis"
	"github.com/yaklabco/gopystyle/pkg/config"
)

// Column layout for the summary tables. Both tables share summaryWidth
// so they line up when printed together.
const (
	summaryWidth        = 90
	ruleCol      = 30
	fileCol      = 60
	countCol       = 7
	warnCol      = 8
	fixCol   = 8
	ruleNameMax = 28
	filePathMax = 58
)

// rpad pads with trailing spaces. Padding must happen before ANSI
// styling or the escape codes throw the width off.
func rpad(s string, width int) string {
	if gap := width - len(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// lpad pads with leading spaces, same styling caveat as rpad.
func lpad(s string, width int) string {
	if gap := width - len(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

// SummaryRenderer prints per-rule and per-file aggregate tables
// instead of individual diagnostics.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	w      io.Writer
}

// NewSummaryRenderer builds the aggregate-table renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		w:      opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.w, r.styles.Success.Render("No issues found"))
		return nil
	}

	if r.opts.SummaryOrder == config.SummaryOrderFiles {
		r.fileTable(report.ByFile)
		fmt.Fprintln(r.w)
		r.ruleTable(report.ByRule)
	} else {
		r.ruleTable(report.ByRule)
		fmt.Fprintln(r.w)
		r.fileTable(report.ByFile)
	}

	fmt.Fprintln(r.w)
	r.totalsLine(report.Totals)

	return nil
}

// tableHead writes the table title and its header row between
// separator lines.
func (r *SummaryRenderer) tableHead(title, header string) {
	separator := r.styles.TableSeparator.Render(strings.Repeat("─", summaryWidth))
	fmt.Fprintln(r.w, r.styles.Bold.Render(title))
	fmt.Fprintln(r.w, separator)
	fmt.Fprintln(r.w, header)
	fmt.Fprintln(r.w, separator)
}

// styleByWorst styles a padded cell after the row's worst severity.
func (r *SummaryRenderer) styleByWorst(cell string, errors, warnings int) string {
	switch {
	case errors > 0:
		return r.styles.TableErrorRow.Render(cell)
	case warnings > 0:
		return r.styles.TableWarnRow.Render(cell)
	default:
		return cell
	}
}

func (r *SummaryRenderer) ruleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	r.tableHead("Rules Summary", fmt.Sprintf("%s %s %s %s %s",
		r.styles.TableHeader.Render(rpad("Rule", ruleCol)),
		r.styles.TableHeader.Render(lpad("Count", countCol)),
		r.styles.TableHeader.Render(lpad("Errors", countCol)),
		r.styles.TableHeader.Render(lpad("Warnings", warnCol)),
		r.styles.TableHeader.Render(lpad("Fixable", fixCol)),
	))

	for _, rule := range rules {
		ruleName := rule.Name
		if ruleName == "" {
			ruleName = rule.Code
		}
		if len(ruleName) > ruleNameMax {
			ruleName = ruleName[:ruleNameMax] + "…"
		}

		fixable := lpad("", fixCol)
		if rule.Fixable {
			fixable = r.styles.Success.Render(lpad("✓", fixCol))
		}

		fmt.Fprintf(r.w, "%s %s %s %s %s\n",
			r.styleByWorst(rpad(ruleName, ruleCol), rule.Errors, rule.Warnings),
			lpad(strconv.Itoa(rule.Issues), countCol),
			lpad(strconv.Itoa(rule.Errors), countCol),
			lpad(strconv.Itoa(rule.Warnings), warnCol),
			fixable,
		)
	}
}

func (r *SummaryRenderer) fileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	r.tableHead("Files Summary", fmt.Sprintf("%s %s %s %s",
		r.styles.TableHeader.Render(rpad("File", fileCol)),
		r.styles.TableHeader.Render(lpad("Count", countCol)),
		r.styles.TableHeader.Render(lpad("Errors", countCol)),
		r.styles.TableHeader.Render(lpad("Warnings", warnCol)),
	))

	for _, file := range files {
		path := file.Path
		if len(path) > filePathMax {
			// Long paths keep their tail, the informative part.
			path = "…" + path[len(path)-(filePathMax-1):]
		}

		fmt.Fprintf(r.w, "%s %s %s %s\n",
			r.styleByWorst(rpad(path, fileCol), file.Errors, file.Warnings),
			lpad(strconv.Itoa(file.Issues), countCol),
			lpad(strconv.Itoa(file.Errors), countCol),
			lpad(strconv.Itoa(file.Warnings), warnCol),
		)
	}
}

func (r *SummaryRenderer) totalsLine(totals analysis.Totals) {
	issueWord := pluralize(totals.Issues, "issue", "issues")
	issueText := fmt.Sprintf("%d %s", totals.Issues, issueWord)

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if len(severityParts) > 0 {
		issueText = fmt.Sprintf("%s (%s)", issueText, strings.Join(severityParts, ", "))
	}

	files := fmt.Sprintf("in %d %s", totals.FilesWithIssues, pluralize(totals.FilesWithIssues, "file", "files"))

	fmt.Fprintln(r.w, r.styles.Bold.Render("Total: ")+issueText+" "+files)
}
