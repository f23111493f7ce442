package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gopystyle/pkg/config"
	"github.com/yaklabco/gopystyle/pkg/lint"
)

// sourceIndent aligns source context under the diagnostic line.
const sourceIndent = "        "

// FormatDiagnostic renders one diagnostic with the rule shown by ID.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat renders one diagnostic as
// "  path:line:col  severity  message  (rule)", optionally followed by
// the offending source line and a suggestion.
func (s *Styles) FormatDiagnosticWithFormat(diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s:%d:%d  %s  %s  %s\n",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)+")"),
	)

	if showContext && sourceLine != "" {
		b.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}

	if diag.Suggestion != "" {
		fmt.Fprintf(&b, "    %s %s\n", s.Dim.Render("Suggestion:"), s.Suggestion.Render(diag.Suggestion))
	}

	return b.String()
}

// FormatSeverity returns the styled severity word. Unknown severities
// pass through unstyled.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders the offending line with a caret marker
// under column, a 0-based offset. Out-of-range columns drop the caret.
func (s *Styles) FormatSourceContext(line string, column int) string {
	out := sourceIndent + s.SourceLine.Render(line) + "\n"
	if column >= 0 && column <= len(line) {
		out += sourceIndent + strings.Repeat(" ", column) + s.Caret.Render("^") + "\n"
	}
	return out
}

// FormatFileHeader renders a file heading for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue")))
	}
	return header
}
