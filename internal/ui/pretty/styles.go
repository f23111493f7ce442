// Package pretty renders styled terminal output with Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI 256 palette. Basic numbers so terminal themes keep control over
// the exact shades.
const (
	colorWhite   lipgloss.Color = "7"
	colorGray    lipgloss.Color = "8"
	colorRed     lipgloss.Color = "9"
	colorGreen   lipgloss.Color = "10"
	colorYellow  lipgloss.Color = "11"
	colorBlue    lipgloss.Color = "12"
	colorMagenta lipgloss.Color = "13"
	colorCyan    lipgloss.Color = "14"
)

// Styles bundles every renderer the CLI output draws with.
type Styles struct {
	// Severity labels
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Pieces of one diagnostic line
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	// Unified diff preview
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Run summary
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Summary tables
	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Report banner styles
	ReportHeader lipgloss.Style
	ReportIssue  lipgloss.Style
	ReportClean  lipgloss.Style

	// General purpose
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles builds the style set, colored or plain.
func NewStyles(colorEnabled bool) *Styles {
	if colorEnabled {
		return newColorStyles()
	}
	return newNoColorStyles()
}

func newColorStyles() *Styles {
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   fg(colorGray),
		RuleID:     fg(colorGray),
		Message:    lipgloss.NewStyle(),
		Suggestion: fg(colorGreen).Italic(true),
		SourceLine: fg(colorWhite),
		Caret:      fg(colorRed),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		// Table rows are tinted by severity; the legend explains the tints.
		TableHeader:    fg(colorWhite).Bold(true),
		TableBorder:    fg(colorGray),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableInfoRow:   fg(colorBlue),
		TableFixable:   fg(colorGreen),
		TableLegend:    fg(colorGray).Italic(true),
		TableSeparator: fg(colorGray),

		ReportHeader: fg(colorMagenta).Bold(true),
		ReportIssue:  fg(colorYellow),
		ReportClean:  fg(colorCyan),

		Dim:  fg(colorGray),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles renders every element unstyled.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain,
		FilePath: plain, Location: plain, RuleID: plain, Message: plain,
		Suggestion: plain, SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain,
		DiffRemove: plain, DiffContext: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableBorder: plain, TableErrorRow: plain,
		TableWarnRow: plain, TableInfoRow: plain, TableFixable: plain,
		TableLegend: plain, TableSeparator: plain,
		ReportHeader: plain, ReportIssue: plain, ReportClean: plain,
		Dim: plain, Bold: plain,
	}
}

// IsColorEnabled resolves a color mode ("auto", "always", "never")
// against the target writer. Auto means a TTY without NO_COLOR set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
