package reporter

import "fmt"

// Format names an output format.
type Format string

// The formats the reporter can produce.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatReport  Format = "report"
	FormatSARIF   Format = "sarif"
	FormatDiff    Format = "diff"
	FormatSummary Format = "summary"
)

// ParseFormat maps a format string onto a Format. The empty string
// falls back to text.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}

	f := Format(s)
	if !f.IsValid() {
		return "", fmt.Errorf("unknown format %q (valid: text, table, json, report, sarif, diff, summary)", s)
	}
	return f, nil
}

func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatReport, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}
