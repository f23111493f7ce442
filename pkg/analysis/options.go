package analysis

import "github.com/yaklabco/gopystyle/pkg/config"

// SortField names an ordering for the aggregated views.
type SortField string

const (
	// SortByCount orders by issue count, descending by default.
	SortByCount SortField = "count"
	// SortByAlpha orders alphabetically, always ascending.
	SortByAlpha SortField = "alpha"
	// SortBySeverity orders errors first, then warnings.
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s names a known sort field.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options selects which report views Analyze builds and how they sort.
type Options struct {
	// IncludeDiagnostics requests the flat diagnostics list.
	IncludeDiagnostics bool

	// IncludeByFile requests the per-file aggregation.
	IncludeByFile bool

	// IncludeByRule requests the per-rule aggregation.
	IncludeByRule bool

	// SortBy orders the ByFile and ByRule views.
	SortBy SortField

	// SortDesc flips SortByCount to highest-first.
	SortDesc bool

	// RuleFormat controls how rule identifiers render.
	RuleFormat config.RuleFormat

	// WorkingDir rebases report paths when set. Empty keeps paths as
	// the runner produced them, typically absolute.
	WorkingDir string
}

// DefaultOptions builds every view, ordered by count descending.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatID,
	}
}
