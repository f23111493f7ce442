package reporter

import (
	"bufio"
	"io"
	"os"

	"github.com/yaklabco/gopystyle/pkg/config"
)

// Buffered writers flush in 64 KiB chunks.
const writerBufSize = 64 * 1024

// flushInto folds a deferred Flush into the surrounding function's
// error return, without masking an earlier error.
func flushInto(buf *bufio.Writer, err *error) {
	if ferr := buf.Flush(); *err == nil {
		*err = ferr
	}
}

// Options configures where and how results are written.
type Options struct {
	// Writer receives the report, ErrorWriter any errors. They default
	// to stdout and stderr.
	Writer      io.Writer
	ErrorWriter io.Writer

	Format Format

	// Color is "auto", "always", or "never".
	Color string

	// ShowContext includes the offending source line under each
	// diagnostic.
	ShowContext bool

	// ShowSummary appends aggregate statistics after the results.
	ShowSummary bool

	// GroupByFile clusters diagnostics under their file heading.
	GroupByFile bool

	// Compact switches to minified output where the format supports it.
	Compact bool

	// PerFile emits one table per file (table format only).
	PerFile bool

	// FixMode marks a run where corrections were requested, so formats
	// that phrase outcomes can say "fixed" rather than "fixable".
	FixMode bool

	// RuleFormat picks how rule identifiers render: code, name, or both.
	RuleFormat config.RuleFormat

	// SummaryOrder decides which summary table prints first.
	SummaryOrder config.SummaryOrder

	// WorkingDir rewrites paths relative to this directory. Empty
	// leaves them as given.
	WorkingDir string
}

// DefaultOptions targets stdout with contextual text output.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatID,
		SummaryOrder: config.SummaryOrderRules,
	}
}
