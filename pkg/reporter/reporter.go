// Package reporter writes lint results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/gopystyle/pkg/analysis"
	"github.com/yaklabco/gopystyle/pkg/runner"
)

// Reporter renders a run's diagnostics to its configured writer.
type Reporter interface {
	// Report writes formatted output for the given result. It returns
	// the number of issues reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New returns the Reporter for opts.Format, writing to opts.Writer.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatReport:
		return NewReportReporter(opts), nil
	case FormatSARIF:
		return NewSARIFReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return newRenderAdapter(NewSummaryRenderer(opts), opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

var _ Reporter = (*renderAdapter)(nil)

// renderAdapter turns a Renderer into a Reporter by running the
// analysis step itself.
type renderAdapter struct {
	renderer Renderer
	analyze  analysis.Options
}

func (a *renderAdapter) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.analyze)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func newRenderAdapter(renderer Renderer, opts Options) *renderAdapter {
	return &renderAdapter{
		renderer: renderer,
		analyze: analysis.Options{
			IncludeDiagnostics: true,
			IncludeByFile:      true,
			IncludeByRule:      true,
			SortBy:             analysis.SortByCount,
			SortDesc:           true,
			RuleFormat:         opts.RuleFormat,
			WorkingDir:         opts.WorkingDir,
		},
	}
}
