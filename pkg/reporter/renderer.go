package reporter

import (
	"context"

	"github.com/yaklabco/gopystyle/pkg/analysis"
)

// Renderer turns an analysis.Report into formatted output. A renderer
// holds no state beyond its writer and options.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
