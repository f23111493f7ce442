package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/gopystyle/pkg/lint"
)

// Runner fans a set of files out over a worker pool, pushing each one
// through a lint.Pipeline and folding the outcomes back together.
type Runner struct {
	// Pipeline does the per-file work with its safety checks intact.
	Pipeline *lint.Pipeline
}

// New wraps a pipeline in a Runner.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// workerCount clamps the configured job count to something useful: the
// CPU count when unset, and never more workers than files.
func workerCount(jobs, files int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return min(jobs, files)
}

// Run discovers files under opts.Paths, lints them concurrently, and
// returns the outcomes in discovery order regardless of which worker
// finished first. Cancellation stops feeding new files and surfaces as a
// wrapped context error alongside whatever partial result accumulated.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)

	paths := make(chan string)
	results := make(chan FileOutcome)

	// Worker loop: one file in, one outcome out, until the path channel
	// drains or the context dies.
	worker := func() {
		for path := range paths {
			select {
			case <-ctx.Done():
				return
			default:
			}

			outcome := FileOutcome{Path: path}
			if pr, err := r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts); err != nil {
				outcome.Error = err
			} else {
				outcome.Result = pr
			}

			select {
			case <-ctx.Done():
				return
			case results <- outcome:
			}
		}
	}

	var wg sync.WaitGroup
	for range workerCount(opts.Jobs, len(files)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker()
		}()
	}

	go func() {
		defer close(paths)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case paths <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// Workers finish in arbitrary order; collect by path and replay in
	// discovery order.
	byPath := make(map[string]FileOutcome, len(files))
	for outcome := range results {
		byPath[outcome.Path] = outcome
	}
	for _, path := range files {
		if outcome, ok := byPath[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("lint run cancelled: %w", ctx.Err())
	}
	return result, nil
}
