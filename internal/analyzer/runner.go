package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/buemura/willie/pkg/types"
)

// DefaultConcurrency bounds parallel analysis when no limit is configured.
const DefaultConcurrency = 8

// Runner analyzes many files concurrently.
type Runner struct {
	analyzer    *Analyzer
	concurrency int
}

// NewRunner creates a runner bounded to concurrency workers.
func NewRunner(a *Analyzer, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Runner{analyzer: a, concurrency: concurrency}
}

// Run analyzes paths and returns results in the order of paths. Cancellation
// stops new files from starting; files already running finish, and the
// results gathered so far are returned with ctx.Err().
func (r *Runner) Run(ctx context.Context, paths []string) ([]types.AnalysisResult, error) {
	results := make([]types.AnalysisResult, len(paths))
	done := make([]bool, len(paths))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			results[i] = r.analyzer.Analyze(path)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		partial := make([]types.AnalysisResult, 0, len(paths))
		for i, ok := range done {
			if ok {
				partial = append(partial, results[i])
			}
		}
		return partial, err
	}
	return results, nil
}
