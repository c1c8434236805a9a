// Package scrub drives a tree toward zero issues by alternating scans and
// fix passes until it is clean, stuck, or out of iterations.
package scrub

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/buemura/willie/internal/fixer"
	"github.com/buemura/willie/pkg/types"
)

// State is a position in the scrub state machine.
type State string

const (
	StateScanning           State = "SCANNING"
	StateIterating          State = "ITERATING"
	StateClean              State = "CLEAN"
	StateNoFixableRemaining State = "NO_FIXABLE_REMAINING"
	StateExhausted          State = "EXHAUSTED"
)

// Terminal reports whether the loop stops in s.
func (s State) Terminal() bool {
	return s == StateClean || s == StateNoFixableRemaining || s == StateExhausted
}

// Scanner analyzes every file under root.
type Scanner interface {
	Scan(ctx context.Context, root string) ([]types.AnalysisResult, error)
}

// Fixer applies the fixable issues of results.
type Fixer interface {
	Fix(ctx context.Context, results []types.AnalysisResult) fixer.Outcome
}

// Round describes one fix iteration.
type Round struct {
	Iteration int             `json:"iteration"`
	Issues    int             `json:"issues"`
	Fixable   int             `json:"fixable"`
	Applied   int             `json:"applied"`
	Files     []fixer.FileFix `json:"files"`
}

// Report is the final state of a scrub.
type Report struct {
	State      State                  `json:"state"`
	Iterations int                    `json:"iterations"`
	Rounds     []Round                `json:"rounds"`
	Results    []types.AnalysisResult `json:"-"`
	Summary    types.Summary          `json:"summary"`
}

// Controller runs the scrub loop.
type Controller struct {
	scanner  Scanner
	fixer    Fixer
	observer func(Round)
	log      *zap.SugaredLogger
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver is called after every round.
func WithObserver(fn func(Round)) Option {
	return func(c *Controller) { c.observer = fn }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Controller) { c.log = log }
}

// New creates a Controller.
func New(scanner Scanner, fixer Fixer, opts ...Option) *Controller {
	c := &Controller{
		scanner: scanner,
		fixer:   fixer,
		log:     zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run scrubs root for at most maxIterations fix rounds; negative values
// count as zero. Every iteration rescans from disk, so issues never carry
// over between rounds. Write failures are joined and returned with the
// report; a scan failure aborts the loop.
func (c *Controller) Run(ctx context.Context, root string, maxIterations int) (Report, error) {
	if maxIterations < 0 {
		maxIterations = 0
	}

	var (
		report    = Report{State: StateScanning}
		writeErrs []error
	)
	for {
		results, err := c.scanner.Scan(ctx, root)
		if err != nil {
			return report, errors.Join(append(writeErrs, fmt.Errorf("scanning %s: %w", root, err))...)
		}
		report.Results = results
		report.Summary = types.Summarize(results)
		report.State = next(report.Summary, report.Iterations, maxIterations)

		c.log.Debugw("scrub scan",
			"iteration", report.Iterations,
			"issues", report.Summary.TotalIssues,
			"fixable", report.Summary.Fixable,
			"state", report.State,
		)
		if report.State.Terminal() {
			return report, errors.Join(writeErrs...)
		}

		outcome := c.fixer.Fix(ctx, results)
		report.Iterations++
		round := Round{
			Iteration: report.Iterations,
			Issues:    report.Summary.TotalIssues,
			Fixable:   report.Summary.Fixable,
			Applied:   outcome.Applied,
			Files:     outcome.Files,
		}
		report.Rounds = append(report.Rounds, round)
		if err := outcome.Err(); err != nil {
			writeErrs = append(writeErrs, err)
		}
		if c.observer != nil {
			c.observer(round)
		}
		report.State = StateScanning
	}
}

func next(s types.Summary, iterations, limit int) State {
	switch {
	case s.TotalIssues == 0:
		return StateClean
	case s.Fixable == 0:
		return StateNoFixableRemaining
	case iterations >= limit:
		return StateExhausted
	default:
		return StateIterating
	}
}
