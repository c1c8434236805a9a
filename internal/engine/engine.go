// Package engine wires discovery, analysis, fixing and scrubbing together
// from a Config. The CLI, TUI and HTTP API all drive Willie through it.
package engine

import (
	"context"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/internal/catalog"
	"github.com/buemura/willie/internal/config"
	"github.com/buemura/willie/internal/discovery"
	"github.com/buemura/willie/internal/fixer"
	"github.com/buemura/willie/internal/scrub"
	"github.com/buemura/willie/pkg/types"
)

// Engine runs scans, fix passes and scrubs over a filesystem.
type Engine struct {
	cfg        config.Config
	fs         afero.Fs
	registry   *analyzer.Registry
	log        *zap.SugaredLogger
	analyzer   *analyzer.Analyzer
	discoverer *discovery.Discoverer
}

// Option configures an Engine.
type Option func(*Engine)

// WithFs sets the filesystem. The default is the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(e *Engine) { e.fs = fs }
}

// WithRegistry replaces the default rule catalog.
func WithRegistry(reg *analyzer.Registry) Option {
	return func(e *Engine) { e.registry = reg }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine from cfg.
func New(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg,
		fs:  afero.NewOsFs(),
		log: zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = catalog.Default()
	}

	e.analyzer = analyzer.New(e.registry,
		analyzer.WithFs(e.fs),
		analyzer.WithMaxLineLength(cfg.MaxLineLength),
		analyzer.WithDisabledRules(cfg.DisabledRuleIDs()...),
		analyzer.WithLogger(e.log),
	)
	e.discoverer = discovery.New(e.fs,
		discovery.WithIgnoreDirs(cfg.IgnoreDirs...),
		discovery.WithIgnoreFiles(cfg.IgnoreFiles...),
		discovery.WithLogger(e.log),
	)
	return e
}

// Registry returns the rule catalog in use.
func (e *Engine) Registry() *analyzer.Registry {
	return e.registry
}

// Analyze analyzes a single file.
func (e *Engine) Analyze(path string) types.AnalysisResult {
	return e.analyzer.Analyze(path)
}

// Discover lists the files a scan of root would analyze.
func (e *Engine) Discover(root string) ([]string, error) {
	var exts []string
	if !e.cfg.AllFiles {
		exts = e.registry.Extensions()
	}
	return e.discoverer.Discover(root, exts)
}

// Scan analyzes every discovered file under root.
func (e *Engine) Scan(ctx context.Context, root string) ([]types.AnalysisResult, error) {
	paths, err := e.Discover(root)
	if err != nil {
		return nil, err
	}
	e.log.Debugw("scan started", "root", root, "files", len(paths))
	return analyzer.NewRunner(e.analyzer, e.cfg.Concurrency).Run(ctx, paths)
}

// Fix scans root once and applies every auto-fix. The scan results are
// returned with the fix outcome.
func (e *Engine) Fix(ctx context.Context, root string, dryRun bool) ([]types.AnalysisResult, fixer.Outcome, error) {
	results, err := e.Scan(ctx, root)
	if err != nil {
		return results, fixer.Outcome{DryRun: dryRun}, err
	}
	return results, e.fixer(dryRun).Fix(ctx, results), nil
}

// Scrub alternates scans and fixes until root is clean, nothing fixable is
// left, or maxIterations rounds have run.
func (e *Engine) Scrub(ctx context.Context, root string, maxIterations int, opts ...scrub.Option) (scrub.Report, error) {
	opts = append([]scrub.Option{scrub.WithLogger(e.log)}, opts...)
	return scrub.New(e, e.fixer(false), opts...).Run(ctx, root, maxIterations)
}

func (e *Engine) fixer(dryRun bool) *fixer.Writer {
	return fixer.New(e.fs,
		fixer.WithDryRun(dryRun),
		fixer.WithProvenance(e.cfg.ProvenanceComment),
		fixer.WithLogger(e.log),
	)
}
