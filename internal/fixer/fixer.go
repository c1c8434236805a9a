// Package fixer writes auto-fixes back to disk.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/buemura/willie/internal/analyzer"
	"github.com/buemura/willie/pkg/types"
)

// FileFix records the fixes applied to one file.
type FileFix struct {
	Path  string `json:"path"`
	Fixes int    `json:"fixes"`
	Err   error  `json:"-"`
}

// Outcome is the result of one fix pass.
type Outcome struct {
	Files   []FileFix `json:"files"`
	Applied int       `json:"applied"`
	DryRun  bool      `json:"dry_run"`
}

// Err joins the write errors of every file that failed.
func (o Outcome) Err() error {
	var errs []error
	for _, f := range o.Files {
		if f.Err != nil {
			errs = append(errs, f.Err)
		}
	}
	return errors.Join(errs...)
}

// Writer applies fixes and persists the fixed content.
type Writer struct {
	fs         afero.Fs
	dryRun     bool
	provenance bool
	log        *zap.SugaredLogger
}

// Option configures a Writer.
type Option func(*Writer)

// WithDryRun reports fixes without writing files.
func WithDryRun(dryRun bool) Option {
	return func(w *Writer) { w.dryRun = dryRun }
}

// WithProvenance toggles the FIXED BY WILLIE comment.
func WithProvenance(enabled bool) Option {
	return func(w *Writer) { w.provenance = enabled }
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(w *Writer) { w.log = log }
}

// New creates a Writer on fs. Provenance comments are on by default.
func New(fs afero.Fs, opts ...Option) *Writer {
	w := &Writer{
		fs:         fs,
		provenance: true,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Fix applies the auto-fixable issues in results, one write per file.
// A failed write is recorded on its FileFix and does not stop the pass.
func (w *Writer) Fix(ctx context.Context, results []types.AnalysisResult) Outcome {
	out := Outcome{DryRun: w.dryRun}
	for _, result := range results {
		if ctx.Err() != nil {
			break
		}
		if result.FixableCount() == 0 {
			continue
		}
		content, n := analyzer.ApplyFixes(result)
		if n == 0 {
			continue
		}

		ff := FileFix{Path: result.FilePath, Fixes: n}
		if !w.dryRun {
			if w.provenance {
				content = Stamp(result.FilePath, content, n)
			}
			ff.Err = w.write(result.FilePath, content)
		}
		if ff.Err != nil {
			w.log.Warnw("fix not written", "path", ff.Path, "error", ff.Err)
		} else {
			out.Applied += n
			w.log.Debugw("fixes applied", "path", ff.Path, "fixes", n, "dry_run", w.dryRun)
		}
		out.Files = append(out.Files, ff)
	}
	return out
}

func (w *Writer) write(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := w.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(w.fs, path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
