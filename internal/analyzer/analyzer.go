package analyzer

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/buemura/willie/pkg/types"
)

// ReadErrorID is the rule id of the synthetic issue raised for unreadable files.
const ReadErrorID = "FILE_READ_ERROR"

// Analyzer reads files and runs the common rules plus the file's rule set.
type Analyzer struct {
	registry      *Registry
	fs            afero.Fs
	maxLineLength int
	disabled      map[string]bool
	log           *zap.SugaredLogger
	common        []Rule
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFs sets the filesystem files are read from.
func WithFs(fs afero.Fs) Option {
	return func(a *Analyzer) { a.fs = fs }
}

// WithMaxLineLength sets the LINE_TOO_LONG threshold.
func WithMaxLineLength(n int) Option {
	return func(a *Analyzer) { a.maxLineLength = n }
}

// WithDisabledRules suppresses issues with the given rule ids.
func WithDisabledRules(ids ...string) Option {
	return func(a *Analyzer) {
		for _, id := range ids {
			if id = strings.ToUpper(strings.TrimSpace(id)); id != "" {
				a.disabled[id] = true
			}
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *Analyzer) { a.log = log }
}

// New creates an analyzer over the given registry.
func New(reg *Registry, opts ...Option) *Analyzer {
	a := &Analyzer{
		registry:      reg,
		fs:            afero.NewOsFs(),
		maxLineLength: DefaultMaxLineLength,
		disabled:      make(map[string]bool),
		log:           zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.common = CommonRules(a.maxLineLength)
	return a
}

// Registry returns the registry the analyzer dispatches through.
func (a *Analyzer) Registry() *Registry {
	return a.registry
}

// Analyze reads path and returns its issues. Read failures produce a single
// FILE_READ_ERROR issue instead of an error.
func (a *Analyzer) Analyze(path string) types.AnalysisResult {
	content, err := a.read(path)
	if err != nil {
		a.log.Debugw("file unreadable", "path", path, "error", err)
		return types.AnalysisResult{
			FilePath: path,
			Issues: []types.Issue{{
				FilePath: path,
				Severity: types.SeverityCritical,
				RuleID:   ReadErrorID,
				Message:  fmt.Sprintf("Could not read file: %v", err),
			}},
		}
	}
	return a.AnalyzeContent(path, content)
}

// AnalyzeContent runs the rules over content as if it were read from path.
func (a *Analyzer) AnalyzeContent(path string, content []byte) types.AnalysisResult {
	raw := string(content)
	f := NewFile(path, strings.ToValidUTF8(raw, ""))
	set := a.registry.Resolve(path)

	var issues []types.Issue
	for _, r := range a.common {
		issues = append(issues, r.Check(f)...)
	}
	issues = append(issues, set.Check(f)...)

	kept := issues[:0]
	for _, issue := range issues {
		if !a.disabled[issue.RuleID] {
			kept = append(kept, issue)
		}
	}

	a.log.Debugw("file analyzed", "path", path, "rules", set.Name, "issues", len(kept))
	return types.AnalysisResult{
		FilePath:        path,
		Issues:          kept,
		OriginalContent: raw,
	}
}

func (a *Analyzer) read(path string) ([]byte, error) {
	info, err := a.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", path)
	}
	return afero.ReadFile(a.fs, path)
}
