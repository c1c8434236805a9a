package analyzer

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/buemura/willie/pkg/types"
)

// File is the read-only snapshot every rule inspects.
type File struct {
	Path  string
	Text  string
	Lines []string
}

// NewFile builds a snapshot from decoded text.
func NewFile(path, text string) *File {
	return &File{Path: path, Text: text, Lines: LineBodies(text)}
}

// Ext returns the lower-cased extension of the file path.
func (f *File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Path))
}

// Line returns the 1-based line n, or "" when out of range.
func (f *File) Line(n int) string {
	if n < 1 || n > len(f.Lines) {
		return ""
	}
	return f.Lines[n-1]
}

// Window returns lines from..to (1-based, inclusive), clamped to the file.
func (f *File) Window(from, to int) []string {
	if from < 1 {
		from = 1
	}
	if to > len(f.Lines) {
		to = len(f.Lines)
	}
	if from > to {
		return nil
	}
	return f.Lines[from-1 : to]
}

// IssueOption customizes an issue created through File.Issue.
type IssueOption func(*types.Issue)

// WithAdvice attaches advisory fix text.
func WithAdvice(text string) IssueOption {
	return func(i *types.Issue) {
		i.Fix = text
		i.AutoFixable = false
	}
}

// WithAutoFix attaches a replacement line and marks the issue auto-fixable.
// An empty replacement leaves the issue unfixable.
func WithAutoFix(replacement string) IssueOption {
	return func(i *types.Issue) {
		i.Fix = replacement
		i.AutoFixable = replacement != ""
	}
}

// Issue creates an issue at line (1-based, 0 for file level) capturing the
// trimmed line as snippet.
func (f *File) Issue(line, col int, sev types.Severity, id, msg string, opts ...IssueOption) types.Issue {
	issue := types.Issue{
		FilePath: f.Path,
		Line:     line,
		Column:   col,
		Severity: sev,
		RuleID:   id,
		Message:  msg,
		Snippet:  strings.TrimSpace(f.Line(line)),
	}
	for _, opt := range opts {
		opt(&issue)
	}
	return issue
}

// Rule is a single pure check over a file snapshot.
type Rule struct {
	Name        string
	Description string
	// IDs lists the rule ids the check can raise.
	IDs   []string
	Check func(f *File) []types.Issue
}

// RuleSet is a named collection of rules bound to file extensions.
type RuleSet struct {
	Name       string
	Extensions []string
	Rules      []Rule
}

// Check runs every rule of the set in order.
func (s RuleSet) Check(f *File) []types.Issue {
	var issues []types.Issue
	for _, r := range s.Rules {
		issues = append(issues, r.Check(f)...)
	}
	return issues
}

// IDs returns every rule id the set can raise, in rule order.
func (s RuleSet) IDs() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, r := range s.Rules {
		for _, id := range r.IDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Pattern pairs an expression with the rule id a match raises.
type Pattern struct {
	ID string
	Re *regexp.Regexp
}

// LineMatcher raises one issue per line for every pattern that matches that
// line. Lines accepted by Skip are ignored.
type LineMatcher struct {
	Patterns []Pattern
	Severity types.Severity
	Message  string
	Options  []IssueOption
	Skip     func(line string) bool
}

// Check implements Rule.Check.
func (m LineMatcher) Check(f *File) []types.Issue {
	var issues []types.Issue
	for n, line := range f.Lines {
		if m.Skip != nil && m.Skip(line) {
			continue
		}
		for _, p := range m.Patterns {
			if p.Re.MatchString(line) {
				issues = append(issues, f.Issue(n+1, 0, m.Severity, p.ID, m.Message, m.Options...))
			}
		}
	}
	return issues
}

// Matcher wraps a LineMatcher into a Rule.
func Matcher(name, description string, m LineMatcher) Rule {
	return Rule{Name: name, Description: description, IDs: m.IDs(), Check: m.Check}
}

// IDs returns the ids of the matcher's patterns.
func (m LineMatcher) IDs() []string {
	ids := make([]string, 0, len(m.Patterns))
	for _, p := range m.Patterns {
		ids = append(ids, p.ID)
	}
	return ids
}

// CommentedWith reports lines whose first non-blank text is the marker.
func CommentedWith(marker string) func(string) bool {
	return func(line string) bool {
		return strings.HasPrefix(strings.TrimSpace(line), marker)
	}
}
