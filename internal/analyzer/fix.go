package analyzer

import (
	"strings"

	"github.com/buemura/willie/pkg/types"
)

// ApplyFixes substitutes the fix of every auto-fixable issue into the
// content the result was computed from. It returns the new content and the
// number of lines that changed.
func ApplyFixes(result types.AnalysisResult) (string, int) {
	return FixContent(result.OriginalContent, result.Issues)
}

// FixContent applies line replacements from issues to content. Each line
// keeps its original terminator. Issues are applied in order, so when two
// fixes target the same line the later one wins. Multi-line replacements and
// out-of-range lines are ignored.
func FixContent(content string, issues []types.Issue) (string, int) {
	lines := SplitLines(content)
	original := make([]string, len(lines))
	for i, l := range lines {
		original[i] = l.Body
	}

	touched := false
	for _, issue := range issues {
		if !issue.Fixable() || strings.ContainsAny(issue.Fix, "\r\n") {
			continue
		}
		idx := issue.Line - 1
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lines[idx].Body = issue.Fix
		touched = true
	}
	if !touched {
		return content, 0
	}

	count := 0
	for i, l := range lines {
		if l.Body != original[i] {
			count++
		}
	}
	if count == 0 {
		return content, 0
	}
	return JoinLines(lines), count
}
