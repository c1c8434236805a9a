package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/buemura/willie/pkg/types"
)

// MarkdownFormatter renders results as Markdown tables suitable for
// pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, results []types.AnalysisResult) error {
	fmt.Fprintln(w, "# Willie Grease Report")
	fmt.Fprintln(w)

	first := true
	for _, result := range results {
		if result.IsClean() {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false

		fmt.Fprintf(w, "## %s\n\n", escapeMarkdown(result.FilePath))
		fmt.Fprintln(w, "| Severity | Line | Rule | Message | Fix |")
		fmt.Fprintln(w, "|----------|------|------|---------|-----|")

		for _, issue := range sortedIssues([]types.AnalysisResult{result}) {
			fix := ""
			if issue.Fix != "" {
				fix = "`" + escapeMarkdown(issue.Fix) + "`"
			}
			fmt.Fprintf(w, "| %s | %d | %s | %s | %s |\n",
				severityBadge(issue.Severity), issue.Line, issue.RuleID, escapeMarkdown(issue.Message), fix)
		}
	}

	if first {
		fmt.Fprintln(w, "_No issues found._")
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "**Summary:** %s\n", formatSummary(types.Summarize(results)))
	return nil
}

// severityBadge returns a bold, uppercased severity label for Markdown.
func severityBadge(s types.Severity) string {
	return fmt.Sprintf("**%s**", string(s))
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
