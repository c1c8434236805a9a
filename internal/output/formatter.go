package output

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/buemura/willie/internal/version"
	"github.com/buemura/willie/pkg/types"
)

// Formatter renders analysis results to a writer.
type Formatter interface {
	Format(w io.Writer, results []types.AnalysisResult) error
}

// Formats lists the accepted --output values.
var Formats = []string{"table", "json", "markdown", "html", "sarif"}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	case "html":
		return &HTMLFormatter{}, nil
	case "sarif":
		return &SARIFFormatter{ToolVersion: version.Version}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, json, markdown, html, sarif)", format)
	}
}

// sortedIssues flattens results, most severe first. Within a severity the
// detection order is kept. The results are not modified.
func sortedIssues(results []types.AnalysisResult) []types.Issue {
	var issues []types.Issue
	for _, r := range results {
		issues = append(issues, r.Issues...)
	}
	slices.SortStableFunc(issues, func(a, b types.Issue) int {
		return cmp.Compare(types.SeverityRank(a.Severity), types.SeverityRank(b.Severity))
	})
	return issues
}

func formatSummary(s types.Summary) string {
	return fmt.Sprintf("%d issues in %d files (%d critical, %d high, %d medium, %d low, %d info), %d auto-fixable",
		s.TotalIssues,
		s.FilesScanned,
		s.BySeverity[types.SeverityCritical],
		s.BySeverity[types.SeverityHigh],
		s.BySeverity[types.SeverityMedium],
		s.BySeverity[types.SeverityLow],
		s.BySeverity[types.SeverityInfo],
		s.Fixable,
	)
}
