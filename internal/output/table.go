package output

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/buemura/willie/pkg/types"
)

// TableFormatter renders results as a colored terminal table.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, results []types.AnalysisResult) error {
	summary := types.Summarize(results)
	if summary.IsClean() {
		fmt.Fprintf(w, "\n%d files scanned. ZERO ISSUES!\n", summary.FilesScanned)
		return nil
	}

	fmt.Fprintln(w, "\nGREASE REPORT")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Severity", "File", "Line", "Rule", "Message", "Fix"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, issue := range sortedIssues(results) {
		fixable := ""
		if issue.Fixable() {
			fixable = "auto"
		}
		table.Append([]string{
			colorSeverity(issue.Severity),
			filepath.Base(issue.FilePath),
			strconv.Itoa(issue.Line),
			issue.RuleID,
			truncate(issue.Message, 60),
			fixable,
		})
	}

	table.Render()

	fmt.Fprintf(w, "  Summary: %s\n", formatSummary(summary))
	return nil
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return color.New(color.FgWhite, color.BgRed, color.Bold).Sprint("CRITICAL")
	case types.SeverityHigh:
		return color.RedString("HIGH")
	case types.SeverityMedium:
		return color.YellowString("MEDIUM")
	case types.SeverityLow:
		return color.CyanString("LOW")
	case types.SeverityInfo:
		return color.WhiteString("INFO")
	default:
		return string(s)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
