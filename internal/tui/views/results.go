package views

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/willie/internal/flavor"
	"github.com/buemura/willie/internal/tui/styles"
	"github.com/buemura/willie/pkg/types"
)

// ExportFile is where the e key writes the JSON report.
const ExportFile = "willie-results.json"

// ResultsModel lists the issues an action left behind.
type ResultsModel struct {
	headline  string
	results   []types.AnalysisResult
	issues    []types.Issue
	remarks   []string
	cursor    int
	offset    int
	maxRows   int
	exported  bool
	exportErr string
}

// NewResultsModel creates a results view for an outcome.
func NewResultsModel(outcome Outcome) ResultsModel {
	m := ResultsModel{
		headline: outcome.Headline,
		results:  outcome.Results,
		maxRows:  20,
	}
	for _, r := range outcome.Results {
		m.issues = append(m.issues, r.Issues...)
	}
	// Remarks are picked once so re-renders stay stable.
	m.remarks = make([]string, len(m.issues))
	for i, issue := range m.issues {
		m.remarks[i] = flavor.Insult(issue.Severity)
	}
	return m
}

func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and export.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.issues)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.maxRows {
					m.offset = m.cursor - m.maxRows + 1
				}
			}
		case "e":
			m.exportJSON()
		case "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(appTitle + " - Grease Report"))
	b.WriteString("\n\n")
	if m.headline != "" {
		b.WriteString(m.headline)
		b.WriteString("\n\n")
	}

	if len(m.issues) == 0 {
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("%d files scanned. ZERO ISSUES!", len(m.results))))
		b.WriteString("\n")
	} else {
		b.WriteString(m.summaryLine())
		b.WriteString("\n\n")

		header := fmt.Sprintf("  %-10s %-24s %s", "SEVERITY", "RULE", "LOCATION")
		b.WriteString(styles.HeaderStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 80))
		b.WriteString("\n")

		end := min(m.offset+m.maxRows, len(m.issues))
		for i := m.offset; i < end; i++ {
			issue := m.issues[i]
			cursor := "  "
			if i == m.cursor {
				cursor = styles.CursorStyle.Render("> ")
			}
			severity := styles.SeverityStyle(issue.Severity).Render(fmt.Sprintf("%-10s", issue.Severity))
			location := styles.HelpStyle.Render(fmt.Sprintf("%s:%d", filepath.Base(issue.FilePath), issue.Line))
			fmt.Fprintf(&b, "%s%s %-24s %s\n", cursor, severity, truncate(issue.RuleID, 24), location)
		}

		if len(m.issues) > m.maxRows {
			fmt.Fprintf(&b, "\n  Showing %d-%d of %d issues\n", m.offset+1, end, len(m.issues))
		}

		b.WriteString("\n")
		b.WriteString(m.detailView(m.issues[m.cursor], m.remarks[m.cursor]))
	}

	if m.exported {
		b.WriteString("\n")
		b.WriteString(styles.SelectedStyle.Render("Results exported to " + ExportFile))
	}
	if m.exportErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.exportErr))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ scroll • e export JSON • esc back • q quit"))
	return b.String()
}

func (m ResultsModel) summaryLine() string {
	counts := map[types.Severity]int{}
	fixable := 0
	for _, issue := range m.issues {
		counts[issue.Severity]++
		if issue.Fixable() {
			fixable++
		}
	}

	var parts []string
	for _, sev := range types.Severities() {
		if c := counts[sev]; c > 0 {
			parts = append(parts, styles.SeverityStyle(sev).Render(fmt.Sprintf("%s: %d", sev, c)))
		}
	}
	return fmt.Sprintf("Total: %d issues, %d auto-fixable  [%s]", len(m.issues), fixable, strings.Join(parts, "  "))
}

func (m ResultsModel) detailView(issue types.Issue, remark string) string {
	var b strings.Builder
	b.WriteString(styles.BorderStyle.Render(
		fmt.Sprintf("%s:%d\n%s (%s)\n%s",
			issue.FilePath, issue.Line, issue.RuleID, issue.Severity, issue.Message),
	))
	if issue.Snippet != "" {
		fmt.Fprintf(&b, "\n  Code: %s", issue.Snippet)
	}
	if issue.Fix != "" {
		label := "Suggestion"
		if issue.AutoFixable {
			label = "Auto-fix"
		}
		fmt.Fprintf(&b, "\n  %s: %s", label, issue.Fix)
	}
	if remark != "" {
		b.WriteString("\n  ")
		b.WriteString(styles.QuoteStyle.Render(remark))
	}
	return b.String()
}

func (m *ResultsModel) exportJSON() {
	data, err := json.MarshalIndent(types.NewReport(m.results), "", "  ")
	if err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}
	if err := os.WriteFile(ExportFile, data, 0o644); err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}
	m.exported = true
	m.exportErr = ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
