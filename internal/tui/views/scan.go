package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buemura/willie/internal/tui/styles"
	"github.com/buemura/willie/pkg/types"
)

// Outcome is what an action produced: the issues left in the tree and a
// one-line headline describing what happened.
type Outcome struct {
	Headline string
	Results  []types.AnalysisResult
}

// RunFunc performs an action against path.
type RunFunc func(ctx context.Context, path string) (Outcome, error)

// RunCompleteMsg is sent when an action finishes.
type RunCompleteMsg struct {
	Outcome Outcome
}

type runErrorMsg struct {
	err error
}

// ScanModel shows a spinner while an action runs.
type ScanModel struct {
	spinner spinner.Model
	action  string
	path    string
	run     RunFunc
	done    bool
	err     string
	outcome Outcome
}

// NewScanModel creates a progress view running fn for the action on path.
func NewScanModel(action, path string, fn RunFunc) ScanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorAccent)

	return ScanModel{
		spinner: sp,
		action:  action,
		path:    path,
		run:     fn,
	}
}

// Init starts the spinner and launches the action.
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start())
}

func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RunCompleteMsg:
		m.done = true
		m.outcome = msg.Outcome
		return m, nil

	case runErrorMsg:
		m.done = true
		m.err = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ScanModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(appTitle))
	b.WriteString("\n\n")

	switch {
	case m.err != "":
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("%s failed: %s", m.action, m.err)))
		b.WriteString("\n")
	case m.done:
		b.WriteString(m.outcome.Headline)
		b.WriteString("\n")
	default:
		fmt.Fprintf(&b, "%s Running %s...\n", m.spinner.View(), styles.SelectedStyle.Render(m.action))
		fmt.Fprintf(&b, "  Path: %s\n", m.path)
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("esc back • ctrl+c quit"))
	return b.String()
}

// Failed reports whether the action ended in an error.
func (m ScanModel) Failed() bool {
	return m.err != ""
}

func (m ScanModel) start() tea.Cmd {
	fn, path := m.run, m.path
	return func() tea.Msg {
		outcome, err := fn(context.Background(), path)
		if err != nil {
			return runErrorMsg{err: err}
		}
		return RunCompleteMsg{Outcome: outcome}
	}
}
