package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/willie/internal/engine"
	"github.com/buemura/willie/internal/tui/views"
	"github.com/buemura/willie/pkg/types"
)

// appState represents which view is currently active.
type appState int

const (
	stateMenu    appState = iota // Action selection menu
	stateTarget                  // Path input
	stateRun                     // Action in progress
	stateResults                 // Results display
)

type action struct {
	item views.ActionItem
	run  views.RunFunc
}

// Model is the root Bubble Tea model that manages view transitions.
type Model struct {
	state   appState
	actions map[string]action
	width   int
	height  int

	menu    views.MenuModel
	target  views.TargetModel
	run     views.ScanModel
	results views.ResultsModel
}

// NewModel creates the root model. Scrub runs use maxIterations rounds.
func NewModel(eng *engine.Engine, maxIterations int) Model {
	list := []action{
		{views.ActionItem{Name: "scan", Description: "Audit code without changing it"}, scanAction(eng)},
		{views.ActionItem{Name: "fix", Description: "Apply auto-fixes once"}, fixAction(eng)},
		{views.ActionItem{Name: "scrub", Description: "Fix until 100% clean (or give up)"}, scrubAction(eng, maxIterations)},
	}

	items := make([]views.ActionItem, len(list))
	actions := make(map[string]action, len(list))
	for i, a := range list {
		items[i] = a.item
		actions[a.item.Name] = a
	}

	return Model{
		state:   stateMenu,
		actions: actions,
		menu:    views.NewMenuModel(items),
		target:  views.NewTargetModel(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.target.Init()
}

// Update handles messages and manages state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.handleBack()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	switch m.state {
	case stateMenu:
		return m.updateMenu(msg)
	case stateTarget:
		return m.updateTarget(msg)
	case stateRun:
		return m.updateRun(msg)
	case stateResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateMenu:
		return m.menu.View()
	case stateTarget:
		return m.target.View()
	case stateRun:
		return m.run.View()
	case stateResults:
		return m.results.View()
	}
	return ""
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateTarget, stateResults:
		m.state = stateMenu
	case stateRun:
		// A running action can't be abandoned, only a failed one.
		if m.run.Failed() {
			m.state = stateMenu
		}
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if selected := m.menu.Selected(); selected != nil {
			m.target = views.NewTargetModel()
			m.target.SetAction(selected.Name)
			m.state = stateTarget
			return m, m.target.Init()
		}
	}

	updated, cmd := m.menu.Update(msg)
	m.menu = updated.(views.MenuModel)
	return m, cmd
}

func (m Model) updateTarget(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if path, err := m.target.ValidatedPath(); err == nil {
			a, ok := m.actions[m.target.Action()]
			if !ok {
				return m, nil
			}
			m.run = views.NewScanModel(a.item.Name, path, a.run)
			m.state = stateRun
			return m, m.run.Init()
		}
	}

	updated, cmd := m.target.Update(msg)
	m.target = updated.(views.TargetModel)
	return m, cmd
}

func (m Model) updateRun(msg tea.Msg) (tea.Model, tea.Cmd) {
	if done, ok := msg.(views.RunCompleteMsg); ok {
		m.results = views.NewResultsModel(done.Outcome)
		m.state = stateResults
		return m, nil
	}

	updated, cmd := m.run.Update(msg)
	m.run = updated.(views.ScanModel)
	return m, cmd
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.results.Update(msg)
	m.results = updated.(views.ResultsModel)
	return m, cmd
}

func scanAction(eng *engine.Engine) views.RunFunc {
	return func(ctx context.Context, path string) (views.Outcome, error) {
		results, err := eng.Scan(ctx, path)
		if err != nil {
			return views.Outcome{}, err
		}
		s := types.Summarize(results)
		return views.Outcome{
			Headline: fmt.Sprintf("Scan complete! Found %d issues in %d files.", s.TotalIssues, s.FilesScanned),
			Results:  results,
		}, nil
	}
}

func fixAction(eng *engine.Engine) views.RunFunc {
	return func(ctx context.Context, path string) (views.Outcome, error) {
		_, outcome, err := eng.Fix(ctx, path, false)
		if err != nil {
			return views.Outcome{}, err
		}
		if err := outcome.Err(); err != nil {
			return views.Outcome{}, err
		}
		// Show what is left after the write.
		remaining, err := eng.Scan(ctx, path)
		if err != nil {
			return views.Outcome{}, err
		}
		return views.Outcome{
			Headline: fmt.Sprintf("Applied %d fixes in %d files.", outcome.Applied, len(outcome.Files)),
			Results:  remaining,
		}, nil
	}
}

func scrubAction(eng *engine.Engine, maxIterations int) views.RunFunc {
	return func(ctx context.Context, path string) (views.Outcome, error) {
		report, err := eng.Scrub(ctx, path, maxIterations)
		if err != nil {
			return views.Outcome{}, err
		}
		return views.Outcome{
			Headline: fmt.Sprintf("Scrub finished: %s after %d iterations.", report.State, report.Iterations),
			Results:  report.Results,
		}, nil
	}
}
