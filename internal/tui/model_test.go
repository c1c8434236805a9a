package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/willie/internal/config"
	"github.com/buemura/willie/internal/engine"
	"github.com/buemura/willie/internal/tui/views"
)

func newTestEngine(t *testing.T) (*engine.Engine, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/repo/app.py", []byte("x = 1   \nresult = eval(data)\n"), 0o644))
	cfg := config.Defaults()
	cfg.ProvenanceComment = false
	return engine.New(cfg, engine.WithFs(fs)), fs
}

func newTestModel(t *testing.T) Model {
	eng, _ := newTestEngine(t)
	return NewModel(eng, 3)
}

func TestNewModelStartsAtMenuState(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, stateMenu, m.state)
	assert.Len(t, m.menu.Items(), 3)
}

func TestModelViewRendersMenuByDefault(t *testing.T) {
	view := newTestModel(t).View()
	assert.Contains(t, view, "Willie")
	assert.Contains(t, view, "scrub")
}

func TestModelCtrlCQuits(t *testing.T) {
	_, cmd := newTestModel(t).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
}

func TestModelEscReturnsToMenu(t *testing.T) {
	for _, state := range []appState{stateTarget, stateResults} {
		m := newTestModel(t)
		m.state = state

		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
		assert.Equal(t, stateMenu, updated.(Model).state)
	}
}

func TestModelWindowSizeMsg(t *testing.T) {
	updated, _ := newTestModel(t).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(Model)
	assert.Equal(t, 120, model.width)
	assert.Equal(t, 40, model.height)
}

func TestModelMenuEnterOpensTarget(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model := updated.(Model)
	assert.Equal(t, stateTarget, model.state)
	assert.Equal(t, "scan", model.target.Action())
	assert.NotNil(t, cmd)
}

func TestModelRunCompleteShowsResults(t *testing.T) {
	m := newTestModel(t)
	m.state = stateRun

	updated, _ := m.Update(views.RunCompleteMsg{Outcome: views.Outcome{Headline: "done here"}})
	model := updated.(Model)
	assert.Equal(t, stateResults, model.state)
	assert.Contains(t, model.View(), "done here")
}

func TestActions(t *testing.T) {
	ctx := context.Background()

	t.Run("scan", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		out, err := scanAction(eng)(ctx, "/repo")
		require.NoError(t, err)
		assert.Equal(t, "Scan complete! Found 2 issues in 1 files.", out.Headline)
	})

	t.Run("fix", func(t *testing.T) {
		eng, fs := newTestEngine(t)
		out, err := fixAction(eng)(ctx, "/repo")
		require.NoError(t, err)
		assert.Equal(t, "Applied 1 fixes in 1 files.", out.Headline)
		require.Len(t, out.Results, 1)
		require.Len(t, out.Results[0].Issues, 1)
		assert.Equal(t, "DANGEROUS_EVAL", out.Results[0].Issues[0].RuleID)

		data, _ := afero.ReadFile(fs, "/repo/app.py")
		assert.Equal(t, "x = 1\nresult = eval(data)\n", string(data))
	})

	t.Run("scrub", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		out, err := scrubAction(eng, 3)(ctx, "/repo")
		require.NoError(t, err)
		assert.Equal(t, "Scrub finished: NO_FIXABLE_REMAINING after 1 iterations.", out.Headline)
	})

	t.Run("missing path", func(t *testing.T) {
		eng, _ := newTestEngine(t)
		_, err := scanAction(eng)(ctx, "/nope")
		assert.Error(t, err)
	})
}
