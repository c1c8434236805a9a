package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/willie/internal/config"
	"github.com/buemura/willie/internal/scrub"
)

func newTestEngine(t *testing.T, cfg config.Config, files map[string]string) (*Engine, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return New(cfg, WithFs(fs)), fs
}

func TestScan_UsesRegisteredExtensions(t *testing.T) {
	e, _ := newTestEngine(t, config.Defaults(), map[string]string{
		"/repo/app.py":    "password = \"hunter2\"\n",
		"/repo/notes.txt": "TODO: nothing\n",
	})

	results, err := e.Scan(context.Background(), "/repo")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join("/repo", "app.py"), results[0].FilePath)
	require.Len(t, results[0].Issues, 1)
	assert.Equal(t, "PASSWORD_HARDCODED", results[0].Issues[0].RuleID)
}

func TestScan_AllFiles(t *testing.T) {
	cfg := config.Defaults()
	cfg.AllFiles = true
	e, _ := newTestEngine(t, cfg, map[string]string{
		"/repo/app.py":    "x = 1\n",
		"/repo/notes.txt": "TODO: nothing\n",
	})

	results, err := e.Scan(context.Background(), "/repo")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "TODO_FOUND", results[1].Issues[0].RuleID)
}

func TestScan_DisabledRulesAndIgnores(t *testing.T) {
	cfg := config.Defaults()
	cfg.DisabledRules = []string{"password_hardcoded"}
	cfg.IgnoreDirs = []string{"vendor"}
	e, _ := newTestEngine(t, cfg, map[string]string{
		"/repo/app.py":        "password = \"hunter2\"\n",
		"/repo/vendor/lib.py": "eval(x)\n",
	})

	results, err := e.Scan(context.Background(), "/repo")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].Issues)
}

func TestScan_MissingRoot(t *testing.T) {
	e, _ := newTestEngine(t, config.Defaults(), nil)
	_, err := e.Scan(context.Background(), "/nope")
	assert.Error(t, err)
}

func TestFix_DryRunAndWrite(t *testing.T) {
	cfg := config.Defaults()
	cfg.ProvenanceComment = false
	e, fs := newTestEngine(t, cfg, map[string]string{"/repo/a.js": "let a = 1;  \n"})

	_, outcome, err := e.Fix(context.Background(), "/repo", true)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Applied)
	data, _ := afero.ReadFile(fs, "/repo/a.js")
	assert.Equal(t, "let a = 1;  \n", string(data))

	results, outcome, err := e.Fix(context.Background(), "/repo", false)
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].FixableCount())
	assert.Equal(t, 1, outcome.Applied)
	data, _ = afero.ReadFile(fs, "/repo/a.js")
	assert.Equal(t, "let a = 1;\n", string(data))
}

func TestScrub_Observer(t *testing.T) {
	e, _ := newTestEngine(t, config.Defaults(), map[string]string{"/repo/a.py": "x = 1 \n"})

	rounds := 0
	report, err := e.Scrub(context.Background(), "/repo", 5, scrub.WithObserver(func(scrub.Round) { rounds++ }))
	require.NoError(t, err)
	assert.Equal(t, scrub.StateClean, report.State)
	assert.Equal(t, 1, rounds)
}

func TestAnalyze_SingleFile(t *testing.T) {
	e, _ := newTestEngine(t, config.Defaults(), map[string]string{"/repo/Makefile": "# FIXME later\n"})

	result := e.Analyze("/repo/Makefile")
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "TODO_FOUND", result.Issues[0].RuleID)
}

type lockedFs struct {
	afero.Fs
	locked string
}

func (l lockedFs) Open(name string) (afero.File, error) {
	if filepath.Clean(name) == l.locked {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return l.Fs.Open(name)
}

func TestScanAndScrub_UnreadableSubdirDoesNotAbort(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/src/a.py", []byte("eval(x)\n"), 0o644))
	require.NoError(t, afero.WriteFile(mem, "/src/locked/b.py", []byte("eval(y)\n"), 0o644))
	e := New(config.Defaults(), WithFs(lockedFs{Fs: mem, locked: "/src/locked"}))

	results, err := e.Scan(context.Background(), "/src")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join("/src", "a.py"), results[0].FilePath)

	report, err := e.Scrub(context.Background(), "/src", 3)
	require.NoError(t, err)
	assert.Equal(t, scrub.StateNoFixableRemaining, report.State)
	assert.Equal(t, 1, report.Summary.TotalIssues)
}
