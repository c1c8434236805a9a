package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, 120, cfg.MaxLineLength)
	assert.Equal(t, 10, cfg.MaxIterations)
	assert.True(t, cfg.ProvenanceComment)
	assert.False(t, cfg.AllFiles)
	assert.Empty(t, cfg.DisabledRules)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Empty(t, cfg.Profiles)
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Ensure no env vars interfere.
	for _, key := range []string{"WILLIE_OUTPUT_FORMAT", "WILLIE_CONCURRENCY", "WILLIE_MAX_ITERATIONS", "WILLIE_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 10, cfg.MaxIterations)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("max_iterations: 3\n"), 0o644))
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MaxIterations)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, FileName)

	content := `output_format: "json"
concurrency: 20
timeout: 30s
max_line_length: 100
max_iterations: 4
provenance_comment: false
all_files: true
ignore_dirs:
  - vendor
disabled_rules:
  - TODO_FOUND
profiles:
  - name: strict
    max_line_length: 80
  - name: relaxed
    disabled_rules:
      - LINE_TOO_LONG
      - CONSOLE_LOG
`
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0o644))

	cfg, err := LoadFromFile(cfgFile)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 20, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 100, cfg.MaxLineLength)
	assert.Equal(t, 4, cfg.MaxIterations)
	assert.False(t, cfg.ProvenanceComment)
	assert.True(t, cfg.AllFiles)
	assert.Equal(t, []string{"vendor"}, cfg.IgnoreDirs)
	assert.Equal(t, []string{"TODO_FOUND"}, cfg.DisabledRules)

	require.Len(t, cfg.Profiles, 2)
	assert.Equal(t, "strict", cfg.Profiles[0].Name)
	assert.Equal(t, 80, cfg.Profiles[0].MaxLineLength)
	assert.Equal(t, []string{"LINE_TOO_LONG", "CONSOLE_LOG"}, cfg.Profiles[1].DisabledRules)
}

func TestLoadFromFile_NotFound(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/.willie.yaml")
	assert.Error(t, err)
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(cfgFile, []byte("{{invalid yaml"), 0o644))

	_, err := LoadFromFile(cfgFile)
	assert.Error(t, err)
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WILLIE_CONCURRENCY", "50")
	t.Setenv("WILLIE_OUTPUT_FORMAT", "json")
	t.Setenv("WILLIE_MAX_ITERATIONS", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Concurrency)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 2, cfg.MaxIterations)
}

func newFlagCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("output", "table", "")
	cmd.Flags().Int("concurrency", 8, "")
	cmd.Flags().Duration("timeout", 5*time.Minute, "")
	cmd.Flags().Int("max-line-length", 120, "")
	cmd.Flags().Int("max-iterations", 10, "")
	cmd.Flags().Bool("all-files", false, "")
	cmd.Flags().Bool("no-provenance", false, "")
	cmd.Flags().StringSlice("disable", nil, "")
	cmd.Flags().String("log-level", "warn", "")
	cmd.Flags().Bool("verbose", false, "")
	cmd.Flags().String("profile", "", "")
	return cmd
}

func TestApplyFlags(t *testing.T) {
	cfg := Defaults()
	cmd := newFlagCmd()

	// Simulate setting flags via command line.
	require.NoError(t, cmd.Flags().Set("concurrency", "25"))
	require.NoError(t, cmd.Flags().Set("max-iterations", "3"))
	require.NoError(t, cmd.Flags().Set("no-provenance", "true"))
	require.NoError(t, cmd.Flags().Set("disable", "TODO_FOUND,LINE_TOO_LONG"))
	require.NoError(t, cmd.Flags().Set("verbose", "true"))

	require.NoError(t, ApplyFlags(&cfg, cmd))

	assert.Equal(t, "table", cfg.OutputFormat) // Not changed, flag wasn't set.
	assert.Equal(t, 25, cfg.Concurrency)
	assert.Equal(t, 3, cfg.MaxIterations)
	assert.False(t, cfg.ProvenanceComment)
	assert.Equal(t, []string{"TODO_FOUND", "LINE_TOO_LONG"}, cfg.DisabledRules)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
}

func TestApplyFlags_NoOverrideWhenUnchanged(t *testing.T) {
	cfg := Config{
		OutputFormat:  "json",
		Concurrency:   30,
		MaxIterations: 7,
		LogLevel:      "info",
	}

	// Don't set any flags, none should override.
	require.NoError(t, ApplyFlags(&cfg, newFlagCmd()))

	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 30, cfg.Concurrency)
	assert.Equal(t, 7, cfg.MaxIterations)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestApplyFlags_Profile(t *testing.T) {
	cfg := Defaults()
	cfg.Profiles = []Profile{{Name: "strict", MaxLineLength: 80, DisabledRules: []string{"TODO_FOUND"}}}

	cmd := newFlagCmd()
	require.NoError(t, cmd.Flags().Set("profile", "strict"))
	require.NoError(t, ApplyFlags(&cfg, cmd))
	assert.Equal(t, 80, cfg.MaxLineLength)
	assert.Equal(t, []string{"TODO_FOUND"}, cfg.DisabledRules)

	missing := newFlagCmd()
	require.NoError(t, missing.Flags().Set("profile", "nope"))
	err := ApplyFlags(&cfg, missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetProfile(t *testing.T) {
	cfg := &Config{Profiles: []Profile{{Name: "quick"}, {Name: "full"}}}

	t.Run("found", func(t *testing.T) {
		p := cfg.GetProfile("quick")
		require.NotNil(t, p)
		assert.Equal(t, "quick", p.Name)
	})

	t.Run("not found", func(t *testing.T) {
		assert.Nil(t, cfg.GetProfile("nonexistent"))
	})
}

func TestDisabledRuleIDs(t *testing.T) {
	cfg := Config{DisabledRules: []string{" todo_found ", "", "LINE_TOO_LONG"}}
	assert.Equal(t, []string{"TODO_FOUND", "LINE_TOO_LONG"}, cfg.DisabledRuleIDs())
}

func TestConfigFilePath(t *testing.T) {
	assert.Contains(t, ConfigFilePath(), FileName)
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Defaults()
	cfg.MaxIterations = 6
	cfg.DisabledRules = []string{"CONSOLE_LOG"}

	require.NoError(t, Write(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 6, loaded.MaxIterations)
	assert.Equal(t, 5*time.Minute, loaded.Timeout)
	assert.Equal(t, []string{"CONSOLE_LOG"}, loaded.DisabledRules)
}

func TestLoadFromFile_PartialConfig(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(cfgFile, []byte("concurrency: 50\n"), 0o644))

	cfg, err := LoadFromFile(cfgFile)
	require.NoError(t, err)

	// Explicitly set values.
	assert.Equal(t, 50, cfg.Concurrency)
	// Defaults for unset values.
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Equal(t, 120, cfg.MaxLineLength)
	assert.True(t, cfg.ProvenanceComment)
}
