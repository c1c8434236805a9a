package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/willie/pkg/types"
)

func sampleResults() []types.AnalysisResult {
	return []types.AnalysisResult{
		{
			FilePath: "src/app.py",
			Issues: []types.Issue{
				{FilePath: "src/app.py", Line: 3, Column: 5, Severity: types.SeverityLow, RuleID: "TRAILING_WHITESPACE",
					Message: "Trailing whitespace. Sloppy!", Snippet: "x = 1", Fix: "x = 1", AutoFixable: true},
				{FilePath: "src/app.py", Line: 1, Severity: types.SeverityCritical, RuleID: "PASSWORD_HARDCODED",
					Message: "Hardcoded secret detected!", Snippet: "password = secret", Fix: "Use os.environ.get() or a .env file"},
			},
		},
		{FilePath: "src/clean.js"},
	}
}

func TestGetFormatter(t *testing.T) {
	tests := map[string]Formatter{
		"table":    &TableFormatter{},
		"json":     &JSONFormatter{},
		"markdown": &MarkdownFormatter{},
		"html":     &HTMLFormatter{},
		"sarif":    &SARIFFormatter{},
	}
	for name, want := range tests {
		f, err := GetFormatter(name)
		require.NoError(t, err, name)
		assert.IsType(t, want, f)
	}
}

func TestGetFormatter_Unknown(t *testing.T) {
	_, err := GetFormatter("xml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestSortedIssues_SeverityFirstWithoutMutating(t *testing.T) {
	results := sampleResults()
	issues := sortedIssues(results)

	require.Len(t, issues, 2)
	assert.Equal(t, "PASSWORD_HARDCODED", issues[0].RuleID)
	assert.Equal(t, "TRAILING_WHITESPACE", issues[1].RuleID)
	assert.Equal(t, "TRAILING_WHITESPACE", results[0].Issues[0].RuleID)
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, sampleResults())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "GREASE REPORT")
	assert.Contains(t, output, "app.py")
	assert.Contains(t, output, "PASSWORD_HARDCODED")
	assert.Contains(t, output, "auto")
	assert.Contains(t, output, "Summary: 2 issues in 2 files (1 critical, 0 high, 0 medium, 1 low, 0 info), 1 auto-fixable")
}

func TestTableFormatter_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}
	err := f.Format(&buf, []types.AnalysisResult{{FilePath: "a.py"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "1 files scanned. ZERO ISSUES!")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	err := f.Format(&buf, sampleResults())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 2, decoded["files_scanned"])
	assert.EqualValues(t, 2, decoded["total_issues"])

	issues, ok := decoded["issues"].([]any)
	require.True(t, ok)
	require.Len(t, issues, 2)
	first := issues[0].(map[string]any)
	assert.Equal(t, "TRAILING_WHITESPACE", first["rule"])
	assert.Equal(t, true, first["auto_fixable"])
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).Format(&buf, nil))
	assert.Contains(t, buf.String(), `"issues": []`)
}

func TestMarkdownFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	err := f.Format(&buf, sampleResults())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "## src/app.py")
	assert.NotContains(t, output, "## src/clean.js")
	assert.Contains(t, output, "| Severity | Line | Rule | Message | Fix |")
	assert.Contains(t, output, "| **CRITICAL** | 1 | PASSWORD_HARDCODED |")
	assert.Contains(t, output, "`x = 1`")
	assert.Contains(t, output, "**Summary:** 2 issues in 2 files")
}

func TestMarkdownFormatter_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	err := (&MarkdownFormatter{}).Format(&buf, []types.AnalysisResult{{FilePath: "a.py"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "_No issues found._")
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	var buf bytes.Buffer
	results := []types.AnalysisResult{{
		FilePath: "a.js",
		Issues:   []types.Issue{{FilePath: "a.js", Line: 1, Severity: types.SeverityInfo, RuleID: "X", Message: "A|B"}},
	}}
	require.NoError(t, (&MarkdownFormatter{}).Format(&buf, results))
	assert.Contains(t, buf.String(), `A\|B`)
}

func TestHTMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &HTMLFormatter{}
	err := f.Format(&buf, sampleResults())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "<!DOCTYPE html>")
	assert.Contains(t, output, "Willie Grease Report")
	assert.Contains(t, output, "src/app.py")
	assert.Contains(t, output, `class="badge critical"`)
	assert.Contains(t, output, "1 Critical")
	assert.Contains(t, output, "<details>")
	assert.Contains(t, output, "Auto-fix")
	assert.Contains(t, output, "Suggestion")
}

func TestHTMLFormatter_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	err := (&HTMLFormatter{}).Format(&buf, []types.AnalysisResult{{FilePath: "a.py"}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No issues found.")
}

func TestSARIFFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &SARIFFormatter{ToolVersion: "9.9.9"}
	require.NoError(t, f.Format(&buf, sampleResults()))

	var log sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	assert.Equal(t, "willie", log.Runs[0].Tool.Driver.Name)
	assert.Equal(t, "9.9.9", log.Runs[0].Tool.Driver.Version)

	results := log.Runs[0].Results
	require.Len(t, results, 2)
	assert.Equal(t, "PASSWORD_HARDCODED", results[0].RuleID)
	assert.Equal(t, "error", results[0].Level)
	assert.Equal(t, 1, results[0].Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, "note", results[1].Level)
	assert.Equal(t, 6, results[1].Locations[0].PhysicalLocation.Region.StartColumn)
	assert.Equal(t, "src/app.py", results[1].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestSevToLevel(t *testing.T) {
	assert.Equal(t, "error", sevToLevel(types.SeverityHigh))
	assert.Equal(t, "warning", sevToLevel(types.SeverityMedium))
	assert.Equal(t, "note", sevToLevel(types.SeverityInfo))
}

func TestToURI(t *testing.T) {
	assert.Equal(t, "src/a.py", toURI("./src/a.py"))
	assert.Equal(t, "src/a.py", toURI("../../src/a.py"))
}
