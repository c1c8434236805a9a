package analyzer

import (
	"regexp"
	"testing"

	"github.com/buemura/willie/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_LineAndWindow(t *testing.T) {
	f := NewFile("a.py", "one\ntwo\nthree\n")

	assert.Equal(t, "two", f.Line(2))
	assert.Equal(t, "", f.Line(0))
	assert.Equal(t, "", f.Line(4))
	assert.Equal(t, []string{"one", "two"}, f.Window(-3, 2))
	assert.Equal(t, []string{"three"}, f.Window(3, 10))
	assert.Nil(t, f.Window(4, 10))
}

func TestFile_Ext(t *testing.T) {
	assert.Equal(t, ".py", NewFile("dir/Main.PY", "").Ext())
	assert.Equal(t, ".env", NewFile(".env", "").Ext())
}

func TestFile_IssueCapturesTrimmedSnippet(t *testing.T) {
	f := NewFile("a.py", "  x = 1  \n")
	issue := f.Issue(1, 3, types.SeverityLow, "X", "msg", WithAutoFix("  x = 1"))

	assert.Equal(t, "a.py", issue.FilePath)
	assert.Equal(t, "x = 1", issue.Snippet)
	assert.True(t, issue.AutoFixable)
	assert.Equal(t, "  x = 1", issue.Fix)
}

func TestWithAutoFix_EmptyIsNotFixable(t *testing.T) {
	f := NewFile("a.py", "x\n")
	issue := f.Issue(1, 0, types.SeverityLow, "X", "msg", WithAutoFix(""))
	assert.False(t, issue.AutoFixable)
}

func TestWithAdvice(t *testing.T) {
	f := NewFile("a.py", "x\n")
	issue := f.Issue(1, 0, types.SeverityLow, "X", "msg", WithAdvice("do better"))
	assert.Equal(t, "do better", issue.Fix)
	assert.False(t, issue.Fixable())
}

func TestLineMatcher_OneIssuePerPatternPerLine(t *testing.T) {
	m := LineMatcher{
		Patterns: []Pattern{
			{ID: "FOO", Re: regexp.MustCompile(`foo`)},
			{ID: "BAR", Re: regexp.MustCompile(`bar`)},
		},
		Severity: types.SeverityMedium,
		Message:  "found",
		Skip:     CommentedWith("#"),
	}
	f := NewFile("x.txt", "foo foo bar\n# foo\nbar\n")
	issues := m.Check(f)

	require.Len(t, issues, 3)
	assert.Equal(t, "FOO", issues[0].RuleID)
	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, "BAR", issues[1].RuleID)
	assert.Equal(t, 3, issues[2].Line)
	assert.Equal(t, []string{"FOO", "BAR"}, m.IDs())
}

func TestRuleSet_IDsDeduplicated(t *testing.T) {
	set := RuleSet{Rules: []Rule{
		{IDs: []string{"A", "B"}},
		{IDs: []string{"B", "C"}},
	}}
	assert.Equal(t, []string{"A", "B", "C"}, set.IDs())
}
