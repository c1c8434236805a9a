package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLines_Endings(t *testing.T) {
	lines := SplitLines("a\r\nb\nc")
	assert.Equal(t, []Line{
		{Body: "a", Ending: "\r\n"},
		{Body: "b", Ending: "\n"},
		{Body: "c", Ending: ""},
	}, lines)
}

func TestSplitLines_BareCarriageReturn(t *testing.T) {
	assert.Equal(t, []Line{
		{Body: "a", Ending: "\r"},
		{Body: "b", Ending: "\r"},
		{Body: "", Ending: "\r\n"},
		{Body: "c", Ending: ""},
	}, SplitLines("a\rb\r\r\nc"))
	assert.Equal(t, []string{"x = 1  ", "y = 2"}, LineBodies("x = 1  \ry = 2\r"))
}

func TestSplitLines_FinalTerminatorAddsNoLine(t *testing.T) {
	assert.Len(t, SplitLines("a\nb\n"), 2)
	assert.Len(t, SplitLines("a\n\n"), 2)
	assert.Empty(t, SplitLines(""))
}

func TestLineBodies_AgreesWithSplitLines(t *testing.T) {
	content := "one\r\ntwo\n\nfour"
	assert.Equal(t, []string{"one", "two", "", "four"}, LineBodies(content))
	assert.Len(t, LineBodies(content), len(SplitLines(content)))
}

func TestJoinLines_RoundTrip(t *testing.T) {
	for _, content := range []string{"", "x", "x\n", "a\r\nb\n", "a\n\nb", "a\rb\r", "\r\r\n"} {
		assert.Equal(t, content, JoinLines(SplitLines(content)))
	}
}
