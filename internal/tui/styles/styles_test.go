package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/buemura/willie/pkg/types"
)

func TestSeverityStyle_EveryLevelRenders(t *testing.T) {
	for _, s := range append(types.Severities(), types.Severity("UNKNOWN")) {
		t.Run(string(s), func(t *testing.T) {
			assert.Contains(t, SeverityStyle(s).Render("test"), "test")
		})
	}
}

func TestSeverityStyle_UnknownIsPlain(t *testing.T) {
	assert.Equal(t, "plain", SeverityStyle("BOGUS").Render("plain"))
}

func TestStylesRender(t *testing.T) {
	tests := []struct {
		name  string
		style func(...string) string
	}{
		{"TitleStyle", TitleStyle.Render},
		{"HeaderStyle", HeaderStyle.Render},
		{"BorderStyle", BorderStyle.Render},
		{"SelectedStyle", SelectedStyle.Render},
		{"CursorStyle", CursorStyle.Render},
		{"HelpStyle", HelpStyle.Render},
		{"QuoteStyle", QuoteStyle.Render},
		{"ErrorStyle", ErrorStyle.Render},
		{"SuccessStyle", SuccessStyle.Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.style("hello"), "hello")
		})
	}
}
