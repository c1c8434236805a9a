package views

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanModel_RunsAndCompletes(t *testing.T) {
	var gotPath string
	fn := func(_ context.Context, path string) (Outcome, error) {
		gotPath = path
		return Outcome{Headline: "Scan complete! Found 0 issues."}, nil
	}
	m := NewScanModel("scan", "./src", fn)
	assert.Contains(t, m.View(), "Running")
	assert.Contains(t, m.View(), "./src")

	msg := m.start()()
	complete, ok := msg.(RunCompleteMsg)
	require.True(t, ok)
	assert.Equal(t, "./src", gotPath)

	updated, _ := m.Update(complete)
	m = updated.(ScanModel)
	assert.False(t, m.Failed())
	assert.Contains(t, m.View(), "Scan complete!")
}

func TestScanModel_Error(t *testing.T) {
	fn := func(context.Context, string) (Outcome, error) {
		return Outcome{}, errors.New("no such file")
	}
	m := NewScanModel("fix", "/nope", fn)

	updated, _ := m.Update(m.start()())
	m = updated.(ScanModel)
	assert.True(t, m.Failed())
	assert.Contains(t, m.View(), "fix failed: no such file")
}

func TestScanModel_Init(t *testing.T) {
	m := NewScanModel("scan", ".", func(context.Context, string) (Outcome, error) { return Outcome{}, nil })
	assert.NotNil(t, m.Init())
}
