package analyzer

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_PreservesOrder(t *testing.T) {
	files := make(map[string]string)
	var paths []string
	for i := 0; i < 25; i++ {
		p := fmt.Sprintf("/src/f%02d.txt", i)
		files[p] = fmt.Sprintf("line %d \n", i)
		paths = append(paths, p)
	}
	runner := NewRunner(newTestAnalyzer(t, files), 4)

	results, err := runner.Run(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))
	for i, r := range results {
		assert.Equal(t, paths[i], r.FilePath)
		assert.Equal(t, 1, r.IssueCount())
	}
}

func TestRunner_DefaultConcurrency(t *testing.T) {
	r := NewRunner(newTestAnalyzer(t, nil), 0)
	assert.Equal(t, DefaultConcurrency, r.concurrency)
}

func TestRunner_Empty(t *testing.T) {
	results, err := NewRunner(newTestAnalyzer(t, nil), 2).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRunner_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewRunner(newTestAnalyzer(t, nil), 2).Run(ctx, []string{"/a", "/b"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}
