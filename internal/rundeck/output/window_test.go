package output

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehsaniara/rundeck-mcp/internal/rundeck/domain"
)

func entries(n int) []domain.LogEntry {
	out := make([]domain.LogEntry, n)
	for i := range out {
		out[i] = domain.LogEntry{Message: fmt.Sprintf("line-%d", i)}
	}
	return out
}

func TestWindow_NoLimitsReturnsEverything(t *testing.T) {
	all := entries(5)

	got := Window(all, 0, 0)

	assert.Equal(t, all, got)
}

func TestWindow_LastLinesKeepsSuffix(t *testing.T) {
	got := Window(entries(10), 3, 0)

	require.Len(t, got, 3)
	assert.Equal(t, "line-7", got[0].Message)
	assert.Equal(t, "line-9", got[2].Message)
}

func TestWindow_LastLinesBeyondAvailable(t *testing.T) {
	all := entries(4)

	got := Window(all, 100, 0)

	assert.Equal(t, all, got)
}

func TestWindow_MaxLinesCapsFromOldestEnd(t *testing.T) {
	// 1000 entries, last 100 requested, capped at 40: the final 40 survive
	got := Window(entries(1000), 100, 40)

	require.Len(t, got, 40)
	assert.Equal(t, "line-960", got[0].Message)
	assert.Equal(t, "line-999", got[39].Message)
}

func TestWindow_MaxLinesAloneCaps(t *testing.T) {
	got := Window(entries(10), 0, 4)

	require.Len(t, got, 4)
	assert.Equal(t, "line-6", got[0].Message)
}

func TestWindow_LengthIsMinOfKnobs(t *testing.T) {
	for _, tc := range []struct {
		lastLines, maxLines, want int
	}{
		{5, 10, 5},
		{10, 5, 5},
		{7, 7, 7},
		{0, 3, 3},
		{3, 0, 3},
	} {
		got := Window(entries(20), tc.lastLines, tc.maxLines)
		assert.Len(t, got, tc.want, "lastLines=%d maxLines=%d", tc.lastLines, tc.maxLines)
	}
}

func TestWindow_ChronologicalOrderPreserved(t *testing.T) {
	got := Window(entries(50), 10, 5)

	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Message, got[i].Message)
	}
}

func TestWindow_Empty(t *testing.T) {
	assert.Empty(t, Window(nil, 10, 10))
}
