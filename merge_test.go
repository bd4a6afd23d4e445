package subkit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srtsuite/subkit"
)

func TestMergeBothNilIsError(t *testing.T) {
	_, err := subkit.Merge(nil, nil, subkit.MergeOptions{})
	require.Error(t, err)
	kind, ok := subkit.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, subkit.KindEmptyInputs, kind)
}

func TestMergeOneEmptyCopiesOther(t *testing.T) {
	secondary := track(subkit.Event{Start: 0, End: time.Second, Text: "B"})
	merged, err := subkit.Merge(nil, secondary, subkit.MergeOptions{})
	require.NoError(t, err)
	require.Len(t, merged.Events, 1)
	assert.Equal(t, "B", merged.Events[0].Text)
}

func TestMergeOverlappingCues(t *testing.T) {
	primary := track(subkit.Event{Start: time.Second, End: 3 * time.Second, Text: "A"})
	secondary := track(subkit.Event{Start: 2 * time.Second, End: 4 * time.Second, Text: "B"})

	merged, err := subkit.Merge(primary, secondary, subkit.MergeOptions{
		MicroCueThreshold: 50 * time.Millisecond,
		AdjacencyGap:      time.Millisecond,
	})
	require.NoError(t, err)
	require.Len(t, merged.Events, 3)
	assert.Equal(t, "A", merged.Events[0].Text)
	assert.Equal(t, "A\nB", merged.Events[1].Text)
	assert.Equal(t, "B", merged.Events[2].Text)
}

func TestMergeDuplicateSuppression(t *testing.T) {
	primary := track(subkit.Event{Start: 0, End: time.Second, Text: "Same line"})
	secondary := track(subkit.Event{Start: 0, End: time.Second, Text: "Same line"})

	merged, err := subkit.Merge(primary, secondary, subkit.MergeOptions{})
	require.NoError(t, err)
	require.Len(t, merged.Events, 1)
	assert.Equal(t, "Same line", merged.Events[0].Text)
}

func TestMergeRespectsExplicitPrimaryFirst(t *testing.T) {
	primary := track(subkit.Event{Start: time.Second, End: 2 * time.Second, Text: "A"})
	secondary := track(subkit.Event{Start: time.Second, End: 2 * time.Second, Text: "B"})

	notFirst := false
	merged, err := subkit.Merge(primary, secondary, subkit.MergeOptions{PrimaryFirst: &notFirst})
	require.NoError(t, err)
	require.Len(t, merged.Events, 1)
	assert.Equal(t, "B\nA", merged.Events[0].Text)
}

func TestMergeCollapsesMicroCues(t *testing.T) {
	primary := track(
		subkit.Event{Start: 0, End: time.Second, Text: "Hello"},
		subkit.Event{Start: time.Second, End: time.Second + 10*time.Millisecond, Text: "Hello world"},
	)
	// A far-away, non-overlapping secondary keeps the full sweep+coalesce
	// pipeline in play instead of taking Merge's "one side empty" shortcut.
	secondary := track(subkit.Event{Start: 100 * time.Second, End: 101 * time.Second, Text: "X"})

	merged, err := subkit.Merge(primary, secondary, subkit.MergeOptions{
		MicroCueThreshold: 50 * time.Millisecond,
		AdjacencyGap:      time.Millisecond,
	})
	require.NoError(t, err)
	require.Len(t, merged.Events, 2)
	assert.Equal(t, "Hello world", merged.Events[0].Text)
	assert.Equal(t, time.Second+10*time.Millisecond, merged.Events[0].End)
	assert.Equal(t, "X", merged.Events[1].Text)
}
