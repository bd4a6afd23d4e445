package subkit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srtsuite/subkit"
)

func TestSplitPartitionsByScript(t *testing.T) {
	sf := track(
		subkit.Event{Start: 0, End: time.Second, Text: "你好\nHello"},
	)
	cjk, latin := subkit.Split(sf, subkit.SplitOptions{})
	require.Len(t, cjk.Events, 1)
	require.Len(t, latin.Events, 1)
	assert.Equal(t, "你好", cjk.Events[0].Text)
	assert.Equal(t, "Hello", latin.Events[0].Text)
}

func TestSplitDuplicatesAmbiguousLines(t *testing.T) {
	sf := track(subkit.Event{Start: 0, End: time.Second, Text: "123"})
	cjk, latin := subkit.Split(sf, subkit.SplitOptions{})
	require.Len(t, cjk.Events, 1)
	require.Len(t, latin.Events, 1)
	assert.Equal(t, "123", cjk.Events[0].Text)
	assert.Equal(t, "123", latin.Events[0].Text)
}

func TestIsBilingualDetectsBothScripts(t *testing.T) {
	sf := track(subkit.Event{Start: 0, End: time.Second, Text: "你好\nHello"})
	assert.True(t, subkit.IsBilingual(sf))
}

func TestIsBilingualFalseForMonolingual(t *testing.T) {
	sf := track(subkit.Event{Start: 0, End: time.Second, Text: "Hello there"})
	assert.False(t, subkit.IsBilingual(sf))
}

func TestDeriveSplitPathStripsLanguageSuffix(t *testing.T) {
	got := subkit.DeriveSplitPath("/movies/show.zh-en.srt", "en")
	assert.Equal(t, "/movies/show.en.srt", got)
}

func TestDeriveSplitPathAvoidsSelfOverwrite(t *testing.T) {
	got := subkit.DeriveSplitPath("show.en.srt", "en")
	assert.Equal(t, "show.en-only.srt", got)
}
