package subkit_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srtsuite/subkit"
)

const sampleASS = `[Script Info]
Title: Test
ScriptType: v4.00+

[V4+ Styles]
Format: Name, Fontname, Fontsize
Style: Default,Arial,48

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:03.50,Default,,0,0,0,,{\pos(1,2)}Hello\Nworld
`

func TestParseASSBasic(t *testing.T) {
	sf, err := subkit.ParseASS([]byte(sampleASS), subkit.FormatASS, nil)
	require.NoError(t, err)
	require.Len(t, sf.Events, 1)
	e := sf.Events[0]
	assert.Equal(t, time.Second, e.Start)
	assert.Equal(t, 3*time.Second+500*time.Millisecond, e.End)
	assert.Equal(t, "Hello\nworld", e.Text)
	assert.Equal(t, "Default", e.StyleName)
	assert.Contains(t, e.Raw, `{\pos(1,2)}`)
}

func TestParseASSPreservesHeaderVerbatim(t *testing.T) {
	sf, err := subkit.ParseASS([]byte(sampleASS), subkit.FormatASS, nil)
	require.NoError(t, err)
	joined := strings.Join(sf.ScriptInfo, "\n")
	assert.Contains(t, joined, "Title: Test")
	joinedStyles := strings.Join(sf.Styles, "\n")
	assert.Contains(t, joinedStyles, "Style: Default,Arial,48")
}

func TestParseASSNoSectionsIsFormatError(t *testing.T) {
	_, err := subkit.ParseASS([]byte("just some text\nwith no sections\n"), subkit.FormatASS, nil)
	require.Error(t, err)
	kind, ok := subkit.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, subkit.KindFormat, kind)
}

func TestWriteASSRoundTripsHeaderAndEvents(t *testing.T) {
	sf, err := subkit.ParseASS([]byte(sampleASS), subkit.FormatASS, nil)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, subkit.WriteASS(&buf, sf))
	out := buf.String()
	assert.Contains(t, out, "Title: Test")
	assert.Contains(t, out, "[Events]")
	assert.Contains(t, out, `{\pos(1,2)}Hello\Nworld`)

	reparsed, err := subkit.ParseASS([]byte(out), subkit.FormatASS, nil)
	require.NoError(t, err)
	require.Len(t, reparsed.Events, 1)
	assert.Equal(t, sf.Events[0].Start, reparsed.Events[0].Start)
}

func TestCleanASSTextStripsOverridesAndHTML(t *testing.T) {
	sf, err := subkit.ParseASS([]byte(`[Script Info]

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
Dialogue: 0,0:00:01.00,0:00:02.00,Default,,0,0,0,,{\i1}<b>Bold</b> text
`), subkit.FormatASS, nil)
	require.NoError(t, err)
	require.Len(t, sf.Events, 1)
	assert.Equal(t, "Bold text", sf.Events[0].Text)
}
