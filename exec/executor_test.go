package exec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srtsuite/subkit"
	"github.com/srtsuite/subkit/exec"
)

func TestProcFlagsParsesCoreFlags(t *testing.T) {
	e := exec.New()
	err := e.ProcFlags([]string{"-in", "a.srt", "-out", "b.vtt", "-shiftBy", "500ms"})
	require.NoError(t, err)
	assert.Equal(t, "a.srt", e.In)
	assert.Equal(t, "b.vtt", e.Out)
	assert.Equal(t, "500ms", e.ShiftBy)
}

func TestGearItRequiresInput(t *testing.T) {
	e := exec.New()
	require.NoError(t, e.ProcFlags(nil))
	err := e.GearIt()
	assert.Error(t, err)
}

func TestGearItShiftByAppliesOffset(t *testing.T) {
	e := exec.New()
	require.NoError(t, e.ProcFlags([]string{"-shiftBy", "1000"}))
	e.Sf1 = subkit.NewSubtitleFile(subkit.FormatSRT)
	e.Sf1.Events = []subkit.Event{{Start: 0, Text: "hi"}}

	require.NoError(t, e.GearIt())
	assert.Equal(t, subkit.MillisToDuration(1000), e.Sf1.Events[0].Start)
}

func TestGearItMergeRequiresSecondInput(t *testing.T) {
	e := exec.New()
	require.NoError(t, e.ProcFlags([]string{"-merge"}))
	e.Sf1 = subkit.NewSubtitleFile(subkit.FormatSRT)
	err := e.GearIt()
	assert.Error(t, err)
}

func TestGearItMergeCombinesBothInputs(t *testing.T) {
	e := exec.New()
	require.NoError(t, e.ProcFlags([]string{"-merge"}))
	e.Sf1 = subkit.NewSubtitleFile(subkit.FormatSRT)
	e.Sf1.Events = []subkit.Event{{Start: 0, End: subkit.MillisToDuration(1000), Text: "A"}}
	e.Sf2 = subkit.NewSubtitleFile(subkit.FormatSRT)
	e.Sf2.Events = []subkit.Event{{Start: 0, End: subkit.MillisToDuration(1000), Text: "B"}}

	require.NoError(t, e.GearIt())
	require.Len(t, e.Sf1.Events, 1)
	assert.Equal(t, "A\nB", e.Sf1.Events[0].Text)
}

func TestGearItConvertToChangesFormat(t *testing.T) {
	e := exec.New()
	require.NoError(t, e.ProcFlags([]string{"-convertTo", "vtt"}))
	e.Sf1 = subkit.NewSubtitleFile(subkit.FormatSRT)
	require.NoError(t, e.GearIt())
	assert.Equal(t, subkit.FormatVTT, e.Sf1.Format)
}

func TestGearItConvertToUnknownExtensionErrors(t *testing.T) {
	e := exec.New()
	require.NoError(t, e.ProcFlags([]string{"-convertTo", "xyz"}))
	e.Sf1 = subkit.NewSubtitleFile(subkit.FormatSRT)
	err := e.GearIt()
	assert.Error(t, err)
}

func TestGearItStatsDoesNotError(t *testing.T) {
	e := exec.New()
	require.NoError(t, e.ProcFlags([]string{"-stats"}))
	e.Sf1 = subkit.NewSubtitleFile(subkit.FormatSRT)
	e.Sf1.Events = []subkit.Event{{Start: 0, Text: "hello world"}}
	require.NoError(t, e.GearIt())
}

func TestProcFlagsRejectsUnknownFlag(t *testing.T) {
	e := exec.New()
	err := e.ProcFlags([]string{"-nope", "x"})
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "flag"))
}
