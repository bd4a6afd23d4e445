package subkit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/srtsuite/subkit"
)

func TestScoreTrackHighEventCountAndDialogueTitle(t *testing.T) {
	track := subkit.Track{Title: "Main Dialogue Track"}
	score := subkit.ScoreTrack(track, 350, nil)
	assert.Equal(t, 1.0, score.EventCountScore)
	assert.Equal(t, 1.0, score.TitleScore)
	assert.InDelta(t, 0.9, score.TotalScore, 1e-9)
	assert.True(t, score.IsDialogueCandidate)
}

func TestScoreTrackSignsSongsTitleRejected(t *testing.T) {
	track := subkit.Track{Title: "Signs & Songs"}
	score := subkit.ScoreTrack(track, 30, nil)
	assert.Equal(t, -0.8, score.EventCountScore)
	assert.Equal(t, -1.0, score.TitleScore)
	assert.False(t, score.IsDialogueCandidate)
}

func TestScoreTrackForcedSubtitlesRejected(t *testing.T) {
	track := subkit.Track{Title: "Forced English", IsForced: true}
	score := subkit.ScoreTrack(track, 50, nil)
	assert.Equal(t, -1.0, score.TitleScore)
	assert.False(t, score.IsDialogueCandidate)
}

func TestScoreTrackContentSampleScoring(t *testing.T) {
	sample := subkit.NewSubtitleFile(subkit.FormatSRT)
	sample.Events = []subkit.Event{
		{Start: 0, End: time.Second, Text: "I think we should go together now."},
	}
	track := subkit.Track{}
	score := subkit.ScoreTrack(track, 200, sample)
	assert.InDelta(t, 0.8, score.ContentScore, 1e-9)
}

func TestRankTracksOrdersHighestFirst(t *testing.T) {
	good := subkit.Track{Title: "Main Dialogue"}
	bad := subkit.Track{Title: "Signs & Songs"}
	ranked := subkit.RankTracks([]subkit.Track{bad, good}, []int{30, 350}, nil)
	assert.Equal(t, "Main Dialogue", ranked[0].Track.Title)
	assert.Equal(t, "Signs & Songs", ranked[1].Track.Title)
}
