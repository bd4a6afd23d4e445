/*

This file implements the supplemental Track Analyzer (§4.J): a heuristic
scorer that ranks candidate subtitle tracks by how likely each is to be
the main dialogue track, as opposed to signs/songs, forced-foreign-only,
or karaoke tracks. Grounded on
original_source/core/track_analyzer.py's SubtitleTrackAnalyzer.

This component never invokes an extractor itself; content-sample scoring
only runs when the caller supplies an already-extracted SubtitleFile
sample (§6's extractor contract is a named collaborator, out of scope
here).

*/

package subkit

import (
	"sort"
	"strings"
)

// Event-count thresholds carried from the original's constants.
const (
	minDialogueEvents     = 100
	typicalDialogueEvents = 300
	signsSongsMaxEvents   = 80
)

var negativeKeywords = []string{
	"signs", "songs", "commentary", "sdh", "cc", "closed caption",
	"hearing impaired", "full", "complete", "director", "cast", "crew",
	"karaoke", "lyrics", "opening", "ending", "op", "ed", "insert",
	"background", "bgm", "sfx", "sound effects", "narrator",
}

var forcedEnglishKeywords = []string{
	"forced", "forced english", "forced eng", "foreign", "foreign only",
	"foreign dialogue", "foreign parts", "non-english", "alien language",
	"foreign language", "parts only", "foreign parts only",
}

var positiveKeywords = []string{
	"dialogue", "dialog", "main", "primary", "default", "regular",
	"standard", "normal", "full dialogue", "conversation", "english dialogue",
	"eng dialogue", "full english", "complete english",
}

// TrackScore is the diagnostic record produced by ScoreTrack (§3).
type TrackScore struct {
	Track            Track
	EventCount       int
	EventCountScore  float64
	TitleScore       float64
	ContentScore     float64
	TotalScore       float64
	IsDialogueCandidate bool
	Reasoning        []string
}

// ScoreTrack scores one candidate track. eventCount is the caller's best
// estimate of the track's cue count (from a full parse, a sampled
// extraction, or a metadata-based estimate — this function doesn't care
// which). sample, if non-nil, is a pre-parsed SubtitleFile used for
// content-pattern scoring; a nil sample falls back to title-only
// heuristics, matching the original's graceful degradation when no video
// is available for extraction.
func ScoreTrack(track Track, eventCount int, sample *SubtitleFile) TrackScore {
	var reasoning []string
	title := strings.ToLower(track.Title)

	eventScore := scoreEventCount(eventCount, &reasoning)
	titleScore := scoreTitle(title, &reasoning)
	contentScore := scoreContent(track, sample, &reasoning)

	total := eventScore*0.40 + titleScore*0.35 + contentScore*0.25

	return TrackScore{
		Track:           track,
		EventCount:      eventCount,
		EventCountScore: eventScore,
		TitleScore:      titleScore,
		ContentScore:    contentScore,
		TotalScore:      total,
		IsDialogueCandidate: total > 0.5 &&
			eventCount >= minDialogueEvents &&
			titleScore >= -0.5,
		Reasoning: reasoning,
	}
}

// RankTracks scores every track and returns them sorted by TotalScore,
// highest (most likely main dialogue) first.
func RankTracks(tracks []Track, eventCounts []int, samples []*SubtitleFile) []TrackScore {
	scores := make([]TrackScore, len(tracks))
	for i, t := range tracks {
		var count int
		if i < len(eventCounts) {
			count = eventCounts[i]
		}
		var sample *SubtitleFile
		if i < len(samples) {
			sample = samples[i]
		}
		scores[i] = ScoreTrack(t, count, sample)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})
	return scores
}

func scoreEventCount(count int, reasoning *[]string) float64 {
	switch {
	case count <= 0:
		*reasoning = append(*reasoning, "no event count available")
		return 0.0
	case count < signsSongsMaxEvents:
		*reasoning = append(*reasoning, "low event count suggests signs/songs track")
		return -0.8
	case count < minDialogueEvents:
		*reasoning = append(*reasoning, "below minimum dialogue threshold")
		return -0.3
	case count >= typicalDialogueEvents:
		*reasoning = append(*reasoning, "high event count indicates dialogue track")
		return 1.0
	default:
		score := float64(count-minDialogueEvents) / float64(typicalDialogueEvents-minDialogueEvents)
		*reasoning = append(*reasoning, "moderate event count, scaled linearly")
		return score
	}
}

func scoreTitle(title string, reasoning *[]string) float64 {
	if title == "" {
		*reasoning = append(*reasoning, "no title information")
		return 0.0
	}
	if anyContains(title, forcedEnglishKeywords) {
		*reasoning = append(*reasoning, "title indicates forced English subtitles")
		return -1.0
	}
	if anyContains(title, negativeKeywords) {
		*reasoning = append(*reasoning, "title contains negative keywords")
		return -1.0
	}
	if anyContains(title, positiveKeywords) {
		*reasoning = append(*reasoning, "title contains positive keywords")
		return 1.0
	}
	*reasoning = append(*reasoning, "neutral title")
	return 0.0
}

func scoreContent(track Track, sample *SubtitleFile, reasoning *[]string) float64 {
	if sample != nil && len(sample.Events) > 0 {
		score := analyzeTextPatterns(sample.Events)
		*reasoning = append(*reasoning, "content analysis from sample")
		return score
	}
	*reasoning = append(*reasoning, "using heuristic content analysis (no sample)")
	return heuristicContentAnalysis(track)
}

// heuristicContentAnalysis scores purely from track metadata when no
// content sample is available.
func heuristicContentAnalysis(track Track) float64 {
	title := strings.ToLower(track.Title)
	if track.IsForced {
		return -0.8
	}
	if anyContains(title, forcedEnglishKeywords) {
		return -0.9
	}
	if anyContains(title, []string{"full", "complete", "dialogue", "dialog", "main", "primary"}) {
		return 0.6
	}
	return 0.0
}

// analyzeTextPatterns mirrors _analyze_text_patterns: inspects the first
// 20 events' text for dialogue, forced-foreign, and signs/songs markers,
// and combines them into a single net score in [-1, 1].
func analyzeTextPatterns(events []Event) float64 {
	limit := 20
	if limit > len(events) {
		limit = len(events)
	}
	if limit == 0 {
		return 0.0
	}

	var dialogueIndicators, signsIndicators, forcedIndicators int
	var totalChars int

	for _, e := range events[:limit] {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		totalChars += len(text)
		lower := strings.ToLower(text)
		words := strings.Fields(text)

		if strings.ContainsAny(text, ".,!?") {
			dialogueIndicators += 2
		}
		if anyContains(lower, []string{"i", "you", "we", "they", "he", "she"}) {
			dialogueIndicators++
		}
		if len(words) > 5 {
			dialogueIndicators++
		}
		if strings.ContainsAny(text, `"'`) {
			dialogueIndicators += 2
		}

		if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
			forcedIndicators += 3
		}
		if anyContains(lower, []string{"speaking", "in ", "language"}) {
			forcedIndicators += 2
		}
		if len(words) <= 4 && limit < 50 {
			forcedIndicators++
		}
		if anyContains(lower, []string{"alien", "foreign", "untranslated"}) {
			forcedIndicators += 2
		}

		if isAllUpper(text) && len(text) > 3 {
			signsIndicators += 2
		}
		if strings.ContainsAny(text, "♪♫♬") {
			signsIndicators += 3
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			signsIndicators += 2
		}
		if len(words) <= 2 && len(text) < 15 {
			signsIndicators++
		}
	}

	if totalChars == 0 {
		return 0.0
	}

	dialogueScore := float64(dialogueIndicators) / float64(limit)
	signsScore := float64(signsIndicators) / float64(limit)
	forcedScore := float64(forcedIndicators) / float64(limit)

	if forcedScore > 0.3 {
		return -0.8
	}

	net := (dialogueScore - signsScore - forcedScore*0.5) / 5.0
	if net < -1.0 {
		return -1.0
	}
	if net > 1.0 {
		return 1.0
	}
	return net
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func anyContains(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
