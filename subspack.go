/*

This file defines the SubtitleFile model type (§3) and whole-file
utility methods built on top of Event (sorting, shifting, statistics).
The cross-track algorithms (realign, merge, split) live in their own
files; this file only holds what operates on a single SubtitleFile.

*/

package subkit

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// SubtitleFile owns a list of Events plus the file-level metadata needed
// to round-trip a parse/write cycle (§3). ScriptInfo and Styles are only
// ever non-empty for ASS/SSA; they are copied verbatim from the source so
// header metadata survives a round trip unchanged (§4.D "ASS emit").
//
// A SubtitleFile exclusively owns its Events; Track and AnchorPair are
// plain values used only as descriptors elsewhere.
type SubtitleFile struct {
	Path     string
	Format   Format
	Encoding string
	Events   []Event

	// ScriptInfo and Styles are raw lines captured verbatim from the
	// [Script Info] and [V4+ Styles] sections of an ASS/SSA source,
	// including the section header itself. Empty for non-ASS formats.
	ScriptInfo []string
	Styles     []string
}

// NewSubtitleFile constructs a SubtitleFile with its slice fields
// explicitly initialised to empty rather than left nil, per Design Note
// "Dataclasses with post-init defaults": required-but-empty, not optional.
func NewSubtitleFile(format Format) *SubtitleFile {
	return &SubtitleFile{
		Format:     format,
		Events:     []Event{},
		ScriptInfo: []string{},
		Styles:     []string{},
	}
}

// byStart sorts Events by Start, a stable sort so cues that share a start
// time keep their relative parse order (§8 invariant 1: "events[i].end <=
// events[i+1].end after the writer's internal sort" relies on this).
type byStart []Event

func (b byStart) Len() int           { return len(b) }
func (b byStart) Less(i, j int) bool { return b[i].Start < b[j].Start }
func (b byStart) Swap(i, j int)      { b[i], b[j] = b[j], b[i] }

// Sort orders Events by Start in place. Writers call this before emitting
// (§3: "events are sorted by start on write").
func (sf *SubtitleFile) Sort() {
	sort.Stable(byStart(sf.Events))
}

// Shift returns a new SubtitleFile with every event shifted by delta,
// clamping negatives to zero per Event.Shift (§4.E op 1 "shift_by").
// The receiver is not mutated; Timing Adjuster operations always produce
// a new file (§4.E: "Both produce a new SubtitleFile").
func (sf *SubtitleFile) Shift(delta time.Duration) *SubtitleFile {
	out := *sf
	out.Events = make([]Event, len(sf.Events))
	for i, e := range sf.Events {
		out.Events[i] = e.Shift(delta)
	}
	return &out
}

// Stats are whole-file statistics, a diagnostic surface kept from the
// teacher's SubsStats and printed by the exec package's -stats flag.
type Stats struct {
	Events          int
	Lines           int
	AvgLinesPerCue  float64
	Chars           int
	CharsNoSpace    int
	Words           int
	AvgCharsPerWord float64
	TotalDisplayDur time.Duration
	VisibleRatio    float64 // total display duration / file duration
}

// Stats computes whole-file statistics without mutating sf, unlike the
// teacher's Stats() (which destructively strips HTML/control codes as a
// side effect of measuring them).
func (sf *SubtitleFile) Stats() Stats {
	var st Stats
	st.Events = len(sf.Events)

	for _, e := range sf.Events {
		st.TotalDisplayDur += e.Duration()
		lines := e.Lines()
		st.Lines += len(lines)
		for _, line := range lines {
			st.Chars += utf8.RuneCountInString(line)
			fields := strings.Fields(line)
			st.Words += len(fields)
			for _, w := range fields {
				st.CharsNoSpace += utf8.RuneCountInString(w)
			}
		}
	}

	if st.Events > 0 {
		st.AvgLinesPerCue = float64(st.Lines) / float64(st.Events)
	}
	if st.Words > 0 {
		st.AvgCharsPerWord = float64(st.CharsNoSpace) / float64(st.Words)
	}
	if n := len(sf.Events); n > 0 {
		if last := sf.Events[n-1].End; last > 0 {
			st.VisibleRatio = float64(st.TotalDisplayDur) / float64(last)
		}
	}
	return st
}
