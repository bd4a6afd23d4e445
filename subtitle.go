/*

This file defines the Event, Track and Format model types (§3) and the
per-event utility methods built on them.

*/

package subkit

import (
	"strings"
	"time"
)

// Format is the closed variant set of subtitle container formats this
// module understands. Modeled as an enum dispatched by switch rather than
// a parser interface hierarchy (Design Note: "Polymorphic parsers" — a
// fixed, small set doesn't need heap-allocated polymorphism).
type Format int

const (
	// FormatUnknown is the zero value; never a valid parse/write target.
	FormatUnknown Format = iota
	FormatSRT
	FormatVTT
	FormatASS
	FormatSSA
)

// String returns the canonical lower-case name of the format.
func (f Format) String() string {
	switch f {
	case FormatSRT:
		return "srt"
	case FormatVTT:
		return "vtt"
	case FormatASS:
		return "ass"
	case FormatSSA:
		return "ssa"
	default:
		return "unknown"
	}
}

// FormatFromExt maps a file extension (with or without leading dot) to a
// Format. Returns FormatUnknown, false for anything else.
func FormatFromExt(ext string) (Format, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "srt":
		return FormatSRT, true
	case "vtt":
		return FormatVTT, true
	case "ass":
		return FormatASS, true
	case "ssa":
		return FormatSSA, true
	default:
		return FormatUnknown, false
	}
}

// Event is a single timed cue (§3). Text never contains carriage returns;
// newlines denote in-cue line breaks. StyleName and Raw are ASS-only and
// are the zero value (empty string) when not applicable — the same
// "zero value means absent" convention the teacher uses for Pos
// ("Zero value of type Pos is PosNotSpecified").
type Event struct {
	Start time.Duration
	End   time.Duration
	Text  string

	// StyleName is the ASS style this cue references. Empty for
	// non-ASS formats.
	StyleName string
	// Raw is the unparsed ASS Dialogue text payload, preserving override
	// blocks ({...}) and \N/\n escapes verbatim. Empty for non-ASS
	// formats and for ASS cues synthesised rather than parsed.
	Raw string
}

// Duration returns the display duration of the event.
func (e Event) Duration() time.Duration {
	return e.End - e.Start
}

// Shift returns a copy of e with Start and End shifted by delta, clamping
// both endpoints independently to zero if the shift would otherwise
// produce a negative timestamp (§4.B, §8 invariant 2). Clamping never
// deletes the event.
func (e Event) Shift(delta time.Duration) Event {
	shifted := e
	shifted.Start += delta
	shifted.End += delta
	if shifted.Start < 0 {
		shifted.Start = 0
	}
	if shifted.End < 0 {
		shifted.End = 0
	}
	return shifted
}

// Clamped reports whether shifting e by delta would clamp either endpoint,
// used by the Realigner to count clamped events without mutating anything
// (§4.F "Negative-time policy").
func (e Event) Clamped(delta time.Duration) bool {
	return e.Start+delta < 0 || e.End+delta < 0
}

// Lines splits Text on newlines, the unit the Splitter (§4.H) and Merger
// (§4.G intra-cue grouping) both operate on. Returns nil for empty text.
func (e Event) Lines() []string {
	if e.Text == "" {
		return nil
	}
	return strings.Split(e.Text, "\n")
}

// Track is a descriptor for a subtitle stream inside a container (§3). It
// is a plain value, never an owner of events — enumerating embedded
// tracks produces Tracks; materializing one into a SubtitleFile is the
// embedded extractor collaborator's job (§6), outside this package.
type Track struct {
	Language string
	Title    string
	Codec    string

	IsDefault bool
	IsForced  bool

	// DemuxerIndex is the index used by a general demuxer (e.g. an
	// ffmpeg stream specifier such as "0:3").
	DemuxerIndex string
	// ExtractorIndex is the index used by a container-native extractor,
	// which may number subtitle tracks differently from the demuxer.
	ExtractorIndex string
}
