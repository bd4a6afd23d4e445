/*

This file implements the Merger (§4.G): combining two monolingual
SubtitleFiles into one bilingual SubtitleFile via a sorted-boundary sweep,
followed by two coalescing post-passes.

*/

package subkit

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MergeOptions controls the ordering hint and thresholds the sweep uses.
type MergeOptions struct {
	// PrimaryFirst, when non-nil, pins whether primary's lines always
	// come first in a merged cue. When nil, the language with the
	// earlier event start across the whole file is treated as primary
	// (§4.G "Ordering ... otherwise the language with the earlier event
	// start across the whole file is primary").
	PrimaryFirst *bool

	MicroCueThreshold time.Duration
	AdjacencyGap      time.Duration
}

// Merge implements §4.G. Either input may be nil, in which case the other
// is copied unchanged. Both nil (or both empty) is an error.
func Merge(primary, secondary *SubtitleFile, opts MergeOptions) (*SubtitleFile, error) {
	if primary == nil && secondary == nil {
		return nil, newError("Merge", KindEmptyInputs, fmt.Errorf("both inputs are nil"))
	}
	primaryEmpty := primary == nil || len(primary.Events) == 0
	secondaryEmpty := secondary == nil || len(secondary.Events) == 0
	if primaryEmpty && secondaryEmpty {
		return nil, newError("Merge", KindEmptyInputs, fmt.Errorf("both inputs have no events"))
	}

	if primaryEmpty {
		return copySubtitleFile(secondary), nil
	}
	if secondaryEmpty {
		return copySubtitleFile(primary), nil
	}

	primaryFirst := primary.Events[0].Start <= secondary.Events[0].Start
	if opts.PrimaryFirst != nil {
		primaryFirst = *opts.PrimaryFirst
	}

	primaryEvents := validEvents(primary.Events)
	secondaryEvents := validEvents(secondary.Events)

	boundaries := sweepBoundaries(primaryEvents, secondaryEvents)

	out := NewSubtitleFile(primary.Format)
	out.Encoding = primary.Encoding

	for i := 0; i+1 < len(boundaries); i++ {
		start, end := boundaries[i], boundaries[i+1]
		if start >= end {
			continue
		}
		activePrimary := activeTextsAt(primaryEvents, start, end)
		activeSecondary := activeTextsAt(secondaryEvents, start, end)
		if len(activePrimary) == 0 && len(activeSecondary) == 0 {
			continue
		}

		text := composeCueText(activePrimary, activeSecondary, primaryFirst)
		out.Events = append(out.Events, Event{Start: start, End: end, Text: text})
	}

	coalesceAdjacentIdentical(out, opts.AdjacencyGap)
	collapseMicroCues(out, opts.MicroCueThreshold)

	out.Sort()
	return out, nil
}

// validEvents filters out events with end < start, logged and skipped
// per §4.G "Failure modes".
func validEvents(events []Event) []Event {
	log := Default()
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.End < e.Start {
			log.Warn().Dur("start", e.Start).Dur("end", e.End).Msg("skipped merge input event whose end precedes its start")
			continue
		}
		out = append(out, e)
	}
	return out
}

// sweepBoundaries returns the sorted, deduplicated union of every start
// and end time across both inputs (§4.G step 2).
func sweepBoundaries(a, b []Event) []time.Duration {
	seen := make(map[time.Duration]bool)
	var bounds []time.Duration
	add := func(t time.Duration) {
		if !seen[t] {
			seen[t] = true
			bounds = append(bounds, t)
		}
	}
	for _, e := range a {
		add(e.Start)
		add(e.End)
	}
	for _, e := range b {
		add(e.Start)
		add(e.End)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	return bounds
}

// activeTextsAt returns the lines of every event in events whose interval
// contains [start, end), in input order (§4.G step 3).
func activeTextsAt(events []Event, start, end time.Duration) []string {
	var lines []string
	for _, e := range events {
		if e.Start <= start && e.End >= end {
			lines = append(lines, e.Lines()...)
		}
	}
	return lines
}

// composeCueText joins primary and secondary lines with a single newline,
// omitting whichever side is empty (§4.G step 3 "Empty sides are
// omitted"), honouring the primary-first ordering hint, and suppressing
// an exact duplicate of the same text appearing on both sides (§4.G
// "Duplicate suppression").
func composeCueText(primary, secondary []string, primaryFirst bool) string {
	if sameLines(primary, secondary) {
		return strings.Join(primary, "\n")
	}
	first, second := primary, secondary
	if !primaryFirst {
		first, second = secondary, primary
	}
	switch {
	case len(first) == 0:
		return strings.Join(second, "\n")
	case len(second) == 0:
		return strings.Join(first, "\n")
	default:
		return strings.Join(first, "\n") + "\n" + strings.Join(second, "\n")
	}
}

// sameLines reports whether a and b contain the same lines in the same
// order, used to suppress a monolingual duplicate appearing on both
// sides of the merge at identical timing.
func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// coalesceAdjacentIdentical merges consecutive emitted cues whose text is
// identical and whose gap is <= maxGap, extending the earlier cue's end
// (§4.G step 4).
func coalesceAdjacentIdentical(sf *SubtitleFile, maxGap time.Duration) {
	if len(sf.Events) < 2 {
		return
	}
	out := sf.Events[:1]
	for _, e := range sf.Events[1:] {
		last := &out[len(out)-1]
		if e.Text == last.Text && e.Start-last.End <= maxGap {
			last.End = e.End
			continue
		}
		out = append(out, e)
	}
	sf.Events = out
}

// collapseMicroCues merges any event shorter than threshold into its
// predecessor when the micro-cue's text is a superset of the
// predecessor's (§4.G step 5).
func collapseMicroCues(sf *SubtitleFile, threshold time.Duration) {
	if len(sf.Events) < 2 {
		return
	}
	out := sf.Events[:1]
	for _, e := range sf.Events[1:] {
		last := &out[len(out)-1]
		if e.Duration() < threshold && strings.Contains(e.Text, last.Text) {
			last.End = e.End
			if len(e.Text) > len(last.Text) {
				last.Text = e.Text
			}
			continue
		}
		out = append(out, e)
	}
	sf.Events = out
}

// copySubtitleFile deep-copies sf's events, used when one Merge input is
// absent (§4.G step 1: "If one input is missing, copy the other
// unchanged").
func copySubtitleFile(sf *SubtitleFile) *SubtitleFile {
	out := NewSubtitleFile(sf.Format)
	out.Encoding = sf.Encoding
	out.Events = append([]Event(nil), sf.Events...)
	out.ScriptInfo = append([]string(nil), sf.ScriptInfo...)
	out.Styles = append([]string(nil), sf.Styles...)
	return out
}
