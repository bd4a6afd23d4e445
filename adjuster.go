/*

This file implements the Timing Adjuster (§4.E): shifting a track by a
fixed offset, or anchoring its first cue to a target timestamp. Both
operations produce a new SubtitleFile; they never mutate the receiver.

*/

package subkit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ShiftBy adds delta to every event's start and end, clamping negatives to
// zero (§4.E op 1).
func ShiftBy(sf *SubtitleFile, delta time.Duration) *SubtitleFile {
	return sf.Shift(delta)
}

// AnchorFirstTo computes delta = target - events[0].start and applies it
// via ShiftBy (§4.E op 2). Returns a no-op copy when sf has no events.
func AnchorFirstTo(sf *SubtitleFile, target time.Duration) *SubtitleFile {
	if len(sf.Events) == 0 {
		out := *sf
		out.Events = []Event{}
		return &out
	}
	delta := target - sf.Events[0].Start
	return ShiftBy(sf, delta)
}

// ParseOffset parses an offset string in any of the forms §4.E accepts: a
// plain integer (milliseconds), "Xms", "X.Ys" (seconds), or a full
// SRT-style timestamp. A leading "-" is honoured on every form.
func ParseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	var d time.Duration
	switch {
	case strings.HasSuffix(s, "ms"):
		n, err := strconv.ParseInt(strings.TrimSuffix(s, "ms"), 10, 64)
		if err != nil {
			return 0, newError("ParseOffset", KindTiming, fmt.Errorf("bad ms offset %q: %w", s, err))
		}
		d = time.Duration(n) * time.Millisecond
	case strings.HasSuffix(s, "s"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(s, "s"), 64)
		if err != nil {
			return 0, newError("ParseOffset", KindTiming, fmt.Errorf("bad seconds offset %q: %w", s, err))
		}
		d = SecondsToDuration(n)
	case strings.Contains(s, ":"):
		dur, err := ParseSRTTimestamp(s)
		if err != nil {
			return 0, newError("ParseOffset", KindTiming, err)
		}
		d = dur
	default:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, newError("ParseOffset", KindTiming, fmt.Errorf("bad offset %q: %w", s, err))
		}
		d = MillisToDuration(n)
	}

	if neg {
		d = -d
	}
	return d, nil
}
