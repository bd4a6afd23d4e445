/*

This file implements the Realigner (§4.F): computing a scalar time offset
between a source track and a reference track, applying it, and optionally
pruning leading source cues that only exist because of differing
provenance (embedded vs external track).

*/

package subkit

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AnchorPair names the two cue indices a Δ was computed from, plus a
// confidence in [0,1] (§3).
type AnchorPair struct {
	SourceIndex    int
	ReferenceIndex int
	Confidence     float64
}

// RealignMethod is the closed set of offset-computation algorithms §4.F
// names.
type RealignMethod int

const (
	RealignFirstLine RealignMethod = iota
	RealignScannedHeuristic
	RealignExplicitAnchor
	RealignSimilarityAssisted
)

// RealignRequest bundles a realignment call's parameters. ExplicitSource
// and ExplicitReference are only consulted when Method is
// RealignExplicitAnchor.
type RealignRequest struct {
	Method             RealignMethod
	ExplicitSource     int
	ExplicitReference  int
	MixedTrack         bool // enables the pruning policy
	ConfidenceThreshold float64
	Options            Options
}

// RealignResult is what Realign returns: the shifted (and possibly
// pruned) file, the anchor used, and bookkeeping the caller needs to
// decide whether to accept a low-confidence result.
type RealignResult struct {
	File        *SubtitleFile
	Anchor      AnchorPair
	Delta       time.Duration
	Pruned      int
	Clamped     int
	LowConfidence bool
}

// Realign computes Δ between source and reference per req.Method, applies
// it to source, optionally prunes pre-anchor events, and reports whether
// the result falls below req.ConfidenceThreshold (§4.F).
func Realign(source, reference *SubtitleFile, req RealignRequest, logger *zerolog.Logger) (*RealignResult, error) {
	log := loggerOrDefault(logger)

	if len(source.Events) == 0 || len(reference.Events) == 0 {
		return nil, newError("Realign", KindNoEvents, fmt.Errorf("source has %d events, reference has %d", len(source.Events), len(reference.Events)))
	}

	var anchor AnchorPair
	switch req.Method {
	case RealignFirstLine:
		anchor = firstLineAnchor(source, reference)
	case RealignScannedHeuristic:
		anchor = scannedHeuristicAnchor(source, reference, req.Options.ScanWindow)
	case RealignExplicitAnchor:
		anchor = AnchorPair{SourceIndex: req.ExplicitSource, ReferenceIndex: req.ExplicitReference, Confidence: 1.0}
	case RealignSimilarityAssisted:
		anchor = similarityAssistedAnchor(source, reference, req.Options.ScanWindow)
	default:
		anchor = firstLineAnchor(source, reference)
	}

	delta := reference.Events[anchor.ReferenceIndex].Start - source.Events[anchor.SourceIndex].Start

	out := source.Shift(delta)

	clamped := 0
	for _, e := range source.Events {
		if e.Clamped(delta) {
			clamped++
		}
	}
	if frac := float64(clamped) / float64(len(source.Events)); frac > req.Options.ClampWarnFraction {
		log.Warn().Float64("fraction", frac).Msg("realignment clamped a large fraction of events, anchor may be wrong")
	}

	pruned := 0
	if req.MixedTrack {
		pruned = prunePreAnchor(out, reference.Events[0].Start, req.Options.MixedTrackPruneTolerance)
	}

	result := &RealignResult{
		File:    out,
		Anchor:  anchor,
		Delta:   delta,
		Pruned:  pruned,
		Clamped: clamped,
	}
	if anchor.Confidence < req.ConfidenceThreshold {
		result.LowConfidence = true
	}
	return result, nil
}

// firstLineAnchor implements §4.F algorithm 1: Δ = reference's first event
// start minus source's first event start. Confidence 0.95 when both
// tracks have comparable leading duration, degrading otherwise.
func firstLineAnchor(source, reference *SubtitleFile) AnchorPair {
	srcDur := source.Events[0].Duration()
	refDur := reference.Events[0].Duration()
	confidence := 0.95
	if srcDur > 0 && refDur > 0 {
		ratio := float64(srcDur) / float64(refDur)
		if ratio < 1 {
			ratio = 1 / ratio
		}
		if ratio > 3 {
			confidence = 0.5
		}
	}
	return AnchorPair{SourceIndex: 0, ReferenceIndex: 0, Confidence: confidence}
}

// bracketedPattern strips bracketed/parenthesised annotations (e.g. "[MUSIC]",
// "(sighs)") before measuring substantive dialogue length (§4.F algorithm 2).
var bracketedPattern = regexp.MustCompile(`[\[(][^\])]*[\])]`)

// interrogativeOrDeclarative reports whether text looks like actual
// dialogue rather than a sound effect or song lyric fragment: it ends
// with sentence punctuation or contains a space (more than one word).
func interrogativeOrDeclarative(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	if last == '?' || last == '.' || last == '!' {
		return true
	}
	return strings.ContainsAny(trimmed, " 　")
}

// firstSubstantiveDialogue scans the first window events of sf for the
// first cue that, after stripping bracketed annotations, exceeds the
// script-dependent length threshold and looks like dialogue (§4.F
// algorithm 2: >=20 chars Latin, >=5 chars CJK).
func firstSubstantiveDialogue(sf *SubtitleFile, window int) (idx int, ok bool) {
	limit := window
	if limit > len(sf.Events) {
		limit = len(sf.Events)
	}
	for i := 0; i < limit; i++ {
		text := bracketedPattern.ReplaceAllString(sf.Events[i].Text, "")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		threshold := 20
		if ClassifyLine(text) == ScriptCJK {
			threshold = 5
		}
		if RuneLen(text) < threshold {
			continue
		}
		if !interrogativeOrDeclarative(text) {
			continue
		}
		return i, true
	}
	return 0, false
}

// scannedHeuristicAnchor implements §4.F algorithm 2. Confidence is 0.8
// when both sides found a substantive cue inside the window, degrading to
// 0.6 when either side fell back to its first event.
func scannedHeuristicAnchor(source, reference *SubtitleFile, window int) AnchorPair {
	srcIdx, srcOK := firstSubstantiveDialogue(source, window)
	refIdx, refOK := firstSubstantiveDialogue(reference, window)
	confidence := 0.6
	if srcOK && refOK {
		confidence = 0.8
	}
	return AnchorPair{SourceIndex: srcIdx, ReferenceIndex: refIdx, Confidence: confidence}
}

// similarityAssistedAnchor scores every pair among the first window cues
// of both tracks by whitespace-token overlap (tokenOverlap) and returns the
// single highest-scoring pair. It does not build a monotonic, DTW-style
// pairing across cues and does not measure character-level overlap.
// Confidence equals the winning pair's overlap score.
func similarityAssistedAnchor(source, reference *SubtitleFile, window int) AnchorPair {
	srcLimit := window
	if srcLimit > len(source.Events) {
		srcLimit = len(source.Events)
	}
	refLimit := window
	if refLimit > len(reference.Events) {
		refLimit = len(reference.Events)
	}

	best := AnchorPair{Confidence: 0}
	for i := 0; i < srcLimit; i++ {
		for j := 0; j < refLimit; j++ {
			score := tokenOverlap(source.Events[i].Text, reference.Events[j].Text)
			if score > best.Confidence {
				best = AnchorPair{SourceIndex: i, ReferenceIndex: j, Confidence: score}
			}
		}
	}
	if best.Confidence == 0 {
		// No overlap found anywhere in the window; fall back to the
		// first-line anchor rather than returning a meaningless pair.
		return firstLineAnchor(source, reference)
	}
	return best
}

// tokenOverlap is a Jaccard-style similarity over lower-cased whitespace
// tokens, used only to rank candidate anchor pairs, never to produce
// translations.
func tokenOverlap(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for t := range ta {
		if tb[t] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// prunePreAnchor discards events from sf (already shifted) whose end is
// below refFirstStart-tolerance, the mixed-track pruning policy of §4.F.
// Returns the number of events discarded.
func prunePreAnchor(sf *SubtitleFile, refFirstStart time.Duration, tolerance time.Duration) int {
	cutoff := refFirstStart - tolerance
	kept := sf.Events[:0:0]
	pruned := 0
	for _, e := range sf.Events {
		if e.End < cutoff {
			pruned++
			continue
		}
		kept = append(kept, e)
	}
	sf.Events = kept
	return pruned
}

// sortAnchorCandidates is a small helper kept for callers that want a
// ranked list of candidate anchors rather than just the best one (e.g. a
// CLI that lets a user pick among the top few matches).
func sortAnchorCandidates(candidates []AnchorPair) {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
}
