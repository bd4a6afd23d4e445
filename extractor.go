/*

This file specifies the embedded-track extractor contract (§6), the
video-container collaborator explicitly excluded from this module's
implementation scope. Only the interface is defined here; no concrete
implementation ships with this package.

*/

package subkit

import (
	"context"
	"time"
)

// TrackExtractor produces a standalone subtitle file from a track
// embedded in a video container. It has two distinct call sites with
// different timeout contracts (Design Note: "External subprocess
// timeouts" — modeled as two methods, not one generic wrapper with a
// timeout parameter, so the unbounded call site can never accidentally
// be given a deadline).
type TrackExtractor interface {
	// ExtractSample extracts at most maxDur of the track to a standalone
	// file, bounded by ctx's deadline (§6: "60s for sampling"). Used by
	// the Track Analyzer's content-sample scoring and by realignment
	// previews.
	ExtractSample(ctx context.Context, videoPath string, track Track, maxDur time.Duration) (path string, err error)

	// ExtractFull extracts the entire track with no enforced timeout
	// beyond what ctx itself carries (§6: "unbounded for full extraction
	// of large containers"). Callers must not wrap this in a short
	// deadline.
	ExtractFull(ctx context.Context, videoPath string, track Track) (path string, err error)
}
