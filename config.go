/*

Contains configuration used by package subkit: the tunables the design notes
flag as Open Questions, rather than hard-coded constants.

*/

package subkit

import "time"

const (
	// ModulePage is the project's home page.
	ModulePage = "https://github.com/srtsuite/subkit"
)

// Options bundles the tunables referenced throughout §4 so no algorithm
// hard-codes a constant the design notes call out as an Open Question.
// A zero Options is not valid; use DefaultOptions().
type Options struct {
	// MixedTrackPruneTolerance is the tolerance applied when the Realigner
	// discards pre-anchor source events during mixed-track realignment
	// (§4.F "Pruning policy"). Default 500ms.
	MixedTrackPruneTolerance time.Duration

	// ClampWarnFraction is the fraction of events that, if clamped to zero
	// by a realignment shift, triggers a warning that the anchor is likely
	// wrong (§4.F "Negative-time policy"). Default 0.05.
	ClampWarnFraction float64

	// MergeMicroCueThreshold is the duration below which an emitted merge
	// cue is considered a "micro-cue" eligible for collapsing into its
	// predecessor (§4.G step 5). Default 50ms.
	MergeMicroCueThreshold time.Duration

	// MergeAdjacencyGap is the maximum gap between two emitted cues with
	// identical text for them to be merged into one contiguous cue
	// (§4.G step 4). Default 1ms.
	MergeAdjacencyGap time.Duration

	// ScanWindow bounds how many leading events the Realigner's scanned
	// heuristic (§4.F option 2) inspects looking for the first substantive
	// dialogue cue. Default 20.
	ScanWindow int

	// WorkerPoolSize bounds the batch orchestrator's concurrency for
	// independent file-level tasks (§4.I, §5). Default 4.
	WorkerPoolSize int

	// ExtractSampleTimeout bounds the embedded-track extractor's sampling
	// call (§6). Default 60s. The full-extraction call site is deliberately
	// not governed by any field here — it must not have a deadline.
	ExtractSampleTimeout time.Duration

	// ExtractSampleDuration bounds how much of the track the sampling call
	// extracts (§6). Default 600s.
	ExtractSampleDuration time.Duration
}

// DefaultOptions returns the tunables at the values the design notes
// reconstructed from the source's observed behaviour (§9's two Open
// Questions): 500ms prune tolerance, 50ms micro-cue threshold, 1ms adjacency
// gap. Callers needing different values should copy and override, never
// rely on a package-level mutable default.
func DefaultOptions() Options {
	return Options{
		MixedTrackPruneTolerance: 500 * time.Millisecond,
		ClampWarnFraction:        0.05,
		MergeMicroCueThreshold:   50 * time.Millisecond,
		MergeAdjacencyGap:        1 * time.Millisecond,
		ScanWindow:               20,
		WorkerPoolSize:           4,
		ExtractSampleTimeout:     60 * time.Second,
		ExtractSampleDuration:    600 * time.Second,
	}
}
