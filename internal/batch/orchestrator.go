/*

Package batch implements the Batch Orchestrator (§4.I): running
caller-built file-level Tasks (realign, merge, split, shift) either
bounded by a worker pool or serially, with per-item outcome tracking and a
path-ordered aggregated summary. It does not match files in a directory or
pair source and reference files itself; callers build one Task per input.

The only locus of concurrency in the system lives here (§5); everything
in package subkit is synchronous and pure over its inputs.

*/

package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Outcome is the closed variant set §4.I names for a processed item.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeUnchanged
	OutcomeFailed
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeFailed:
		return "failed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ItemResult is recorded per input item processed by the orchestrator.
type ItemResult struct {
	InputPath  string
	OutputPath string
	Outcome    Outcome
	Err        error
}

// Summary is the aggregated, path-ordered result of a batch run (§5
// "Ordering guarantees ... the aggregated result summary is ordered by
// input path for reproducibility").
type Summary struct {
	Results []ItemResult
	Counts  map[Outcome]int
}

// Task is one unit of work: given a context, produce an ItemResult. The
// orchestrator doesn't know what E/F/G/H operation a Task performs —
// callers close over that.
type Task struct {
	InputPath string
	Run       func(ctx context.Context) (outputPath string, outcome Outcome, err error)
}

// Orchestrator applies Tasks with bounded concurrency.
type Orchestrator struct {
	// WorkerPoolSize bounds concurrency for independent, parallel-safe
	// tasks (§4.I "bounded worker pool (default 4)"). Zero means 4.
	WorkerPoolSize int
}

// New constructs an Orchestrator with the given pool size (0 => 4).
func New(workerPoolSize int) *Orchestrator {
	if workerPoolSize <= 0 {
		workerPoolSize = 4
	}
	return &Orchestrator{WorkerPoolSize: workerPoolSize}
}

// RunParallel runs tasks concurrently, bounded by o.WorkerPoolSize, for
// the independent file-level operations §4.I says may run in parallel
// (encoding conversion, splitting/merging of already-paired files). It
// honours ctx cancellation by refusing to start new tasks once cancelled,
// while in-flight tasks run to completion (§5 "Cancellation").
func (o *Orchestrator) RunParallel(ctx context.Context, tasks []Task) Summary {
	sem := semaphore.NewWeighted(int64(o.WorkerPoolSize))
	g, gctx := errgroup.WithContext(context.Background()) // independent of ctx cancellation per task, see below

	results := make([]ItemResult, len(tasks))
	var mu sync.Mutex

	for i, task := range tasks {
		i, task := i, task
		if ctx.Err() != nil {
			// Refuse new submissions once the caller has signalled
			// cancellation; record the remaining items as skipped.
			mu.Lock()
			results[i] = ItemResult{InputPath: task.InputPath, Outcome: OutcomeSkipped, Err: ctx.Err()}
			mu.Unlock()
			continue
		}
		if err := sem.Acquire(gctx, 1); err != nil {
			mu.Lock()
			results[i] = ItemResult{InputPath: task.InputPath, Outcome: OutcomeSkipped, Err: err}
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)
			outPath, outcome, err := task.Run(ctx)
			mu.Lock()
			results[i] = ItemResult{InputPath: task.InputPath, OutputPath: outPath, Outcome: outcome, Err: err}
			mu.Unlock()
			return nil // per-item errors are recorded, never abort the batch (§7)
		})
	}
	_ = g.Wait()

	return summarize(results)
}

// RunSerial runs tasks one at a time, in order, for operations that touch
// video containers or invoke external extractors (§4.I "items run
// serially — the external tools are resource-intensive").
func (o *Orchestrator) RunSerial(ctx context.Context, tasks []Task) Summary {
	results := make([]ItemResult, 0, len(tasks))
	for _, task := range tasks {
		if ctx.Err() != nil {
			results = append(results, ItemResult{InputPath: task.InputPath, Outcome: OutcomeSkipped, Err: ctx.Err()})
			continue
		}
		outPath, outcome, err := task.Run(ctx)
		results = append(results, ItemResult{InputPath: task.InputPath, OutputPath: outPath, Outcome: outcome, Err: err})
	}
	return summarize(results)
}

// summarize sorts results by input path and tallies outcome counts (§5
// "ordered by input path for reproducibility").
func summarize(results []ItemResult) Summary {
	sort.Slice(results, func(i, j int) bool { return results[i].InputPath < results[j].InputPath })
	counts := make(map[Outcome]int, 4)
	for _, r := range results {
		counts[r.Outcome]++
	}
	return Summary{Results: results, Counts: counts}
}

// ScratchDir creates a unique, per-task scratch directory under the
// XDG cache home (§5 "temporary files ... live in per-task scoped
// directories"), returning a cleanup func that unconditionally removes it
// (§5 "unconditionally released on exit of the task, including error
// paths"). Callers should `defer cleanup()` immediately.
func ScratchDir() (dir string, cleanup func(), err error) {
	base := filepath.Join(xdg.CacheHome, "subkit", "scratch", uuid.NewString())
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", func() {}, err
	}
	return base, func() { _ = os.RemoveAll(base) }, nil
}

// ErrWorkerPoolExhausted is returned by callers that choose to treat
// semaphore acquisition failure as a hard error rather than a skip; the
// orchestrator itself always degrades to OutcomeSkipped instead.
var ErrWorkerPoolExhausted = errors.New("batch: worker pool exhausted")
