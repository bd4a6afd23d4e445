package batch_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srtsuite/subkit"
	"github.com/srtsuite/subkit/internal/batch"
)

// nilExtractor is a TrackExtractor double that always fails, used to drive
// a Task through the orchestrator without depending on a real video
// container or subprocess.
type nilExtractor struct{}

func (nilExtractor) ExtractSample(ctx context.Context, videoPath string, track subkit.Track, maxDur time.Duration) (string, error) {
	return "", errors.New("nilExtractor: no extraction backend configured")
}

func (nilExtractor) ExtractFull(ctx context.Context, videoPath string, track subkit.Track) (string, error) {
	return "", errors.New("nilExtractor: no extraction backend configured")
}

func TestNilExtractorTaskRecordsFailure(t *testing.T) {
	var extractor subkit.TrackExtractor = nilExtractor{}
	task := batch.Task{
		InputPath: "video.mkv",
		Run: func(ctx context.Context) (string, batch.Outcome, error) {
			_, err := extractor.ExtractSample(ctx, "video.mkv", subkit.Track{}, time.Minute)
			if err != nil {
				return "", batch.OutcomeFailed, err
			}
			return "", batch.OutcomeSuccess, nil
		},
	}
	o := batch.New(1)
	summary := o.RunSerial(context.Background(), []batch.Task{task})
	assert.Equal(t, 1, summary.Counts[batch.OutcomeFailed])
}

func successTask(path string) batch.Task {
	return batch.Task{
		InputPath: path,
		Run: func(ctx context.Context) (string, batch.Outcome, error) {
			return path + ".out", batch.OutcomeSuccess, nil
		},
	}
}

func failingTask(path string) batch.Task {
	return batch.Task{
		InputPath: path,
		Run: func(ctx context.Context) (string, batch.Outcome, error) {
			return "", batch.OutcomeFailed, errors.New("boom")
		},
	}
}

func TestRunParallelOrdersResultsByPath(t *testing.T) {
	tasks := []batch.Task{successTask("c.srt"), successTask("a.srt"), successTask("b.srt")}
	o := batch.New(2)
	summary := o.RunParallel(context.Background(), tasks)
	require.Len(t, summary.Results, 3)
	assert.Equal(t, "a.srt", summary.Results[0].InputPath)
	assert.Equal(t, "b.srt", summary.Results[1].InputPath)
	assert.Equal(t, "c.srt", summary.Results[2].InputPath)
	assert.Equal(t, 3, summary.Counts[batch.OutcomeSuccess])
}

func TestRunParallelRecordsFailureWithoutAbortingBatch(t *testing.T) {
	tasks := []batch.Task{successTask("a.srt"), failingTask("b.srt"), successTask("c.srt")}
	o := batch.New(2)
	summary := o.RunParallel(context.Background(), tasks)
	require.Len(t, summary.Results, 3)
	assert.Equal(t, 2, summary.Counts[batch.OutcomeSuccess])
	assert.Equal(t, 1, summary.Counts[batch.OutcomeFailed])
}

func TestRunParallelSkipsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tasks := []batch.Task{successTask("a.srt"), successTask("b.srt")}
	o := batch.New(2)
	summary := o.RunParallel(ctx, tasks)
	assert.Equal(t, 2, summary.Counts[batch.OutcomeSkipped])
}

func TestRunSerialProcessesInOrderAndStopsSubmittingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var processed []string
	tasks := []batch.Task{
		{InputPath: "a.srt", Run: func(ctx context.Context) (string, batch.Outcome, error) {
			processed = append(processed, "a.srt")
			cancel()
			return "", batch.OutcomeSuccess, nil
		}},
		{InputPath: "b.srt", Run: func(ctx context.Context) (string, batch.Outcome, error) {
			processed = append(processed, "b.srt")
			return "", batch.OutcomeSuccess, nil
		}},
	}
	o := batch.New(1)
	summary := o.RunSerial(ctx, tasks)
	require.Len(t, summary.Results, 2)
	assert.Equal(t, []string{"a.srt"}, processed)
	assert.Equal(t, 1, summary.Counts[batch.OutcomeSuccess])
	assert.Equal(t, 1, summary.Counts[batch.OutcomeSkipped])
}

func TestNewDefaultsZeroPoolSizeToFour(t *testing.T) {
	o := batch.New(0)
	assert.Equal(t, 4, o.WorkerPoolSize)
}

func TestScratchDirCreatesAndCleansUp(t *testing.T) {
	dir, cleanup, err := batch.ScratchDir()
	require.NoError(t, err)
	require.NotEmpty(t, dir)
	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
	cleanup()
	_, statErr = os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}
