package subkit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/srtsuite/subkit"
)

func TestDefaultOptionsValues(t *testing.T) {
	opts := subkit.DefaultOptions()
	assert.Equal(t, 500*time.Millisecond, opts.MixedTrackPruneTolerance)
	assert.Equal(t, 0.05, opts.ClampWarnFraction)
	assert.Equal(t, 50*time.Millisecond, opts.MergeMicroCueThreshold)
	assert.Equal(t, time.Millisecond, opts.MergeAdjacencyGap)
	assert.Equal(t, 20, opts.ScanWindow)
	assert.Equal(t, 4, opts.WorkerPoolSize)
}
