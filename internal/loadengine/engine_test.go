package loadengine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deanroom/grpc-demo/internal/model"
)

// fakeCaller simulates a fixed per-call latency and tracks the maximum
// number of concurrently outstanding calls it observed.
type fakeCaller struct {
	latency time.Duration
	inFlt   atomic.Int64
	maxInFl atomic.Int64
}

func (f *fakeCaller) Call(ctx context.Context, requestID string, sendTime int64) model.Outcome {
	cur := f.inFlt.Add(1)
	for {
		old := f.maxInFl.Load()
		if cur <= old || f.maxInFl.CompareAndSwap(old, cur) {
			break
		}
	}
	defer f.inFlt.Add(-1)

	time.Sleep(f.latency)
	return model.Outcome{Kind: model.OutcomeSuccess, Latency: f.latency}
}

func TestRunNeverExceedsConcurrencyK(t *testing.T) {
	caller := &fakeCaller{latency: 5 * time.Millisecond}
	res := Run(context.Background(), caller, 10, 100*time.Millisecond)

	require.NotEmpty(t, res.Outcomes)
	assert.LessOrEqual(t, caller.maxInFl.Load(), int64(10))
	assert.Equal(t, 10, res.Concurrency)
}

func TestRunStopsAtDuration(t *testing.T) {
	caller := &fakeCaller{latency: time.Millisecond}
	start := time.Now()
	res := Run(context.Background(), caller, 4, 50*time.Millisecond)
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 50*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
	assert.NotZero(t, res.Duration)
}

func TestRunHonorsCancellation(t *testing.T) {
	caller := &fakeCaller{latency: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan Result)
	go func() { done <- Run(ctx, caller, 4, 10*time.Second) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case res := <-done:
		assert.NotEmpty(t, res.Outcomes)
	case <-time.After(time.Second):
		t.Fatal("Run did not honor cancellation")
	}
}
