package workqueue

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deanroom/grpc-demo/internal/model"
)

// fixedDelay draws a constant number of microseconds, keeping these tests
// fast and deterministic.
type fixedDelay int64

func (f fixedDelay) DrawMicros(*rand.Rand) int64 { return int64(f) }

func newTestQueue(t *testing.T, delayUS int64) *Queue {
	t.Helper()
	q := New(fixedDelay(delayUS), zerolog.Nop())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = q.Shutdown(ctx)
	})
	return q
}

func TestQueueMonotonicTimeline(t *testing.T) {
	q := newTestQueue(t, 200)

	item := model.NewWorkItem(context.Background(), "r1", 0)
	q.Enqueue(item)
	res := item.Wait()
	require.NoError(t, res.Err)
	require.False(t, res.Cancelled)

	assert.LessOrEqual(t, item.ArrivalTime, item.EnqueueTime)
	assert.LessOrEqual(t, item.EnqueueTime, item.DequeueTime)
	assert.LessOrEqual(t, item.DequeueTime, item.CompleteTime)
}

func TestQueueFIFOOrder(t *testing.T) {
	q := newTestQueue(t, 500)

	const n = 20
	items := make([]*model.WorkItem, n)
	for i := 0; i < n; i++ {
		items[i] = model.NewWorkItem(context.Background(), "", 0)
		q.Enqueue(items[i])
	}
	for i := 0; i < n; i++ {
		res := items[i].Wait()
		require.NoError(t, res.Err)
	}
	for i := 1; i < n; i++ {
		assert.LessOrEqual(t, items[i-1].DequeueTime, items[i].DequeueTime,
			"items must be dequeued in FIFO order of enqueue")
	}
}

func TestQueuePeakDepthAndQueueDepthAtEnqueue(t *testing.T) {
	// slow enough that the producers race ahead of the single worker
	q := newTestQueue(t, 20_000)

	var wg sync.WaitGroup
	const n = 10
	items := make([]*model.WorkItem, n)
	for i := 0; i < n; i++ {
		items[i] = model.NewWorkItem(context.Background(), "", 0)
	}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(it *model.WorkItem) {
			defer wg.Done()
			q.Enqueue(it)
		}(items[i])
	}
	wg.Wait()

	var maxObservedDepth int32
	for _, it := range items {
		if it.QueueDepthAtEnqueue > maxObservedDepth {
			maxObservedDepth = it.QueueDepthAtEnqueue
		}
		assert.GreaterOrEqual(t, it.QueueDepthAtEnqueue, int32(0))
	}

	for _, it := range items {
		it.Wait()
	}

	assert.GreaterOrEqual(t, q.PeakDepth(), int64(maxObservedDepth))
}

func TestQueueCancellationAtDequeue(t *testing.T) {
	q := newTestQueue(t, 50_000)

	// fill the queue so the cancelled item isn't picked up immediately
	blocker := model.NewWorkItem(context.Background(), "blocker", 0)
	q.Enqueue(blocker)

	ctx, cancel := context.WithCancel(context.Background())
	item := model.NewWorkItem(ctx, "cancel-me", 0)
	q.Enqueue(item)
	cancel() // cancel before the worker reaches it

	blocker.Wait()
	res := item.Wait()
	assert.True(t, res.Cancelled)
	assert.Equal(t, uint64(1), q.CancelledCount())
}

func TestQueueResetStatsIdempotent(t *testing.T) {
	q := newTestQueue(t, 100)

	item := model.NewWorkItem(context.Background(), "", 0)
	q.Enqueue(item)
	item.Wait()

	require.Equal(t, uint64(1), q.ProcessedCount())

	q.ResetStats()
	q.ResetStats()

	assert.Equal(t, int64(0), q.PeakDepth())
	assert.Equal(t, uint64(0), q.ProcessedCount())
	assert.Equal(t, uint64(0), q.CancelledCount())
	assert.Equal(t, time.Duration(0), q.MaxQueueWait())
}

func TestQueueResetStatsDoesNotDrainOrReorder(t *testing.T) {
	q := newTestQueue(t, 30_000)

	first := model.NewWorkItem(context.Background(), "first", 0)
	q.Enqueue(first)
	q.ResetStats()
	second := model.NewWorkItem(context.Background(), "second", 0)
	q.Enqueue(second)

	res1 := first.Wait()
	res2 := second.Wait()
	require.NoError(t, res1.Err)
	require.NoError(t, res2.Err)
	assert.LessOrEqual(t, first.DequeueTime, second.DequeueTime)
}

func TestQueueShutdownGraceJoinsWorker(t *testing.T) {
	q := New(fixedDelay(100), zerolog.Nop())
	item := model.NewWorkItem(context.Background(), "", 0)
	q.Enqueue(item)
	item.Wait()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, q.Shutdown(ctx))
}
