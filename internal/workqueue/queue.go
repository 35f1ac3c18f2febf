package workqueue

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/deanroom/grpc-demo/internal/model"
	"github.com/deanroom/grpc-demo/internal/syntheticwork"
)

// Queue is an unbounded, single-consumer FIFO from RPC handlers to one
// dedicated worker goroutine, launched at construction. The zero value
// is not usable; construct with New.
//
// Enqueue is safe for concurrent use by many producer goroutines. Only
// the worker goroutine launched by New ever dequeues.
type Queue struct {
	mu   sync.Mutex
	buf  []*model.WorkItem
	wake chan struct{}

	shutdown     chan struct{}
	shutdownOnce sync.Once
	stopped      chan struct{}

	currentDepth atomic.Int64
	peakDepth    atomic.Int64
	processed    atomic.Uint64
	cancelled    atomic.Uint64
	maxWaitNanos atomic.Int64

	delay Delayer
	rng   *rand.Rand
	start time.Time

	log zerolog.Logger
}

// Delayer abstracts the synthetic work unit so tests can substitute a
// deterministic stand-in; production callers pass a
// syntheticwork.Distribution.
type Delayer interface {
	DrawMicros(rng *rand.Rand) int64
}

var _ Delayer = syntheticwork.Distribution{}

// New constructs a Queue and starts its single consumer goroutine.
func New(delay Delayer, log zerolog.Logger) *Queue {
	q := &Queue{
		wake:     make(chan struct{}, 1),
		shutdown: make(chan struct{}),
		stopped:  make(chan struct{}),
		delay:    delay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		start:    time.Now(),
		log:      log.With().Str("component", "workqueue").Logger(),
	}
	go q.run()
	return q
}

func (q *Queue) nowTicks() int64 {
	return int64(time.Since(q.start))
}

// Now returns the current monotonic tick on the same clock basis used to
// stamp EnqueueTime, DequeueTime, and CompleteTime. Callers that construct
// a model.WorkItem ahead of Enqueue (the RPC server adapter) must stamp
// ArrivalTime from this method so the arrival ≤ enqueue invariant holds.
func (q *Queue) Now() int64 { return q.nowTicks() }

// Enqueue stamps EnqueueTime, snapshots the queue depth ahead of this
// item into QueueDepthAtEnqueue, updates the running peak depth, and
// pushes the item. Non-blocking.
func (q *Queue) Enqueue(item *model.WorkItem) {
	item.EnqueueTime = q.nowTicks()

	q.mu.Lock()
	depthBefore := int64(len(q.buf))
	item.QueueDepthAtEnqueue = int32(depthBefore)
	q.buf = append(q.buf, item)
	q.mu.Unlock()

	q.currentDepth.Add(1)
	q.casMax(&q.peakDepth, depthBefore+1)

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// PeakDepth returns the highest queue depth observed since the last
// ResetStats.
func (q *Queue) PeakDepth() int64 { return q.peakDepth.Load() }

// ProcessedCount returns the number of items the worker has run to
// completion since the last ResetStats.
func (q *Queue) ProcessedCount() uint64 { return q.processed.Load() }

// CancelledCount returns the number of items observed cancelled at
// dequeue time since the last ResetStats.
func (q *Queue) CancelledCount() uint64 { return q.cancelled.Load() }

// MaxQueueWait returns the longest dequeue-minus-enqueue wait observed
// since the last ResetStats.
func (q *Queue) MaxQueueWait() time.Duration {
	return time.Duration(q.maxWaitNanos.Load())
}

// CurrentDepth returns the number of items currently sitting in the
// queue, not yet dequeued.
func (q *Queue) CurrentDepth() int64 { return q.currentDepth.Load() }

// ResetStats zeroes the peak depth, the processed and cancelled counts,
// and the max queue wait; CurrentDepth is left as is. Safe to call between
// probe levels; idempotent; never drains or reorders items.
func (q *Queue) ResetStats() {
	q.peakDepth.Store(0)
	q.processed.Store(0)
	q.cancelled.Store(0)
	q.maxWaitNanos.Store(0)
}

// Shutdown signals no-more-producers and waits for the worker to drain
// the backlog and exit, or for ctx to expire first.
func (q *Queue) Shutdown(ctx context.Context) error {
	q.shutdownOnce.Do(func() { close(q.shutdown) })
	select {
	case <-q.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.stopped)
	for {
		if item, ok := q.pop(); ok {
			q.process(item)
			continue
		}
		select {
		case <-q.wake:
		case <-q.shutdown:
			for {
				item, ok := q.pop()
				if !ok {
					return
				}
				q.process(item)
			}
		}
	}
}

func (q *Queue) pop() (*model.WorkItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.buf) == 0 {
		return nil, false
	}
	item := q.buf[0]
	q.buf[0] = nil
	q.buf = q.buf[1:]
	if len(q.buf) == 0 {
		q.buf = nil // release the backing array once the backlog drains
	}
	return item, true
}

func (q *Queue) process(item *model.WorkItem) {
	q.currentDepth.Add(-1)

	select {
	case <-item.Cancelled():
		q.cancelled.Add(1)
		item.CompleteCancelled()
		return
	default:
	}

	item.DequeueTime = q.nowTicks()
	q.casMax(&q.maxWaitNanos, item.DequeueTime-item.EnqueueTime)

	err := q.runWork()

	item.CompleteTime = q.nowTicks()
	q.processed.Add(1)
	item.Complete(err)
}

func (q *Queue) runWork() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("syntheticwork: panic: %v", r)
			q.log.Error().Interface("recovered", r).Msg("synthetic work unit panicked")
		}
	}()
	syntheticwork.Run(q.delay.DrawMicros(q.rng))
	return nil
}

// casMax applies a monotonic-maximum update via a compare-and-swap loop.
func (q *Queue) casMax(target *atomic.Int64, value int64) {
	for {
		old := target.Load()
		if value <= old {
			return
		}
		if target.CompareAndSwap(old, value) {
			return
		}
	}
}
