package model

import (
	"context"
	"sync"
)

// WorkResult is the terminal outcome delivered to whatever is waiting on
// a WorkItem's completion signal.
type WorkResult struct {
	// Err is non-nil if the synthetic work unit (internal/syntheticwork)
	// returned an unexpected error. Always nil in the baseline
	// implementation, which has no failure modes of its own.
	Err error
	// Cancelled is true if the item was pulled off the queue with its
	// cancellation signal already asserted, and was never dequeued for
	// processing.
	Cancelled bool
}

// WorkItem is the server-side representation of one in-flight RPC. It is
// created on RPC arrival, handed to the single-consumer work queue, and
// destroyed after completion or cancellation.
//
// Only two goroutines ever touch a WorkItem's fields: the RPC handler
// goroutine that constructs it (setting ArrivalTime) and, through
// Queue.Enqueue, writes EnqueueTime and QueueDepthAtEnqueue; and the
// queue's single worker goroutine, which writes DequeueTime and
// CompleteTime. The fields are disjoint between those two writers, and
// the completion channel provides the happens-before edge the handler
// needs to read them back safely once Wait returns.
type WorkItem struct {
	RequestID string

	// ArrivalTime is the monotonic tick (nanoseconds since an arbitrary
	// epoch) at which the RPC handler observed the request.
	ArrivalTime int64
	// EnqueueTime is stamped by Queue.Enqueue.
	EnqueueTime int64
	// DequeueTime is stamped by the queue worker immediately before
	// invoking the synthetic work unit.
	DequeueTime int64
	// CompleteTime is stamped by the queue worker immediately after the
	// synthetic work unit returns.
	CompleteTime int64
	// QueueDepthAtEnqueue is the queue depth snapshot taken at enqueue
	// time, before this item was pushed.
	QueueDepthAtEnqueue int32

	ctx  context.Context
	done chan WorkResult
	once sync.Once
}

// NewWorkItem constructs a WorkItem for an RPC that arrived at
// arrivalTime, linking its cancellation signal to ctx (typically the
// handler's own stream/call context).
func NewWorkItem(ctx context.Context, requestID string, arrivalTime int64) *WorkItem {
	return &WorkItem{
		RequestID:   requestID,
		ArrivalTime: arrivalTime,
		ctx:         ctx,
		done:        make(chan WorkResult, 1),
	}
}

// Cancelled returns the channel that is closed once the caller's
// cancellation signal has fired.
func (w *WorkItem) Cancelled() <-chan struct{} {
	return w.ctx.Done()
}

// Complete fulfils the completion signal with a (possibly nil) error from
// the synthetic work unit. Safe to call at most meaningfully once; later
// calls are no-ops, matching the "each Work Item resolves exactly once"
// invariant.
func (w *WorkItem) Complete(err error) {
	w.once.Do(func() {
		w.done <- WorkResult{Err: err}
	})
}

// CompleteCancelled fulfils the completion signal with a cancellation
// result. Called by the queue worker when it observes the cancellation
// signal already asserted at dequeue time.
func (w *WorkItem) CompleteCancelled() {
	w.once.Do(func() {
		w.done <- WorkResult{Cancelled: true}
	})
}

// Wait blocks until the completion signal fires and returns its result.
func (w *WorkItem) Wait() WorkResult {
	return <-w.done
}

// Timeline snapshots the four timestamps as a ServerTimeline. Only
// meaningful after Wait has returned.
func (w *WorkItem) Timeline() ServerTimeline {
	return ServerTimeline{
		ArrivalTime:  w.ArrivalTime,
		EnqueueTime:  w.EnqueueTime,
		DequeueTime:  w.DequeueTime,
		CompleteTime: w.CompleteTime,
	}
}
