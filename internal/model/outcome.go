package model

import "time"

// ServerTimeline is an immutable snapshot of a Work Item's timestamps,
// returned with a successful response. All four fields are monotonic
// ticks from the same clock as model.WorkItem.ArrivalTime.
type ServerTimeline struct {
	ArrivalTime  int64
	EnqueueTime  int64
	DequeueTime  int64
	CompleteTime int64
}

// QueueWait returns DequeueTime - EnqueueTime as a duration, or zero if
// either timestamp is unset.
func (t ServerTimeline) QueueWait() time.Duration {
	if t.EnqueueTime == 0 || t.DequeueTime == 0 {
		return 0
	}
	return time.Duration(t.DequeueTime - t.EnqueueTime)
}

// HasQueueWait reports whether both the enqueue and dequeue timestamps
// are present, per the aggregator's queue-wait-sample eligibility rule.
func (t ServerTimeline) HasQueueWait() bool {
	return t.EnqueueTime > 0 && t.DequeueTime > 0
}

// TimeoutClass tags why a Timeout Outcome occurred.
type TimeoutClass int

const (
	TimeoutClassUnspecified TimeoutClass = iota
	// TimeoutHTTP2ConnectionLayer: the request never reached the server
	// (no Server Timeline present). The default classification for a
	// client-observed deadline-exceeded status; see spec §9.
	TimeoutHTTP2ConnectionLayer
	// TimeoutServerQueueWait: server-side queue wait dominated.
	TimeoutServerQueueWait
	// TimeoutServerProcessing: server-side processing dominated.
	TimeoutServerProcessing
	// TimeoutClientCancelled: the caller's own cancellation fired.
	TimeoutClientCancelled
)

// String renders the classification the way it is reported in the
// console output and log fields.
func (c TimeoutClass) String() string {
	switch c {
	case TimeoutHTTP2ConnectionLayer:
		return "http2_connection_layer"
	case TimeoutServerQueueWait:
		return "server_queue_wait"
	case TimeoutServerProcessing:
		return "server_processing"
	case TimeoutClientCancelled:
		return "client_cancelled"
	default:
		return "unspecified"
	}
}

// OutcomeKind is the tag of the Outcome variant.
type OutcomeKind int

const (
	OutcomeKindUnspecified OutcomeKind = iota
	OutcomeSuccess
	OutcomeTimeout
	OutcomeTransportError
	OutcomeCancelled
)

// Outcome is a tagged variant describing the result of a single RPC
// issued by the Channel-Pool Client, as observed by the Steady-State
// Load Engine.
type Outcome struct {
	Kind OutcomeKind

	// Latency is populated only for OutcomeSuccess.
	Latency time.Duration
	// Timeline is populated only for OutcomeSuccess.
	Timeline ServerTimeline

	// TimeoutClass classifies OutcomeTimeout and OutcomeCancelled
	// (which always carries TimeoutClientCancelled).
	TimeoutClass TimeoutClass

	// Err carries the RPC status/transport error for OutcomeTransportError.
	Err error
}

// IsSuccess reports whether the Outcome satisfies the success
// classification invariant: a terminal reply with success=true and a
// timeline with both dequeue and enqueue timestamps nonzero.
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess && o.Timeline.EnqueueTime != 0 && o.Timeline.DequeueTime != 0
}
