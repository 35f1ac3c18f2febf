// Package workqueue implements the single-consumer work queue that
// serves as the system-under-test: a FIFO from RPC handler goroutines to
// one dedicated worker, draining synthetic work units
// (internal/syntheticwork) and recording per-item timestamps and
// queue-depth-at-enqueue.
//
// The queue is deliberately unbounded (spec §9): a bounded queue would
// convert queue pressure into immediate rejections, hiding the
// saturation threshold the prober is trying to find. Backlog growth
// shows up as queue-wait latency instead, which is exactly what the
// Result Aggregator measures.
package workqueue
