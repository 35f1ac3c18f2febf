// Package model defines the data types shared across the benchmarking
// core: the server-side Work Item, its Server Timeline, the client-side
// Outcome of a single call, latency distributions, and the aggregated
// Concurrency Test Result / Probe Result produced by a full run.
//
// Types in this package carry no behavior beyond small accessors; the
// packages that mutate or reduce them (workqueue, loadengine, aggregate,
// slo, prober) live elsewhere so that model has no dependencies besides
// the standard library.
package model
