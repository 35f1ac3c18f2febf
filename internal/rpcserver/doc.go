// Package rpcserver adapts the unary benchmarkpb.BenchmarkService RPC to
// the single-consumer work queue (internal/workqueue): one Work Item per
// call, enqueued and awaited, never blocking the gRPC I/O goroutine on the
// queue itself.
package rpcserver
