// Package syntheticwork implements the server-side unit of work that the
// single-consumer queue drains: a sleep for a duration drawn from a
// log-uniform distribution spanning microseconds to tens of
// milliseconds, precise at sub-millisecond scale via a busy-wait tail.
package syntheticwork
