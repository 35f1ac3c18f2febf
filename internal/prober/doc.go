// Package prober implements the Adaptive Concurrency Prober: a closed-loop
// search over concurrency levels that warms the system under test, grows
// exponentially until an SLO breach, bisects to narrow the boundary, and
// verifies stability at the converged level.
package prober
