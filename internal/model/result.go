package model

import "time"

// LatencyDistribution is a set of percentile summaries derived from a
// sorted sample, per spec §3/§4.G's fixed percentile formula.
type LatencyDistribution struct {
	Min    time.Duration
	P50    time.Duration
	P90    time.Duration
	P95    time.Duration
	P99    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration
}

// SLO is a two-predicate service-level objective: a success-rate floor
// and a P99 latency ceiling.
type SLO struct {
	SuccessRateFloor float64
	P99Ceiling       time.Duration
}

// Verdict is the result of evaluating an SLO against a
// ConcurrencyTestResult. Pure and deterministic.
type Verdict struct {
	Pass       bool
	Violations []string
}

// ConcurrencyTestResult is the reduction of one Steady-State Load Engine
// run at a fixed concurrency level K over duration T.
type ConcurrencyTestResult struct {
	Concurrency int
	Duration    time.Duration

	TotalRequests int
	SuccessCount  int
	TimeoutCount  int
	ErrorCount    int

	SuccessRate float64
	Throughput  float64

	LatencyDistribution   LatencyDistribution
	QueueWaitDistribution LatencyDistribution

	PeakQueueDepth int32
	MaxQueueWait   time.Duration

	HTTP2LayerTimeoutCount  int
	ServerLayerTimeoutCount int
	ClientCancelledCount    int

	Verdict Verdict
}

// ProbeDiagnostics records why an Adaptive Concurrency Prober run
// terminated the way it did, so a console report can explain a
// max_concurrency of 0 or a stability-induced reduction rather than
// print a bare number.
type ProbeDiagnostics struct {
	// FirstLevelFailed is true if the very first exponential-growth step
	// already failed the SLO.
	FirstLevelFailed bool
	// StabilityDegraded is true if the stability-verification phase
	// failed, reducing the reported ceiling by 10%.
	StabilityDegraded bool
	// Cancelled is true if the probe returned early due to caller
	// cancellation.
	Cancelled bool
}

// ProbeResult is the output of a full Adaptive Concurrency Prober run.
type ProbeResult struct {
	Levels []ConcurrencyTestResult

	MaxConcurrency       int
	EffectiveConcurrency int
	SaturatedThroughput  float64
	RecommendedCeiling   int

	Diagnostics ProbeDiagnostics
}
