package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/deanroom/grpc-demo/internal/model"
)

// Percentile computes P_p = sorted[clamp(ceil(p*n/100)-1, 0, n-1)] over a
// sample already sorted ascending. For an empty sample it returns 0. p is
// expected in [0, 100]; callers pass 50/90/95/99.
func Percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(n)/100)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

func distribution(samples []time.Duration) model.LatencyDistribution {
	n := len(samples)
	if n == 0 {
		return model.LatencyDistribution{}
	}

	sorted := make([]time.Duration, n)
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var sum time.Duration
	for _, s := range sorted {
		sum += s
	}
	mean := sum / time.Duration(n)

	var variance float64
	for _, s := range sorted {
		d := float64(s - mean)
		variance += d * d
	}
	variance /= float64(n)

	return model.LatencyDistribution{
		Min:    sorted[0],
		P50:    Percentile(sorted, 50),
		P90:    Percentile(sorted, 90),
		P95:    Percentile(sorted, 95),
		P99:    Percentile(sorted, 99),
		Max:    sorted[n-1],
		Mean:   mean,
		StdDev: time.Duration(math.Sqrt(variance)),
	}
}

// Reduce folds a list of per-call Outcomes collected over duration at
// concurrency level k into a ConcurrencyTestResult. peakQueueDepth and
// maxQueueWait are carried in from the work queue's own stats (reset
// between levels, per §4.B) rather than derived from the Outcome list.
// Reduce never sets Verdict — that is the SLO Evaluator's responsibility.
func Reduce(outcomes []model.Outcome, duration time.Duration, k int, peakQueueDepth int32, maxQueueWait time.Duration) model.ConcurrencyTestResult {
	total := len(outcomes)

	var (
		successCount, timeoutCount, transportErrCount, cancelledCount int
		http2LayerCount, serverLayerCount, clientCancelledCount       int
		latencies, queueWaits                                        []time.Duration
	)

	for _, o := range outcomes {
		switch o.Kind {
		case model.OutcomeSuccess:
			successCount++
			latencies = append(latencies, o.Latency)
			if o.Timeline.HasQueueWait() {
				queueWaits = append(queueWaits, o.Timeline.QueueWait())
			}
		case model.OutcomeTimeout:
			timeoutCount++
			switch o.TimeoutClass {
			case model.TimeoutHTTP2ConnectionLayer:
				http2LayerCount++
			case model.TimeoutServerQueueWait, model.TimeoutServerProcessing:
				serverLayerCount++
			case model.TimeoutClientCancelled:
				clientCancelledCount++
			}
		case model.OutcomeTransportError:
			transportErrCount++
		case model.OutcomeCancelled:
			cancelledCount++
			clientCancelledCount++
		}
	}

	var successRate, throughput float64
	if total > 0 {
		successRate = float64(successCount) / float64(total)
	}
	if seconds := duration.Seconds(); seconds > 0 {
		throughput = float64(successCount) / seconds
	}

	return model.ConcurrencyTestResult{
		Concurrency:   k,
		Duration:      duration,
		TotalRequests: total,
		SuccessCount:  successCount,
		TimeoutCount:  timeoutCount,
		ErrorCount:    transportErrCount + cancelledCount,

		SuccessRate: successRate,
		Throughput:  throughput,

		LatencyDistribution:   distribution(latencies),
		QueueWaitDistribution: distribution(queueWaits),

		PeakQueueDepth: peakQueueDepth,
		MaxQueueWait:   maxQueueWait,

		HTTP2LayerTimeoutCount:  http2LayerCount,
		ServerLayerTimeoutCount: serverLayerCount,
		ClientCancelledCount:    clientCancelledCount,
	}
}
