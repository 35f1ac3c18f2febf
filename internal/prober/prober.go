package prober

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/deanroom/grpc-demo/internal/aggregate"
	"github.com/deanroom/grpc-demo/internal/loadengine"
	"github.com/deanroom/grpc-demo/internal/model"
	"github.com/deanroom/grpc-demo/internal/slo"
	"github.com/deanroom/grpc-demo/internal/workqueue"
)

// Config is the fully-resolved set of parameters driving a Prober run. It
// is built by internal/config from CLI flags and passed by value so the
// core carries no global state.
type Config struct {
	SLO model.SLO

	WarmupConcurrency int
	WarmupDuration    time.Duration

	InitialConcurrency int
	MaxConcurrency     int
	TestDuration       time.Duration

	StabilityDuration time.Duration

	// BisectionTolerance is the window width, in concurrency units, at
	// which bisection stops narrowing. Spec default 10.
	BisectionTolerance int
	// RecommendedCeilingFactor scales effective_concurrency down to a
	// recommended operating ceiling. Spec default 0.8.
	RecommendedCeilingFactor float64
	// StabilityDegradeFactor scales max_concurrency down when the
	// stability-verification phase fails SLO. Spec default 0.9.
	StabilityDegradeFactor float64
}

// DefaultConfig returns a Config with the spec's literal defaults for the
// tunables §9 calls out as empirical (bisection tolerance, safety factor).
func DefaultConfig() Config {
	return Config{
		BisectionTolerance:       10,
		RecommendedCeilingFactor: 0.8,
		StabilityDegradeFactor:   0.9,
	}
}

// Prober runs the five-phase search described in §4.F.
type Prober struct {
	caller loadengine.Caller
	queue  *workqueue.Queue
	cfg    Config
	log    zerolog.Logger
}

// New constructs a Prober. caller issues RPCs (typically an
// *internal/rpcclient.Pool); queue is the server-side work queue whose
// stats (peak depth, max queue wait) are read and reset between levels.
func New(caller loadengine.Caller, queue *workqueue.Queue, cfg Config, log zerolog.Logger) *Prober {
	return &Prober{
		caller: caller,
		queue:  queue,
		cfg:    cfg,
		log:    log.With().Str("component", "prober").Logger(),
	}
}

// runLevel resets queue stats, runs the load engine at concurrency k for
// duration, reduces the outcomes, and scores the result against the SLO.
func (p *Prober) runLevel(ctx context.Context, k int, duration time.Duration) model.ConcurrencyTestResult {
	p.queue.ResetStats()
	res := loadengine.Run(ctx, p.caller, k, duration)
	ctr := aggregate.Reduce(res.Outcomes, res.Duration, k, int32(p.queue.PeakDepth()), p.queue.MaxQueueWait())
	ctr.Verdict = slo.Evaluate(ctr, p.cfg.SLO)
	p.log.Debug().
		Int("concurrency", k).
		Bool("pass", ctr.Verdict.Pass).
		Float64("success_rate", ctr.SuccessRate).
		Dur("p99", ctr.LatencyDistribution.P99).
		Msg("level complete")
	return ctr
}

// Run executes all five phases in order and returns the populated Probe
// Result. Cancellation of ctx at any point yields a partial Probe Result
// containing whatever levels completed, with Diagnostics.Cancelled set.
func (p *Prober) Run(ctx context.Context) model.ProbeResult {
	var levels []model.ConcurrencyTestResult

	// Phase 1: warm. Discards its result entirely; exists only to
	// establish connection pools and caches before measurement begins.
	if ctx.Err() != nil {
		return p.cancelledResult(levels)
	}
	_ = p.runLevel(ctx, p.cfg.WarmupConcurrency, p.cfg.WarmupDuration)
	p.queue.ResetStats()
	if ctx.Err() != nil {
		return p.cancelledResult(levels)
	}

	// Phase 2: exponential growth.
	k := p.cfg.InitialConcurrency
	lastGood := 0
	firstBad := 0
	reachedMax := false

	for {
		if ctx.Err() != nil {
			return p.cancelledResult(levels)
		}
		lvl := p.runLevel(ctx, k, p.cfg.TestDuration)
		levels = append(levels, lvl)

		if !lvl.Verdict.Pass {
			firstBad = k
			break
		}
		lastGood = k
		if k >= p.cfg.MaxConcurrency {
			reachedMax = true
			break
		}
		next := k * 2
		if next > p.cfg.MaxConcurrency {
			next = p.cfg.MaxConcurrency
		}
		k = next
	}

	if ctx.Err() != nil {
		return p.cancelledResult(levels)
	}
	if lastGood == 0 {
		// Edge case: the very first exponential step already failed SLO.
		return model.ProbeResult{
			Levels:      levels,
			Diagnostics: model.ProbeDiagnostics{FirstLevelFailed: true},
		}
	}

	// Phase 3: bisection, only if the gap is wide enough to be worth
	// narrowing and growth did not already saturate at max_concurrency.
	if !reachedMax && firstBad-lastGood > p.cfg.BisectionTolerance {
		low, high := lastGood, firstBad
		for high-low > p.cfg.BisectionTolerance {
			if ctx.Err() != nil {
				return p.cancelledResult(levels)
			}
			mid := (low + high) / 2
			lvl := p.runLevel(ctx, mid, p.cfg.TestDuration)
			levels = append(levels, lvl)
			if lvl.Verdict.Pass {
				low = mid
				lastGood = mid
			} else {
				high = mid
			}
		}
	}

	// Phase 4: stability verification.
	if ctx.Err() != nil {
		return p.cancelledResult(levels)
	}
	stableLvl := p.runLevel(ctx, lastGood, p.cfg.StabilityDuration)
	levels = append(levels, stableLvl)
	if ctx.Err() != nil {
		return p.cancelledResult(levels)
	}

	maxConcurrency := lastGood
	stabilityDegraded := false
	if !stableLvl.Verdict.Pass {
		maxConcurrency = int(math.Floor(float64(lastGood) * p.cfg.StabilityDegradeFactor))
		stabilityDegraded = true
	}

	// Phase 5: derivation.
	effective, throughput := highestPassingLevel(levels)
	recommended := int(math.Floor(float64(effective) * p.cfg.RecommendedCeilingFactor))

	return model.ProbeResult{
		Levels:               levels,
		MaxConcurrency:       maxConcurrency,
		EffectiveConcurrency: effective,
		SaturatedThroughput:  throughput,
		RecommendedCeiling:   recommended,
		Diagnostics:          model.ProbeDiagnostics{StabilityDegraded: stabilityDegraded},
	}
}

// highestPassingLevel returns the concurrency and throughput of the
// highest-K level in levels whose Verdict passed.
func highestPassingLevel(levels []model.ConcurrencyTestResult) (int, float64) {
	effective := 0
	var throughput float64
	for _, lvl := range levels {
		if lvl.Verdict.Pass && lvl.Concurrency > effective {
			effective = lvl.Concurrency
			throughput = lvl.Throughput
		}
	}
	return effective, throughput
}

func (p *Prober) cancelledResult(levels []model.ConcurrencyTestResult) model.ProbeResult {
	effective, throughput := highestPassingLevel(levels)
	return model.ProbeResult{
		Levels:               levels,
		EffectiveConcurrency: effective,
		SaturatedThroughput:  throughput,
		RecommendedCeiling:   int(math.Floor(float64(effective) * p.cfg.RecommendedCeilingFactor)),
		Diagnostics:          model.ProbeDiagnostics{Cancelled: true},
	}
}
