package syntheticwork

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"
)

// Distribution draws a delay, in microseconds, such that its natural log
// is uniform over [ln(minUS), ln(maxUS)], where maxUS is maxMS expressed
// in microseconds. A realistic approximation of service-time
// distributions spanning orders of magnitude: both a 50µs and a 50ms
// draw are plausible, exercising both the spin-wait and coarse-sleep
// code paths below.
type Distribution struct {
	logMin float64
	logMax float64
}

// NewDistribution builds a Distribution over [minUS microseconds, maxMS
// milliseconds]. Panics if the bounds are non-positive or inverted —
// these are configuration errors, not runtime conditions.
func NewDistribution(minUS int64, maxMS int64) Distribution {
	if minUS <= 0 {
		panic("syntheticwork: min_us must be positive")
	}
	maxUS := float64(maxMS) * 1000
	if maxUS < float64(minUS) {
		panic(fmt.Sprintf("syntheticwork: max_ms (%dms = %.0fus) must be >= min_us (%d)", maxMS, maxUS, minUS))
	}
	return Distribution{
		logMin: math.Log(float64(minUS)),
		logMax: math.Log(maxUS),
	}
}

// DrawMicros samples one delay in microseconds from the distribution.
func (d Distribution) DrawMicros(rng *rand.Rand) int64 {
	if d.logMax <= d.logMin {
		return int64(math.Round(math.Exp(d.logMin)))
	}
	logUS := d.logMin + rng.Float64()*(d.logMax-d.logMin)
	return int64(math.Round(math.Exp(logUS)))
}

// Draw samples one delay as a time.Duration.
func (d Distribution) Draw(rng *rand.Rand) time.Duration {
	return time.Duration(d.DrawMicros(rng)) * time.Microsecond
}

// Run blocks for approximately us microseconds. Delays below 1ms are
// realized entirely by a monotonic-clock busy-wait with a yield-hinting
// pause, since sub-millisecond sleep resolution is OS-dependent. Longer
// delays coarse-sleep for ⌊us/1000⌋ milliseconds and busy-wait the
// residual. There are no failure modes: Run always returns after
// approximately us microseconds; overruns from scheduling noise are
// acceptable and show up as latency in the caller's own measurements.
func Run(us int64) {
	if us <= 0 {
		return
	}
	if ms := us / 1000; ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
		us -= ms * 1000
	}
	busyWait(time.Duration(us) * time.Microsecond)
}

func busyWait(d time.Duration) {
	if d <= 0 {
		return
	}
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		runtime.Gosched()
	}
}
