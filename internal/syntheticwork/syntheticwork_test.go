package syntheticwork

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistributionBoundsPanicOnInvalidInput(t *testing.T) {
	assert.Panics(t, func() { NewDistribution(0, 50) })
	assert.Panics(t, func() { NewDistribution(-1, 50) })
	assert.Panics(t, func() { NewDistribution(100000, 1) }) // 100ms min > 1ms max
}

func TestDistributionDrawWithinBounds(t *testing.T) {
	d := NewDistribution(10, 50) // 10us .. 50000us
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		us := d.DrawMicros(rng)
		require.GreaterOrEqual(t, us, int64(10))
		require.LessOrEqual(t, us, int64(50000))
	}
}

func TestDistributionDrawDegenerateRange(t *testing.T) {
	d := NewDistribution(1000, 1) // min_us == max_us_equivalent
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100; i++ {
		assert.Equal(t, int64(1000), d.DrawMicros(rng))
	}
}

func TestRunApproximatesRequestedDelay(t *testing.T) {
	cases := []int64{50, 1500, 5000}
	for _, us := range cases {
		start := time.Now()
		Run(us)
		elapsed := time.Since(start)
		// never returns early; allow generous scheduling slack on the high side
		assert.GreaterOrEqual(t, elapsed, time.Duration(us)*time.Microsecond)
		assert.Less(t, elapsed, time.Duration(us)*time.Microsecond+200*time.Millisecond)
	}
}

func TestRunZeroOrNegativeReturnsImmediately(t *testing.T) {
	start := time.Now()
	Run(0)
	Run(-5)
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
