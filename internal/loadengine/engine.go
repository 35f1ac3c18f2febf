package loadengine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/deanroom/grpc-demo/internal/model"
)

// Caller issues one RPC and maps it to a model.Outcome. internal/rpcclient.Pool
// satisfies this interface; tests substitute a deterministic stand-in.
type Caller interface {
	Call(ctx context.Context, requestID string, sendTime int64) model.Outcome
}

// Result is the populated output of one Run: the concurrency level it ran
// at, the actual wall-clock duration observed, and every outcome
// collected.
type Result struct {
	Concurrency int
	Duration    time.Duration
	Outcomes    []model.Outcome
}

// Run holds exactly k requests in flight against caller for duration,
// returning once the window has elapsed (or ctx is cancelled) and every
// spawned unit has returned. At no point are more than k requests in
// flight: the submit loop blocks acquiring one of k weighted-semaphore
// permits before spawning each unit.
func Run(ctx context.Context, caller Caller, k int, duration time.Duration) Result {
	sem := semaphore.NewWeighted(int64(k))
	var (
		mu       sync.Mutex
		outcomes = make([]model.Outcome, 0, 1024)
		wg       sync.WaitGroup
		seq      atomic.Uint64
	)

	start := time.Now()
	deadline := start.Add(duration)

submit:
	for {
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			break submit
		}

		if err := sem.Acquire(ctx, 1); err != nil {
			break submit
		}

		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			defer sem.Release(1)

			requestID := fmt.Sprintf("r%d", id)
			out := caller.Call(ctx, requestID, time.Now().UnixNano())

			mu.Lock()
			outcomes = append(outcomes, out)
			mu.Unlock()
		}(seq.Add(1))
	}

	wg.Wait()

	return Result{
		Concurrency: k,
		Duration:    time.Since(start),
		Outcomes:    outcomes,
	}
}
