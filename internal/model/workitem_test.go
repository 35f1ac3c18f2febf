package model

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkItemResolvesExactlyOnce(t *testing.T) {
	w := NewWorkItem(context.Background(), "req-1", 100)
	w.EnqueueTime = 200
	w.DequeueTime = 300
	w.CompleteTime = 400

	// fire both kinds of completion concurrently; only the first must stick
	done := make(chan struct{}, 2)
	go func() { w.Complete(nil); done <- struct{}{} }()
	go func() { w.CompleteCancelled(); done <- struct{}{} }()
	<-done
	<-done

	result := w.Wait()
	// a second Wait would block forever since nothing more is sent on done
	// once its single buffered value is drained; instead assert the
	// channel doesn't deliver a second value
	select {
	case <-w.done:
		t.Fatal("completion signal fired more than once")
	case <-time.After(10 * time.Millisecond):
	}
	_ = result
}

func TestWorkItemTimelineRoundTrip(t *testing.T) {
	w := NewWorkItem(context.Background(), "req-2", 10)
	w.EnqueueTime = 20
	w.DequeueTime = 30
	w.CompleteTime = 40
	w.Complete(nil)

	res := w.Wait()
	require.NoError(t, res.Err)
	require.False(t, res.Cancelled)

	tl := w.Timeline()
	assert.Equal(t, ServerTimeline{ArrivalTime: 10, EnqueueTime: 20, DequeueTime: 30, CompleteTime: 40}, tl)
}

func TestWorkItemCancellationSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorkItem(ctx, "req-3", 1)

	select {
	case <-w.Cancelled():
		t.Fatal("cancellation signal fired before cancel()")
	default:
	}

	cancel()
	select {
	case <-w.Cancelled():
	case <-time.After(time.Second):
		t.Fatal("cancellation signal did not propagate")
	}
}

func TestOutcomeIsSuccess(t *testing.T) {
	cases := []struct {
		name string
		o    Outcome
		want bool
	}{
		{"success with full timeline", Outcome{Kind: OutcomeSuccess, Timeline: ServerTimeline{EnqueueTime: 1, DequeueTime: 2}}, true},
		{"success missing dequeue", Outcome{Kind: OutcomeSuccess, Timeline: ServerTimeline{EnqueueTime: 1}}, false},
		{"timeout never success", Outcome{Kind: OutcomeTimeout, Timeline: ServerTimeline{EnqueueTime: 1, DequeueTime: 2}}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.o.IsSuccess())
		})
	}
}

func TestServerTimelineQueueWait(t *testing.T) {
	tl := ServerTimeline{EnqueueTime: 100, DequeueTime: 250}
	assert.Equal(t, 150*time.Nanosecond, tl.QueueWait())
	assert.True(t, tl.HasQueueWait())

	empty := ServerTimeline{}
	assert.Equal(t, time.Duration(0), empty.QueueWait())
	assert.False(t, empty.HasQueueWait())
}
