package rpcclient_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deanroom/grpc-demo/internal/model"
	"github.com/deanroom/grpc-demo/internal/rpcclient"
	"github.com/deanroom/grpc-demo/internal/rpcserver"
	"github.com/deanroom/grpc-demo/internal/workqueue"
)

type constDelay int64

func (d constDelay) DrawMicros(*rand.Rand) int64 { return int64(d) }

func TestCallRoundTripsOverRealTCP(t *testing.T) {
	q := workqueue.New(constDelay(100), zerolog.Nop())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = q.Shutdown(ctx)
	}()

	srv, err := rpcserver.Listen(0, 500, q, zerolog.Nop())
	require.NoError(t, err)
	defer srv.Stop()

	pool, err := rpcclient.Dial(context.Background(), rpcclient.Config{
		Addr:           srv.Addr,
		PoolSize:       2,
		RequestTimeout: time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	defer pool.Close()

	out := pool.Call(context.Background(), "r1", 0)
	require.Equal(t, model.OutcomeSuccess, out.Kind)
	assert.True(t, out.Timeline.HasQueueWait())
}

func TestCallClassifiesDeadlineExceededAsHTTP2ConnectionLayer(t *testing.T) {
	q := workqueue.New(constDelay(100_000), zerolog.Nop()) // 100ms, far past the call's deadline
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = q.Shutdown(ctx)
	}()

	srv, err := rpcserver.Listen(0, 500, q, zerolog.Nop())
	require.NoError(t, err)
	defer srv.Stop()

	pool, err := rpcclient.Dial(context.Background(), rpcclient.Config{
		Addr:           srv.Addr,
		PoolSize:       1,
		RequestTimeout: 5 * time.Millisecond,
	}, zerolog.Nop())
	require.NoError(t, err)
	defer pool.Close()

	out := pool.Call(context.Background(), "slow", 0)
	assert.Equal(t, model.OutcomeTimeout, out.Kind)
	assert.Equal(t, model.TimeoutHTTP2ConnectionLayer, out.TimeoutClass)
}

func TestCallRoundRobinsAcrossPool(t *testing.T) {
	q := workqueue.New(constDelay(50), zerolog.Nop())
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = q.Shutdown(ctx)
	}()

	srv, err := rpcserver.Listen(0, 500, q, zerolog.Nop())
	require.NoError(t, err)
	defer srv.Stop()

	pool, err := rpcclient.Dial(context.Background(), rpcclient.Config{
		Addr:           srv.Addr,
		PoolSize:       4,
		RequestTimeout: time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	defer pool.Close()

	for i := 0; i < 8; i++ {
		out := pool.Call(context.Background(), "r", 0)
		require.Equal(t, model.OutcomeSuccess, out.Kind)
	}
}
