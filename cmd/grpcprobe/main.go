// Command grpcprobe determines the maximum sustainable concurrency of a
// small unary RPC service whose server-side work is serialized through a
// single-consumer queue.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/deanroom/grpc-demo/internal/aggregate"
	"github.com/deanroom/grpc-demo/internal/config"
	"github.com/deanroom/grpc-demo/internal/loadengine"
	"github.com/deanroom/grpc-demo/internal/model"
	"github.com/deanroom/grpc-demo/internal/prober"
	"github.com/deanroom/grpc-demo/internal/report"
	"github.com/deanroom/grpc-demo/internal/rpcclient"
	"github.com/deanroom/grpc-demo/internal/rpcserver"
	"github.com/deanroom/grpc-demo/internal/slo"
	"github.com/deanroom/grpc-demo/internal/syntheticwork"
	"github.com/deanroom/grpc-demo/internal/workqueue"
)

// Fixed server-side workload, per spec §1 Non-goals: "arbitrary
// user-defined workloads" is explicitly out of scope. The distribution
// matches the spec's own end-to-end scenario 1.
const (
	syntheticMinUS = 10
	syntheticMaxMS = 50
)

var (
	mode              = flag.String("mode", "auto", "")
	concurrency       = flag.String("concurrency", "", "")
	externalServer    = flag.String("external-server", "", "")
	successRate       = flag.Float64("success-rate", 0.999, "")
	p99Threshold      = flag.Int("p99-threshold", 200, "")
	warmupDuration    = flag.Int("warmup-duration", 5, "")
	testDuration      = flag.Int("test-duration", 10, "")
	stabilityDuration = flag.Int("stability-duration", 30, "")
	port              = flag.Int("port", 50051, "")
	channelPoolSize   = flag.Int("channel-pool-size", 16, "")
	requestTimeout    = flag.Int("request-timeout", 5000, "")
	verbose           = flag.Bool("verbose", false, "")
)

var usage = `Usage: grpcprobe [options...]

Determines the maximum sustainable concurrency of a single-consumer unary
RPC service.

Options:
  -mode auto|manual         auto adaptively probes for the ceiling; manual
                            sweeps the fixed list given by -concurrency.
                            (default auto)
  -concurrency <csv>        comma-separated concurrency levels, manual mode only.
  -external-server <addr>   skip the embedded server and dial addr instead.

  -success-rate <float>     SLO success-rate floor, in (0,1]. (default 0.999)
  -p99-threshold <ms>       SLO P99 latency ceiling, in milliseconds. (default 200)

  -warmup-duration <sec>    warm-up phase duration. (default 5)
  -test-duration <sec>      per-level test duration. (default 10)
  -stability-duration <sec> stability-verification duration. (default 30)

  -port <int>               embedded server port. (default 50051)
  -channel-pool-size <int>  client channel pool size. (default 16)
  -request-timeout <ms>     per-call client deadline. (default 5000)

  -verbose                  debug-level logging.
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(1)
	}

	log := config.NewLogger(os.Stdout, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("grpcprobe failed")
		os.Exit(1)
	}
}

func buildConfig() (config.Config, error) {
	cfg := config.Default()
	cfg.Mode = config.Mode(*mode)
	cfg.ExternalServer = *externalServer
	cfg.SuccessRate = *successRate
	cfg.P99ThresholdMS = *p99Threshold
	cfg.WarmupDuration = time.Duration(*warmupDuration) * time.Second
	cfg.TestDuration = time.Duration(*testDuration) * time.Second
	cfg.StabilityDuration = time.Duration(*stabilityDuration) * time.Second
	cfg.Port = *port
	cfg.ChannelPoolSize = *channelPoolSize
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Millisecond

	if cfg.Mode == config.ModeManual {
		levels, err := config.ParseConcurrencyCSV(*concurrency)
		if err != nil {
			return cfg, err
		}
		cfg.ManualConcurrency = levels
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, log zerolog.Logger) error {
	q := workqueue.New(syntheticwork.NewDistribution(syntheticMinUS, syntheticMaxMS), log)
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = q.Shutdown(stopCtx)
	}()

	addr := cfg.ExternalServer
	if addr == "" {
		srv, err := rpcserver.Listen(cfg.Port, 500, q, log)
		if err != nil {
			return fmt.Errorf("grpcprobe: %w", err)
		}
		defer srv.Stop()
		addr = srv.Addr
	}

	pool, err := rpcclient.Dial(ctx, rpcclient.Config{
		Addr:           addr,
		PoolSize:       cfg.ChannelPoolSize,
		RequestTimeout: cfg.RequestTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("grpcprobe: dial: %w", err)
	}
	defer pool.Close()

	r := &report.Renderer{Writer: os.Stdout}

	if cfg.Mode == config.ModeManual {
		return runManual(ctx, cfg, pool, q, r)
	}
	return runAuto(ctx, cfg, pool, q, log, r)
}

func runAuto(ctx context.Context, cfg config.Config, pool *rpcclient.Pool, q *workqueue.Queue, log zerolog.Logger, r *report.Renderer) error {
	p := prober.New(pool, q, cfg.ProberConfig(), log)
	res := p.Run(ctx)
	r.Probe(res)
	return nil
}

func runManual(ctx context.Context, cfg config.Config, pool *rpcclient.Pool, q *workqueue.Queue, r *report.Renderer) error {
	s := cfg.SLO()
	levels := make([]model.ConcurrencyTestResult, 0, len(cfg.ManualConcurrency))
	for _, k := range cfg.ManualConcurrency {
		if ctx.Err() != nil {
			break
		}
		q.ResetStats()
		out := runLevel(ctx, pool, k, cfg.TestDuration)
		ctr := aggregate.Reduce(out.Outcomes, out.Duration, k, int32(q.PeakDepth()), q.MaxQueueWait())
		ctr.Verdict = slo.Evaluate(ctr, s)
		levels = append(levels, ctr)
	}
	r.Levels(levels)
	return nil
}

func runLevel(ctx context.Context, pool *rpcclient.Pool, k int, duration time.Duration) loadengine.Result {
	return loadengine.Run(ctx, pool, k, duration)
}

