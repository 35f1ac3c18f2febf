// Package config resolves the CLI surface (§6) into a fully-resolved Run
// Configuration consumed by the core, and builds the process-wide
// structured logger.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/deanroom/grpc-demo/internal/model"
	"github.com/deanroom/grpc-demo/internal/prober"
)

// Mode selects between the adaptive auto-probe and a fixed manual sweep
// over an explicit concurrency list.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Fixed phase parameters not exposed as flags; §4.F calls initial_concurrency
// "e.g. 20" and leaves warmup/max concurrency as implementation choices.
const (
	defaultWarmupConcurrency  = 10
	defaultInitialConcurrency = 20
	defaultMaxConcurrency     = 2000
)

// Config is the Run Configuration: the resolved output of CLI flag
// parsing, passed by value into the core so it carries no global state.
type Config struct {
	Mode              Mode
	ManualConcurrency []int
	ExternalServer    string

	SuccessRate    float64
	P99ThresholdMS int

	WarmupDuration    time.Duration
	TestDuration      time.Duration
	StabilityDuration time.Duration

	Port            int
	ChannelPoolSize int
	RequestTimeout  time.Duration
}

// Default returns a Config matching every CLI flag's documented default
// (§6).
func Default() Config {
	return Config{
		Mode:              ModeAuto,
		SuccessRate:       0.999,
		P99ThresholdMS:    200,
		WarmupDuration:    5 * time.Second,
		TestDuration:      10 * time.Second,
		StabilityDuration: 30 * time.Second,
		Port:              50051,
		ChannelPoolSize:   16,
		RequestTimeout:    5 * time.Second,
	}
}

// SLO derives the two-predicate SLO the core evaluates every level
// against.
func (c Config) SLO() model.SLO {
	return model.SLO{
		SuccessRateFloor: c.SuccessRate,
		P99Ceiling:       time.Duration(c.P99ThresholdMS) * time.Millisecond,
	}
}

// ProberConfig builds the prober.Config this Run Configuration implies.
func (c Config) ProberConfig() prober.Config {
	pc := prober.DefaultConfig()
	pc.SLO = c.SLO()
	pc.WarmupConcurrency = defaultWarmupConcurrency
	pc.WarmupDuration = c.WarmupDuration
	pc.InitialConcurrency = defaultInitialConcurrency
	pc.MaxConcurrency = defaultMaxConcurrency
	pc.TestDuration = c.TestDuration
	pc.StabilityDuration = c.StabilityDuration
	return pc
}

// ParseConcurrencyCSV parses a comma-separated list of concurrency levels
// for manual mode, e.g. "10,50,100,250".
func ParseConcurrencyCSV(csv string) ([]int, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, fmt.Errorf("config: --concurrency is required in manual mode")
	}
	parts := strings.Split(csv, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("config: invalid concurrency value %q: %w", p, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("config: concurrency value %d must be positive", n)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("config: --concurrency produced no values")
	}
	return out, nil
}

// Validate checks cross-field constraints flag parsing alone cannot
// express.
func (c Config) Validate() error {
	if c.SuccessRate <= 0 || c.SuccessRate > 1 {
		return fmt.Errorf("config: --success-rate must be in (0, 1], got %v", c.SuccessRate)
	}
	if c.P99ThresholdMS <= 0 {
		return fmt.Errorf("config: --p99-threshold must be positive, got %d", c.P99ThresholdMS)
	}
	if c.ChannelPoolSize <= 0 {
		return fmt.Errorf("config: --channel-pool-size must be positive, got %d", c.ChannelPoolSize)
	}
	if c.Mode == ModeManual && len(c.ManualConcurrency) == 0 {
		return fmt.Errorf("config: manual mode requires --concurrency")
	}
	return nil
}
