// Package slo implements the SLO Evaluator: a pure, deterministic
// two-predicate check (success-rate floor, P99 ceiling) against a
// model.ConcurrencyTestResult.
package slo

import (
	"fmt"

	"github.com/deanroom/grpc-demo/internal/model"
)

// Evaluate applies slo to result, returning a Verdict. Pass requires both
// the success rate to meet the floor and P99 to meet the ceiling; on
// failure the Violations slice enumerates every failed predicate with its
// observed and threshold values. Evaluate has no side effects and does not
// mutate result.
func Evaluate(result model.ConcurrencyTestResult, s model.SLO) model.Verdict {
	var violations []string

	if result.SuccessRate < s.SuccessRateFloor {
		violations = append(violations, fmt.Sprintf(
			"success_rate %.4f below floor %.4f", result.SuccessRate, s.SuccessRateFloor))
	}
	if result.LatencyDistribution.P99 > s.P99Ceiling {
		violations = append(violations, fmt.Sprintf(
			"p99 %s exceeds ceiling %s", result.LatencyDistribution.P99, s.P99Ceiling))
	}

	return model.Verdict{
		Pass:       len(violations) == 0,
		Violations: violations,
	}
}
