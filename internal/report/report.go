// Package report renders a model.ProbeResult or a slice of
// model.ConcurrencyTestResult as aligned columnar text, mirroring the
// Writer-injection shape used by the teacher's load-test reporter (an
// io.Writer field defaulting to os.Stdout when unset).
package report

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/deanroom/grpc-demo/internal/model"
)

// Renderer writes reports to Writer, defaulting to os.Stdout.
type Renderer struct {
	// Writer is where reports are written. If nil, reports go to
	// os.Stdout.
	Writer io.Writer
}

func (r *Renderer) writer() io.Writer {
	if r.Writer == nil {
		return os.Stdout
	}
	return r.Writer
}

// Levels renders a flat list of Concurrency Test Results — the manual-mode
// report shape — as an aligned table.
func (r *Renderer) Levels(levels []model.ConcurrencyTestResult) {
	w := tabwriter.NewWriter(r.writer(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "CONCURRENCY\tREQUESTS\tSUCCESS%\tTHROUGHPUT\tP50\tP99\tPEAK_QUEUE\tMAX_WAIT\tVERDICT")
	for _, lvl := range levels {
		fmt.Fprintf(w, "%d\t%d\t%.2f%%\t%.1f/s\t%s\t%s\t%d\t%s\t%s\n",
			lvl.Concurrency,
			lvl.TotalRequests,
			lvl.SuccessRate*100,
			lvl.Throughput,
			lvl.LatencyDistribution.P50,
			lvl.LatencyDistribution.P99,
			lvl.PeakQueueDepth,
			lvl.MaxQueueWait,
			verdictLabel(lvl),
		)
	}
	_ = w.Flush()
}

// Probe renders a full Probe Result: every level tried, then the derived
// summary (max/effective concurrency, saturated throughput, recommended
// ceiling), explaining a degenerate result via Diagnostics rather than
// printing a bare zero.
func (r *Renderer) Probe(res model.ProbeResult) {
	out := r.writer()
	r.Levels(res.Levels)

	fmt.Fprintln(out)
	switch {
	case res.Diagnostics.FirstLevelFailed:
		fmt.Fprintln(out, "result: SLO failed at the first concurrency level tried; no viable ceiling found.")
		return
	case res.Diagnostics.Cancelled:
		fmt.Fprintln(out, "result: probe cancelled before completion; reporting partial levels above.")
	}

	fmt.Fprintf(out, "max_concurrency:       %d", res.MaxConcurrency)
	if res.Diagnostics.StabilityDegraded {
		fmt.Fprint(out, "  (reduced 10% after stability-verification failure)")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "effective_concurrency: %d\n", res.EffectiveConcurrency)
	fmt.Fprintf(out, "saturated_throughput:  %.1f/s\n", res.SaturatedThroughput)
	fmt.Fprintf(out, "recommended_ceiling:   %d\n", res.RecommendedCeiling)
}

func verdictLabel(lvl model.ConcurrencyTestResult) string {
	if lvl.Verdict.Pass {
		return "PASS"
	}
	if len(lvl.Verdict.Violations) == 0 {
		return "FAIL"
	}
	return "FAIL: " + lvl.Verdict.Violations[0]
}
