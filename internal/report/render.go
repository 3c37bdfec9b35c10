// Package report renders aggregation output as fixed-width console tables.
// Purely presentational: every number is computed upstream.
package report

import (
	"fmt"
	"io"
	"strings"

	"augbench/domain/run"
)

const ruleWidth = 80

// SummaryRow is one aggregate table line. Stat is nil for methods with zero
// samples, rendered as N/A rather than omitted.
type SummaryRow struct {
	Method string
	Stat   *run.SummaryStatistic
}

// ComparisonRow is one cross-model table line. Rows only exist for methods
// sampled on both sides.
type ComparisonRow struct {
	Method string
	A, B   run.SummaryStatistic
	// Diff is A.Mean - B.Mean, rendered with an explicit sign.
	Diff float64
}

// Renderer writes report sections to a single destination.
type Renderer struct {
	w io.Writer
}

// NewRenderer creates a renderer writing to w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

func (r *Renderer) rule(ch string) {
	fmt.Fprintln(r.w, strings.Repeat(ch, ruleWidth))
}

func (r *Renderer) section(title string) {
	fmt.Fprintln(r.w)
	r.rule("=")
	fmt.Fprintln(r.w, title)
	r.rule("=")
}

// Banner prints the heavy header introducing one model's report block.
func (r *Renderer) Banner(title string) {
	fmt.Fprintln(r.w)
	r.rule("#")
	pad := ruleWidth - 2 - len(title)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(r.w, "#%s%s%s#\n", strings.Repeat(" ", pad/2), title, strings.Repeat(" ", pad-pad/2))
	r.rule("#")
}

// NoCheckpoints reports the terminal empty-directory condition.
func (r *Renderer) NoCheckpoints(dir string) {
	fmt.Fprintf(r.w, "No checkpoints found in %s!\n", dir)
}

// RunTable prints the per-run table, one line per loaded checkpoint, in the
// order given (callers sort by checkpoint name).
func (r *Renderer) RunTable(model string, records []run.RunRecord) {
	r.section(fmt.Sprintf("INDIVIDUAL RESULTS - %s", model))
	fmt.Fprintf(r.w, "%-40s %8s %19s %16s\n", "Checkpoint", "Epoch", "Test Accuracy (%)", "Test Error (%)")
	for _, rec := range records {
		fmt.Fprintf(r.w, "%-40s %8s %19.2f %16.2f\n",
			rec.Checkpoint, rec.EpochLabel(), rec.AccuracyPercent(), rec.ErrorPercent())
	}
}

// SummaryTable prints the per-method aggregate table. Every registry method
// gets a row; zero-sample methods show N/A across the board, single-sample
// methods show their mean with an n/a interval.
func (r *Renderer) SummaryTable(model string, rows []SummaryRow) {
	r.section(fmt.Sprintf("AGGREGATED RESULTS - %s (Mean ± 95%% CI)", model))
	fmt.Fprintf(r.w, "%-15s %5s %15s %12s %20s\n", "Method", "n", "Mean Acc (%)", "95% CI", "Result")
	r.rule("-")
	for _, row := range rows {
		if row.Stat == nil {
			fmt.Fprintf(r.w, "%-15s %5s %15s %12s %20s\n", row.Method, "N/A", "N/A", "N/A", "N/A")
			continue
		}
		s := row.Stat
		fmt.Fprintf(r.w, "%-15s %5d %15.2f %12s %20s\n", row.Method, s.N, s.Mean, ciCell(s.CI), s.Result())
	}
}

// ReferenceBlock prints externally published results verbatim for visual
// comparison; no equality checking is performed.
func (r *Renderer) ReferenceBlock(model string, methods []string, results map[string]string) {
	r.section(fmt.Sprintf("Expected Results from Paper (%s):", model))
	for _, method := range methods {
		if result, ok := results[method]; ok {
			fmt.Fprintf(r.w, "  %-15s %s\n", method+":", result)
		}
	}
	r.rule("=")
}

// ComparisonTable prints the two-model comparison. Methods without samples
// on both sides have no row.
func (r *Renderer) ComparisonTable(modelA, modelB string, rows []ComparisonRow) {
	r.Banner(fmt.Sprintf("COMPARISON: %s vs %s", modelA, modelB))
	fmt.Fprintf(r.w, "\n%-15s %20s %20s %15s\n", "Method", modelA, modelB, "Difference")
	r.rule("-")
	for _, row := range rows {
		fmt.Fprintf(r.w, "%-15s %20s %20s %+15.2f\n", row.Method, row.A.Result(), row.B.Result(), row.Diff)
	}
	r.rule("=")
}

// ciCell renders a 95% CI table cell, "± 0.06" style, "n/a" when undefined.
func ciCell(ci run.ConfidenceInterval) string {
	if !ci.Defined {
		return "n/a"
	}
	return fmt.Sprintf("± %.2f", ci.HalfWidth)
}
