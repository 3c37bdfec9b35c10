package run

import "fmt"

// RunRecord is one checkpoint's extracted data. Created by the loader
// adapter and read-only afterwards.
type RunRecord struct {
	// Checkpoint is the artifact filename without directory components.
	Checkpoint string `json:"checkpoint"`
	// Epoch is the training epoch stored in the checkpoint, nil when the
	// artifact carries none.
	Epoch *int `json:"epoch,omitempty"`
	// Accuracy is the top-1 test accuracy as a fraction in [0,1].
	Accuracy float64 `json:"accuracy"`
}

// TestError returns the derived error fraction, 1 - accuracy.
func (r RunRecord) TestError() float64 {
	return 1 - r.Accuracy
}

// AccuracyPercent returns the accuracy scaled to a percentage.
func (r RunRecord) AccuracyPercent() float64 {
	return r.Accuracy * 100
}

// ErrorPercent returns the error fraction scaled to a percentage.
func (r RunRecord) ErrorPercent() float64 {
	return r.TestError() * 100
}

// EpochLabel renders the epoch for display, "N/A" when absent.
func (r RunRecord) EpochLabel() string {
	if r.Epoch == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *r.Epoch)
}

// MethodSample is the ordered sequence of accuracy percentages collected for
// one method label during a single directory scan.
type MethodSample []float64

// AggregationResult maps each method label to its collected sample for one
// model/directory. Immutable once the scan completes.
type AggregationResult struct {
	// Model is the display name of the model variant the directory holds.
	Model string
	// samples is keyed by method label; labels with no runs are absent.
	samples map[string]MethodSample
}

// NewAggregationResult creates an empty result for the named model.
func NewAggregationResult(model string) *AggregationResult {
	return &AggregationResult{
		Model:   model,
		samples: make(map[string]MethodSample),
	}
}

// Append adds one accuracy percentage to the label's sample.
func (a *AggregationResult) Append(label string, accuracyPct float64) {
	a.samples[label] = append(a.samples[label], accuracyPct)
}

// Sample returns the collected sample for a label; empty when the label has
// no runs.
func (a *AggregationResult) Sample(label string) MethodSample {
	return a.samples[label]
}

// HasSamples reports whether the label collected at least one run.
func (a *AggregationResult) HasSamples(label string) bool {
	return len(a.samples[label]) > 0
}

// ConfidenceInterval is the half-width of a 95% interval around a sample
// mean. Defined is false when the sample is too small for a variance
// estimate (n = 1), which is distinct from a numeric zero-width interval.
type ConfidenceInterval struct {
	HalfWidth float64
	Defined   bool
}

// SummaryStatistic is the per-method aggregate for one model: sample size,
// mean accuracy percentage and its 95% CI. Only produced for n >= 1;
// zero-sample methods are rendered as not applicable instead.
type SummaryStatistic struct {
	Method string
	N      int
	Mean   float64
	CI     ConfidenceInterval
}

// Result renders the conventional "mean ± CI" string used when comparing
// against published numbers.
func (s SummaryStatistic) Result() string {
	if !s.CI.Defined {
		return fmt.Sprintf("%.2f ± n/a", s.Mean)
	}
	return fmt.Sprintf("%.2f ± %.2f", s.Mean, s.CI.HalfWidth)
}
