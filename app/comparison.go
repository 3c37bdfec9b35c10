package app

import (
	"io"

	"augbench/domain/run"
	"augbench/internal"
	"augbench/internal/analysis"
	"augbench/internal/errors"
	"augbench/internal/report"
)

// ComparisonService computes per-method mean differences between two
// completed aggregation results (e.g. two model variants).
type ComparisonService struct {
	registry run.MethodRegistry
	renderer *report.Renderer
	logger   *internal.Logger
}

// NewComparisonService creates the comparator writing its table to out.
func NewComparisonService(registry run.MethodRegistry, out io.Writer, logger *internal.Logger) *ComparisonService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ComparisonService{
		registry: registry,
		renderer: report.NewRenderer(out),
		logger:   logger.WithComponent("compare"),
	}
}

// Compare renders the comparison table and returns its rows. Both inputs
// must be non-nil aggregation results; the comparator performs no
// aggregation of its own.
//
// A method appears only when both sides collected at least one sample;
// one-sided methods are dropped from the table entirely rather than shown
// as N/A. The difference is first minus second, rendered with an explicit
// sign.
func (s *ComparisonService) Compare(a, b *run.AggregationResult) ([]report.ComparisonRow, error) {
	if a == nil || b == nil {
		return nil, errors.InvalidInput("comparison requires two non-empty aggregation results")
	}

	var rows []report.ComparisonRow
	for _, label := range s.registry.Labels() {
		if !a.HasSamples(label) || !b.HasSamples(label) {
			s.logger.Debug("skipping %s: samples missing on one side", label)
			continue
		}

		statA, err := analysis.Summarize(label, a.Sample(label))
		if err != nil {
			return nil, errors.Wrapf(err, "summarizing %s for %s", label, a.Model)
		}
		statB, err := analysis.Summarize(label, b.Sample(label))
		if err != nil {
			return nil, errors.Wrapf(err, "summarizing %s for %s", label, b.Model)
		}

		rows = append(rows, report.ComparisonRow{
			Method: label,
			A:      statA,
			B:      statB,
			Diff:   statA.Mean - statB.Mean,
		})
	}

	s.renderer.ComparisonTable(a.Model, b.Model, rows)
	return rows, nil
}
