// Package app wires the domain rules, ports and renderer into the services
// the CLI drives: directory aggregation, cross-model comparison and the
// repeated-run batch orchestrator.
package app

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"augbench/domain/run"
	"augbench/internal"
	"augbench/internal/analysis"
	"augbench/internal/errors"
	"augbench/internal/report"
	"augbench/ports"
)

// LoadFailure records one artifact that could not be loaded. Failures are
// reported alongside results; they never abort the scan.
type LoadFailure struct {
	Path string
	Err  error
}

// DirectoryReport is everything one directory scan produced. Result is nil
// when no artifact loaded successfully, which is a terminal but
// non-exceptional state for the directory.
type DirectoryReport struct {
	Result   *run.AggregationResult
	Records  []run.RunRecord
	Failures []LoadFailure
}

// AggregationService scans a checkpoint directory, classifies every artifact
// by method prefix and produces per-run and per-method reports.
type AggregationService struct {
	loader   ports.CheckpointLoaderPort
	registry run.MethodRegistry
	renderer *report.Renderer
	logger   *internal.Logger
}

// NewAggregationService creates the directory pipeline. Reports are written
// to out.
func NewAggregationService(loader ports.CheckpointLoaderPort, registry run.MethodRegistry, out io.Writer, logger *internal.Logger) *AggregationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AggregationService{
		loader:   loader,
		registry: registry,
		renderer: report.NewRenderer(out),
		logger:   logger.WithComponent("aggregate"),
	}
}

// ProcessDirectory aggregates every artifact in dir (non-recursive, filtered
// by the loader's extension) for the named model.
//
// Per artifact: load, classify, collect the accuracy percentage under the
// matched method, and record the run for the per-run table whether or not it
// classified. Artifacts that fail to load are logged with their cause,
// returned in the failure list and skipped.
//
// When nothing loads the "no checkpoints" notice is rendered and the report
// carries a nil Result. Otherwise the per-run table (sorted by checkpoint
// name), the per-method aggregate table (every registry method, zero-sample
// ones as N/A) and, when supplied, the verbatim paper-reference block are
// rendered, and the collected samples are returned for downstream
// comparison.
func (s *AggregationService) ProcessDirectory(dir, model string, paperResults map[string]string) (*DirectoryReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading checkpoint directory %s", dir)
	}

	result := run.NewAggregationResult(model)
	rep := &DirectoryReport{}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.loader.Extension()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		record, err := s.loader.Load(path)
		if err != nil {
			s.logger.Warn("Error loading %s: %v", path, err)
			rep.Failures = append(rep.Failures, LoadFailure{Path: path, Err: err})
			continue
		}

		if label, ok := s.registry.Classify(record.Checkpoint); ok {
			result.Append(label, record.AccuracyPercent())
		}
		rep.Records = append(rep.Records, record)
	}

	if len(rep.Records) == 0 {
		s.renderer.NoCheckpoints(dir)
		return rep, nil
	}

	sort.Slice(rep.Records, func(i, j int) bool {
		return rep.Records[i].Checkpoint < rep.Records[j].Checkpoint
	})
	s.renderer.RunTable(model, rep.Records)

	rows, err := BuildSummaryRows(s.registry, result)
	if err != nil {
		return nil, err
	}
	s.renderer.SummaryTable(model, rows)

	if paperResults != nil {
		s.renderer.ReferenceBlock(model, s.registry.Labels(), paperResults)
	}

	rep.Result = result
	return rep, nil
}

// BuildSummaryRows builds one aggregate row per registry method, in registry
// order, with nil stats for zero-sample methods. Shared by the console
// renderer and the workbook export.
func BuildSummaryRows(registry run.MethodRegistry, result *run.AggregationResult) ([]report.SummaryRow, error) {
	rows := make([]report.SummaryRow, 0, registry.Len())
	for _, label := range registry.Labels() {
		if !result.HasSamples(label) {
			rows = append(rows, report.SummaryRow{Method: label})
			continue
		}
		stat, err := analysis.Summarize(label, result.Sample(label))
		if err != nil {
			return nil, errors.Wrapf(err, "summarizing method %s", label)
		}
		rows = append(rows, report.SummaryRow{Method: label, Stat: &stat})
	}
	return rows, nil
}
