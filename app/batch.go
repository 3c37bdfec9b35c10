package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"augbench/internal"
	"augbench/internal/errors"
	"augbench/ports"

	"github.com/google/uuid"
)

// BatchConfig describes one batch of repeated training runs with identical
// configuration (the trainer varies the seed per run).
type BatchConfig struct {
	// ConfigPath is handed to the trainer verbatim.
	ConfigPath string
	// ExperimentName is the display name for the batch header.
	ExperimentName string
	// DataRoot is the dataset root passed to each run.
	DataRoot string
	// OutputDir receives the checkpoint artifacts; created if missing.
	OutputDir string
	// Prefix and ModelTag form the run naming scheme
	// "<prefix>_<modelTag>_<runIndex>"; the prefix doubles as the
	// classification key during later aggregation.
	Prefix   string
	ModelTag string
	// Extension is appended to the checkpoint filename, e.g. ".json".
	Extension string
	// Runs is the number of sequential invocations.
	Runs int
	// ContinueOnFailure decides whether remaining runs execute after a
	// failed one. Injected up front so the control flow needs no
	// interactive prompt.
	ContinueOnFailure bool
}

// RunStatus is the outcome of one run in the batch.
type RunStatus struct {
	Index    int
	Tag      string
	Success  bool
	Elapsed  time.Duration
	ExitCode int
}

// BatchSummary reports the whole batch.
type BatchSummary struct {
	SessionID string
	Results   []RunStatus
	Succeeded int
	Elapsed   time.Duration
	// Stopped is true when a failure ended the batch before all runs.
	Stopped bool
}

// BatchService executes repeated training runs strictly sequentially: one
// run finishes (or fails) before the next begins.
type BatchService struct {
	trainer ports.TrainerPort
	out     io.Writer
	logger  *internal.Logger
}

// NewBatchService creates the batch orchestrator writing progress to out.
func NewBatchService(trainer ports.TrainerPort, out io.Writer, logger *internal.Logger) *BatchService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &BatchService{trainer: trainer, out: out, logger: logger.WithComponent("batch")}
}

// Run executes the batch. Individual run failures are recorded, reported
// with elapsed time and exit code, and either stop the batch or not per the
// configured policy; they are not returned as errors. The returned error is
// reserved for setup problems and context cancellation.
func (s *BatchService) Run(ctx context.Context, cfg BatchConfig) (BatchSummary, error) {
	if cfg.Runs < 1 {
		return BatchSummary{}, errors.InvalidInput("batch needs at least one run")
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return BatchSummary{}, errors.Wrapf(err, "creating output directory %s", cfg.OutputDir)
	}

	summary := BatchSummary{SessionID: uuid.NewString()}
	s.header(cfg, summary.SessionID)
	batchStart := time.Now()

	for i := 1; i <= cfg.Runs; i++ {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(batchStart)
			summary.Stopped = true
			return summary, errors.Wrap(err, "batch interrupted")
		}

		tag := fmt.Sprintf("%s_%s_%d", cfg.Prefix, cfg.ModelTag, i)
		req := ports.TrainRequest{
			ConfigPath:     cfg.ConfigPath,
			DataRoot:       cfg.DataRoot,
			Tag:            tag,
			CheckpointPath: filepath.Join(cfg.OutputDir, tag+cfg.Extension),
		}

		fmt.Fprintf(s.out, "\n%s\n[%d/%d] Running: %s - Run #%d\nConfig: %s\n%s\n",
			strings.Repeat("=", 70), i, cfg.Runs, cfg.ExperimentName, i, cfg.ConfigPath, strings.Repeat("=", 70))

		result, err := s.trainer.Train(ctx, req)
		status := RunStatus{Index: i, Tag: tag, Elapsed: result.Elapsed, ExitCode: result.ExitCode}
		if err != nil {
			s.logger.Error("run %s failed: %v", tag, err)
			fmt.Fprintf(s.out, "\nRun %d/%d FAILED (exit code %d, time before failure %s)\n",
				i, cfg.Runs, result.ExitCode, result.Elapsed.Round(time.Second))
			summary.Results = append(summary.Results, status)
			if !cfg.ContinueOnFailure {
				summary.Stopped = true
				break
			}
			continue
		}

		status.Success = true
		summary.Succeeded++
		summary.Results = append(summary.Results, status)
		fmt.Fprintf(s.out, "\nRun %d/%d completed successfully (%s)\nCheckpoint: %s\n",
			i, cfg.Runs, result.Elapsed.Round(time.Second), req.CheckpointPath)
	}

	summary.Elapsed = time.Since(batchStart)
	s.footer(cfg, summary)
	return summary, nil
}

func (s *BatchService) header(cfg BatchConfig, sessionID string) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintf(s.out, "%s\nRepeated Experiment Runner\n%s\n", rule, rule)
	fmt.Fprintf(s.out, "Session: %s\nExperiment: %s\nTotal runs: %d\nConfig: %s\nStarted at: %s\n%s\n",
		sessionID, cfg.ExperimentName, cfg.Runs, cfg.ConfigPath,
		time.Now().Format("2006-01-02 15:04:05"), rule)
}

func (s *BatchService) footer(cfg BatchConfig, summary BatchSummary) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintf(s.out, "\n%s\nBATCH RUN SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(s.out, "Total time: %s\n\nResults:\n", summary.Elapsed.Round(time.Second))
	for _, r := range summary.Results {
		status := "FAILED "
		if r.Success {
			status = "SUCCESS"
		}
		fmt.Fprintf(s.out, "  %s: Run #%d (%s)\n", status, r.Index, r.Tag)
	}
	fmt.Fprintf(s.out, "\nCompleted: %d/%d runs\n%s\n", summary.Succeeded, len(summary.Results), rule)
	if summary.Stopped {
		fmt.Fprintln(s.out, "Batch stopped before all runs completed.")
	}
}
