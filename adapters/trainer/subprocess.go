// Package trainer invokes the external training program as a subprocess.
// The trainer itself (model, dataset, checkpoint format) is an external
// collaborator; this adapter only builds the command line and reports the
// exit status.
package trainer

import (
	"context"
	"os"
	"os/exec"
	"time"

	"augbench/internal"
	"augbench/internal/errors"
	"augbench/ports"
)

// Command holds the fixed part of the training command line.
type Command struct {
	// Python is the interpreter binary, e.g. "python3".
	Python string
	// Module is the trainer entrypoint run via -m, e.g. "TrivialAugment.train".
	Module string
}

// SubprocessTrainer implements ports.TrainerPort via os/exec.
type SubprocessTrainer struct {
	cmd    Command
	logger *internal.Logger
}

var _ ports.TrainerPort = (*SubprocessTrainer)(nil)

// NewSubprocessTrainer creates a trainer adapter for the given command.
func NewSubprocessTrainer(cmd Command, logger *internal.Logger) *SubprocessTrainer {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SubprocessTrainer{cmd: cmd, logger: logger.WithComponent("trainer")}
}

// Args builds the argument list for one run. Exposed for tests; the command
// shape is part of the external interface contract.
func (t *SubprocessTrainer) Args(req ports.TrainRequest) []string {
	return []string{
		"-m", t.cmd.Module,
		"-c", req.ConfigPath,
		"--dataroot", req.DataRoot,
		"--tag", req.Tag,
		"--save", req.CheckpointPath,
	}
}

// Train runs one training subprocess to completion. Trainer output is passed
// through to the console. A non-zero exit returns an EXTERNAL_RUN_FAILURE
// error alongside the result; elapsed time and exit code are reported in
// both cases.
func (t *SubprocessTrainer) Train(ctx context.Context, req ports.TrainRequest) (ports.TrainResult, error) {
	cmd := exec.CommandContext(ctx, t.cmd.Python, t.Args(req)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	t.logger.Info("starting run %s (config=%s)", req.Tag, req.ConfigPath)
	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := ports.TrainResult{Tag: req.Tag, Elapsed: elapsed}
	if err != nil {
		result.ExitCode = -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, errors.ExternalRunFailure(req.Tag, result.ExitCode, err)
	}

	t.logger.Info("run %s completed in %s (checkpoint=%s)", req.Tag, elapsed.Round(time.Second), req.CheckpointPath)
	return result, nil
}
