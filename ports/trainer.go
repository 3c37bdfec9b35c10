package ports

import (
	"context"
	"time"
)

// TrainRequest describes one training subprocess invocation.
type TrainRequest struct {
	// ConfigPath is the training configuration passed through verbatim;
	// the orchestrator never parses it.
	ConfigPath string
	// DataRoot is the dataset root directory for the trainer.
	DataRoot string
	// Tag identifies the run, e.g. "expUAua_wrn40x2_3".
	Tag string
	// CheckpointPath is where the trainer writes the result artifact.
	CheckpointPath string
}

// TrainResult reports one completed (or failed) training invocation.
type TrainResult struct {
	Tag      string
	Elapsed  time.Duration
	ExitCode int
}

// TrainerPort executes a single training run to completion. Runs are
// strictly sequential; the orchestrator never issues overlapping calls.
type TrainerPort interface {
	Train(ctx context.Context, req TrainRequest) (TrainResult, error)
}
