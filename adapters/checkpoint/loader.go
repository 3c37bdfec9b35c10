// Package checkpoint reads serialized training checkpoints. A checkpoint is
// a JSON document carrying the training log; the loader only extracts the
// test-phase top-1 accuracy and the optional epoch marker.
package checkpoint

import (
	"encoding/json"
	"os"

	"augbench/domain/run"
	"augbench/internal"
	"augbench/internal/errors"
	"augbench/ports"
)

// DefaultExtension is the artifact extension scanned when none is configured.
const DefaultExtension = ".json"

// checkpointFile mirrors the nested artifact structure. Pointer fields
// distinguish an absent field from a zero value.
type checkpointFile struct {
	Epoch *int `json:"epoch"`
	Log   *struct {
		Test *struct {
			Top1 *float64 `json:"top1"`
		} `json:"test"`
	} `json:"log"`
}

// Loader implements ports.CheckpointLoaderPort for JSON artifacts.
type Loader struct {
	extension string
	logger    *internal.Logger
}

var _ ports.CheckpointLoaderPort = (*Loader)(nil)

// NewLoader creates a loader for artifacts with the given extension;
// an empty extension selects DefaultExtension.
func NewLoader(extension string, logger *internal.Logger) *Loader {
	if extension == "" {
		extension = DefaultExtension
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Loader{extension: extension, logger: logger.WithComponent("loader")}
}

// Extension returns the artifact extension this loader scans for.
func (l *Loader) Extension() string {
	return l.extension
}

// Load reads one artifact and extracts its result record. Errors carry
// ARTIFACT_UNREADABLE (open/decode failure) or ARTIFACT_MALFORMED (one of
// log, log.test, log.test.top1 missing); either way the caller skips the
// artifact and continues.
func (l *Loader) Load(path string) (run.RunRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return run.RunRecord{}, errors.ArtifactUnreadable(path, err)
	}

	var ckpt checkpointFile
	if err := json.Unmarshal(raw, &ckpt); err != nil {
		return run.RunRecord{}, errors.ArtifactUnreadable(path, err)
	}

	switch {
	case ckpt.Log == nil:
		return run.RunRecord{}, errors.ArtifactMalformed(path, "log")
	case ckpt.Log.Test == nil:
		return run.RunRecord{}, errors.ArtifactMalformed(path, "log.test")
	case ckpt.Log.Test.Top1 == nil:
		return run.RunRecord{}, errors.ArtifactMalformed(path, "log.test.top1")
	}

	record := run.RunRecord{
		Checkpoint: run.BaseName(path),
		Epoch:      ckpt.Epoch,
		Accuracy:   *ckpt.Log.Test.Top1,
	}
	l.logger.Debug("loaded %s: accuracy=%.4f epoch=%s", record.Checkpoint, record.Accuracy, record.EpochLabel())
	return record, nil
}
