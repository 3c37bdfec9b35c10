package ports

import (
	"augbench/domain/run"
)

// CheckpointLoaderPort loads one serialized training checkpoint and extracts
// its result record. A failure concerns only that artifact; callers are
// expected to report it and continue with the rest of the batch.
type CheckpointLoaderPort interface {
	// Load reads the artifact at path and extracts the nested
	// log.test.top1 accuracy plus the optional epoch marker.
	Load(path string) (run.RunRecord, error)

	// Extension returns the artifact filename extension this loader
	// handles, including the leading dot.
	Extension() string
}
