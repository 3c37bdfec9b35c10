// Package testkit provides fixtures and fake adapters for tests: synthetic
// checkpoint directories and a scripted trainer.
package testkit

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"augbench/internal/errors"
	"augbench/ports"
)

// Checkpoint is the fixture shape mirroring a real training artifact.
type Checkpoint struct {
	Epoch *int                   `json:"epoch,omitempty"`
	Log   map[string]interface{} `json:"log,omitempty"`
}

// WriteCheckpoint writes a well-formed checkpoint artifact into dir.
func WriteCheckpoint(t *testing.T, dir, name string, epoch *int, top1 float64) string {
	t.Helper()
	ckpt := Checkpoint{
		Epoch: epoch,
		Log: map[string]interface{}{
			"test": map[string]interface{}{"top1": top1},
		},
	}
	raw, err := json.Marshal(ckpt)
	if err != nil {
		t.Fatalf("marshaling fixture checkpoint: %v", err)
	}
	return WriteRawArtifact(t, dir, name, string(raw))
}

// WriteRawArtifact writes arbitrary artifact content, for malformed-input
// scenarios.
func WriteRawArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture artifact %s: %v", name, err)
	}
	return path
}

// IntPtr returns a pointer to i, for optional epoch fields.
func IntPtr(i int) *int {
	return &i
}

// StubTrainer implements ports.TrainerPort with scripted per-run outcomes.
// It records every request so tests can assert the naming scheme and
// sequential ordering.
type StubTrainer struct {
	// FailOn holds 1-based run indices that exit non-zero.
	FailOn map[int]bool
	// ExitCode reported for failing runs; defaults to 1.
	ExitCode int
	// Requests accumulates every Train call in order.
	Requests []ports.TrainRequest

	calls int
}

// Train completes instantly, failing when the call index is scripted to.
func (s *StubTrainer) Train(_ context.Context, req ports.TrainRequest) (ports.TrainResult, error) {
	s.calls++
	s.Requests = append(s.Requests, req)

	result := ports.TrainResult{Tag: req.Tag, Elapsed: time.Millisecond}
	if s.FailOn[s.calls] {
		code := s.ExitCode
		if code == 0 {
			code = 1
		}
		result.ExitCode = code
		return result, errors.ExternalRunFailure(req.Tag, code, fmt.Errorf("scripted failure"))
	}
	return result, nil
}

// Calls returns how many runs were attempted.
func (s *StubTrainer) Calls() int {
	return s.calls
}
