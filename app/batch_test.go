package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"augbench/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchConfig(t *testing.T, runs int, keepGoing bool) BatchConfig {
	return BatchConfig{
		ConfigPath:        "confs/wrn40x2_ua.yaml",
		ExperimentName:    "WRN-40-2 UA (ua)",
		DataRoot:          "data",
		OutputDir:         t.TempDir(),
		Prefix:            "expUAua",
		ModelTag:          "wrn40x2",
		Extension:         ".json",
		Runs:              runs,
		ContinueOnFailure: keepGoing,
	}
}

func TestBatch_SequentialNamingScheme(t *testing.T) {
	stub := &testkit.StubTrainer{}
	var out bytes.Buffer
	cfg := batchConfig(t, 3, false)

	summary, err := NewBatchService(stub, &out, nil).Run(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 3, stub.Calls())
	assert.Equal(t, 3, summary.Succeeded)
	assert.NotEmpty(t, summary.SessionID)
	assert.False(t, summary.Stopped)

	require.Len(t, stub.Requests, 3)
	for i, req := range stub.Requests {
		tag := []string{"expUAua_wrn40x2_1", "expUAua_wrn40x2_2", "expUAua_wrn40x2_3"}[i]
		assert.Equal(t, tag, req.Tag)
		assert.Equal(t, filepath.Join(cfg.OutputDir, tag+".json"), req.CheckpointPath)
		assert.Equal(t, cfg.ConfigPath, req.ConfigPath)
		assert.Equal(t, "data", req.DataRoot)
	}

	output := out.String()
	assert.Contains(t, output, "BATCH RUN SUMMARY")
	assert.Contains(t, output, "Completed: 3/3 runs")
}

func TestBatch_StopOnFailureByDefault(t *testing.T) {
	stub := &testkit.StubTrainer{FailOn: map[int]bool{2: true}, ExitCode: 7}
	var out bytes.Buffer

	summary, err := NewBatchService(stub, &out, nil).Run(context.Background(), batchConfig(t, 5, false))
	require.NoError(t, err)

	// Run 3 onward never executes.
	assert.Equal(t, 2, stub.Calls())
	assert.Equal(t, 1, summary.Succeeded)
	assert.True(t, summary.Stopped)
	require.Len(t, summary.Results, 2)
	assert.False(t, summary.Results[1].Success)
	assert.Equal(t, 7, summary.Results[1].ExitCode)
	assert.Contains(t, out.String(), "FAILED (exit code 7")
}

func TestBatch_ContinueOnFailurePolicy(t *testing.T) {
	stub := &testkit.StubTrainer{FailOn: map[int]bool{1: true, 3: true}}
	var out bytes.Buffer

	summary, err := NewBatchService(stub, &out, nil).Run(context.Background(), batchConfig(t, 4, true))
	require.NoError(t, err)

	assert.Equal(t, 4, stub.Calls())
	assert.Equal(t, 2, summary.Succeeded)
	assert.False(t, summary.Stopped)
	assert.Len(t, summary.Results, 4)
	assert.Contains(t, out.String(), "Completed: 2/4 runs")
}

func TestBatch_RejectsZeroRuns(t *testing.T) {
	stub := &testkit.StubTrainer{}
	var out bytes.Buffer

	cfg := batchConfig(t, 0, false)
	_, err := NewBatchService(stub, &out, nil).Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, 0, stub.Calls())
}

func TestBatch_CancelledContextStops(t *testing.T) {
	stub := &testkit.StubTrainer{}
	var out bytes.Buffer

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := NewBatchService(stub, &out, nil).Run(ctx, batchConfig(t, 3, false))
	require.Error(t, err)
	assert.True(t, summary.Stopped)
	assert.Equal(t, 0, stub.Calls())
}
