package trainer

import (
	"context"
	"testing"

	"augbench/internal/errors"
	"augbench/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgs_CommandShape(t *testing.T) {
	sub := NewSubprocessTrainer(Command{Python: "python3", Module: "TrivialAugment.train"}, nil)

	args := sub.Args(ports.TrainRequest{
		ConfigPath:     "confs/wrn40x2_ua.yaml",
		DataRoot:       "data",
		Tag:            "expUAua_wrn40x2_1",
		CheckpointPath: "wrn_40x2/expUAua_wrn40x2_1.json",
	})

	assert.Equal(t, []string{
		"-m", "TrivialAugment.train",
		"-c", "confs/wrn40x2_ua.yaml",
		"--dataroot", "data",
		"--tag", "expUAua_wrn40x2_1",
		"--save", "wrn_40x2/expUAua_wrn40x2_1.json",
	}, args)
}

func TestTrain_NonZeroExitReported(t *testing.T) {
	// "false" exits 1 regardless of arguments, standing in for a failing
	// trainer without a real training stack.
	sub := NewSubprocessTrainer(Command{Python: "false", Module: "ignored"}, nil)

	result, err := sub.Train(context.Background(), ports.TrainRequest{Tag: "expFAA_test_1"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalRunFailure, errors.GetCode(err))
	assert.Equal(t, 1, result.ExitCode)
	assert.Equal(t, "expFAA_test_1", result.Tag)
}

func TestTrain_SuccessfulExit(t *testing.T) {
	sub := NewSubprocessTrainer(Command{Python: "true", Module: "ignored"}, nil)

	result, err := sub.Train(context.Background(), ports.TrainRequest{Tag: "expFAA_test_1"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
}
