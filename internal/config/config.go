package config

import (
	"os"
	"strings"

	"augbench/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Checkpoint CheckpointConfig
	Trainer    TrainerConfig
}

// CheckpointConfig holds artifact scanning settings
type CheckpointConfig struct {
	// Extension filters the directory scan, leading dot included.
	Extension string
}

// TrainerConfig holds the external training command settings
type TrainerConfig struct {
	// Python is the interpreter used to launch the trainer.
	Python string
	// Module is the trainer entrypoint run via -m.
	Module string
	// DataRoot is the dataset root passed to every run.
	DataRoot string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Checkpoint: loadCheckpointConfig(),
		Trainer:    loadTrainerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadCheckpointConfig() CheckpointConfig {
	return CheckpointConfig{
		Extension: getEnvOrDefault("CHECKPOINT_EXT", ".json"),
	}
}

func loadTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Python:   getEnvOrDefault("TRAINER_PYTHON", "python3"),
		Module:   getEnvOrDefault("TRAINER_MODULE", "TrivialAugment.train"),
		DataRoot: getEnvOrDefault("TRAINER_DATAROOT", "data"),
	}
}

func validateConfig(config *Config) error {
	if !strings.HasPrefix(config.Checkpoint.Extension, ".") {
		return errors.ConfigInvalid("CHECKPOINT_EXT must include the leading dot")
	}
	if config.Trainer.Python == "" {
		return errors.ConfigInvalid("TRAINER_PYTHON must not be empty")
	}
	if config.Trainer.Module == "" {
		return errors.ConfigInvalid("TRAINER_MODULE must not be empty")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
