package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds training configuration
type Config struct {
	Architecture []int   `yaml:"architecture"`
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
	Seed         uint64  `yaml:"seed"`
	TrainPath    string  `yaml:"train_path"`
	TestPath     string  `yaml:"test_path"`
	Limit        int     `yaml:"limit"`
	HistoryPath  string  `yaml:"history_path"`
	MetricsAddr  string  `yaml:"metrics_addr"`
}

// DefaultConfig is the MNIST setup: 784-60-60-10, rate 0.046, 4 epochs.
func DefaultConfig() Config {
	return Config{
		Architecture: []int{784, 60, 60, 10},
		LearningRate: 0.046,
		Epochs:       4,
		Seed:         1,
	}
}

// LoadConfig reads a YAML file over the defaults; keys missing from the file keep
// their default value.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return config, nil
}

// ParseArchitecture parses architecture string into slice of integers.
// Sizes may be separated by spaces or commas.
func ParseArchitecture(archStr string) ([]int, error) {
	archParts := strings.FieldsFunc(archStr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	arch := make([]int, len(archParts))
	for i, s := range archParts {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("parsing layer %d: %w", i, err)
		}
		arch[i] = n
	}
	return arch, nil
}

// ValidateConfig validates training configuration
func ValidateConfig(config *Config) error {
	if len(config.Architecture) < 2 {
		return fmt.Errorf("architecture must have at least 2 layers (input and output)")
	}
	for i, n := range config.Architecture {
		if n <= 0 {
			return fmt.Errorf("layer %d must be positive, got %d", i, n)
		}
	}

	if config.LearningRate <= 0 {
		return fmt.Errorf("learning rate must be positive")
	}

	if config.Epochs < 0 {
		return fmt.Errorf("epochs must not be negative")
	}

	if config.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}

	return nil
}
