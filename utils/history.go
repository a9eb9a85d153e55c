package utils

import (
	"encoding/json"
	"fmt"
	"os"
)

// History is the loss curve of a training run, kept for external plotting.
type History struct {
	Version      string    `json:"version"`
	Architecture []int     `json:"architecture"`
	LearningRate float64   `json:"learning_rate"`
	Epochs       int       `json:"epochs"`
	Loss         []float64 `json:"loss"`
	Accuracy     *float64  `json:"accuracy,omitempty"`
}

const HistoryVersion = "1.0"

// SaveHistory saves the loss history to a JSON file
func SaveHistory(filepath string, history *History) error {
	if history.Version == "" {
		history.Version = HistoryVersion
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadHistory loads a loss history from a JSON file
func LoadHistory(filepath string) (*History, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var history History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return &history, nil
}
