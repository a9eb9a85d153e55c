package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArchitecture(t *testing.T) {
	tests := map[string][]int{
		"784 60 60 10":       {784, 60, 60, 10},
		"784,120,145,120,10": {784, 120, 145, 120, 10},
		" 2, 3 ,2 ":          {2, 3, 2},
	}
	for in, want := range tests {
		got, err := ParseArchitecture(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseArchitecture("784 x 10")
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	config := DefaultConfig()
	assert.NoError(t, ValidateConfig(&config))

	tests := map[string]func(c *Config){
		"single layer":  func(c *Config) { c.Architecture = []int{784} },
		"zero layer":    func(c *Config) { c.Architecture = []int{784, 0, 10} },
		"zero rate":     func(c *Config) { c.LearningRate = 0 },
		"negative runs": func(c *Config) { c.Epochs = -1 },
		"negative cap":  func(c *Config) { c.Limit = -5 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			mutate(&c)
			assert.Error(t, ValidateConfig(&c))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "train.yaml")
	data := "architecture: [784, 120, 145, 120, 10]\nepochs: 2\ntrain_path: data/mnist_train.csv\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []int{784, 120, 145, 120, 10}, config.Architecture)
	assert.Equal(t, 2, config.Epochs)
	assert.Equal(t, "data/mnist_train.csv", config.TrainPath)
	assert.Equal(t, 0.046, config.LearningRate, "missing keys keep defaults")
	assert.Equal(t, uint64(1), config.Seed)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/train.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epochs: [1, 2"), 0644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "failed to unmarshal config")
}
