package bench

import (
	"encoding/json"
	"fmt"
	"os"
)

// TestMode selects the stimulus generation strategy.
type TestMode string

const (
	// TestModeRandom draws enable and data uniformly from a seeded source.
	TestModeRandom TestMode = "RANDOM"
	// TestModeDirected replays a fixed vector list.
	TestModeDirected TestMode = "DIRECTED"
)

// RunConfig holds the recognized run options.
type RunConfig struct {
	// SequenceLength is the number of stimulus transactions to issue.
	// Default: 10.
	SequenceLength int `json:"sequence_length"`

	// Seed seeds the random generator. Repeated runs with the same seed
	// produce identical sequences. Default: 1.
	Seed int64 `json:"seed"`

	// TestMode is RANDOM or DIRECTED. Default: RANDOM.
	TestMode TestMode `json:"test_mode"`

	// ResetCycles is the number of cycles reset is held at startup.
	// Must be at least 1. Default: 1.
	ResetCycles int `json:"reset_cycles"`

	// ResetAt lists additional cycles at which reset is re-asserted
	// mid-run. Each listed cycle pauses stimulus for one cycle and forces
	// the next observed output to 0.
	ResetAt []uint64 `json:"reset_at,omitempty"`

	// PatternFile is an optional YAML file of directed vectors. Only used
	// in DIRECTED mode; when empty, the built-in directed pattern is used.
	PatternFile string `json:"pattern_file,omitempty"`

	// ActivityFile is an optional path for the switching-activity
	// artifact. Empty disables activity recording.
	ActivityFile string `json:"activity_file,omitempty"`
}

// DefaultRunConfig returns a RunConfig with the reference scenario values.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		SequenceLength: 10,
		Seed:           1,
		TestMode:       TestModeRandom,
		ResetCycles:    1,
	}
}

// LoadRunConfig loads a RunConfig from a JSON file. Missing fields keep
// their defaults.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	config := DefaultRunConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse run config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the RunConfig to a JSON file.
func (c *RunConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize run config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration is runnable.
func (c *RunConfig) Validate() error {
	if c.SequenceLength < 0 {
		return fmt.Errorf("sequence_length must be >= 0")
	}
	if c.ResetCycles < 1 {
		return fmt.Errorf("reset_cycles must be >= 1")
	}
	if c.TestMode != TestModeRandom && c.TestMode != TestModeDirected {
		return fmt.Errorf("test_mode must be %s or %s", TestModeRandom, TestModeDirected)
	}
	for _, cycle := range c.ResetAt {
		if cycle <= uint64(c.ResetCycles) {
			return fmt.Errorf(
				"reset_at cycle %d overlaps the startup reset window", cycle)
		}
	}
	return nil
}

// Clone returns a deep copy of the RunConfig.
func (c *RunConfig) Clone() *RunConfig {
	clone := *c
	if c.ResetAt != nil {
		clone.ResetAt = append([]uint64(nil), c.ResetAt...)
	}
	return &clone
}
