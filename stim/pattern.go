package stim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PatternFile is the on-disk form of a directed stimulus sequence.
type PatternFile struct {
	// Name labels the pattern in reports and logs.
	Name string `yaml:"name"`
	// Vectors are driven in order, one per cycle.
	Vectors []Vector `yaml:"vectors"`
}

// LoadPatternFile reads a directed stimulus pattern from a YAML file.
func LoadPatternFile(path string) (*PatternFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	pattern := &PatternFile{}
	if err := yaml.Unmarshal(data, pattern); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file: %w", err)
	}

	if len(pattern.Vectors) == 0 {
		return nil, fmt.Errorf("pattern file %s contains no vectors", path)
	}

	return pattern, nil
}

// Generator builds a directed generator from the pattern.
func (p *PatternFile) Generator() (*DirectedGenerator, error) {
	gen, err := NewDirected(p.Vectors)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", p.Name, err)
	}
	return gen, nil
}
