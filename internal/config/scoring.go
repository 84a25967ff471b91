package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/godilite/pitch-validation/internal/engine"
)

// ScoringFile is the optional YAML override for category weights and
// benchmark distributions:
//
//	weights:
//	  story: 0.30
//	  market: 0.25
//	benchmarks:
//	  story: {bottom_quartile: 45, industry_average: 62, top_quartile: 78}
type ScoringFile struct {
	Weights    map[string]float64           `yaml:"weights"`
	Benchmarks map[string]BenchmarkOverride `yaml:"benchmarks"`
}

type BenchmarkOverride struct {
	BottomQuartile  int `yaml:"bottom_quartile"`
	IndustryAverage int `yaml:"industry_average"`
	TopQuartile     int `yaml:"top_quartile"`
}

// LoadScoringFile reads and validates a scoring override. An empty path
// yields an empty override.
func LoadScoringFile(path string) (*ScoringFile, error) {
	if path == "" {
		return &ScoringFile{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring config: %w", err)
	}

	var f ScoringFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scoring config %s: %w", path, err)
	}

	if len(f.Weights) > 0 {
		if err := engine.Weights(f.Weights).Validate(); err != nil {
			return nil, fmt.Errorf("scoring config %s: %w", path, err)
		}
	}
	for name, b := range f.Benchmarks {
		if b.BottomQuartile > b.IndustryAverage || b.IndustryAverage > b.TopQuartile {
			return nil, fmt.Errorf("scoring config %s: benchmark %q quartiles out of order", path, name)
		}
	}
	return &f, nil
}

// EngineWeights returns the configured weights, or nil for the defaults.
func (f *ScoringFile) EngineWeights() engine.Weights {
	if len(f.Weights) == 0 {
		return nil
	}
	return engine.Weights(f.Weights)
}

// Reference converts the benchmark overrides into an engine.Reference
// suitable for Reference.Merge.
func (f *ScoringFile) Reference() engine.Reference {
	ref := engine.Reference{Benchmarks: make(map[string]engine.BenchmarkReference, len(f.Benchmarks))}
	for name, b := range f.Benchmarks {
		ref.Benchmarks[name] = engine.BenchmarkReference{
			Category:        name,
			BottomQuartile:  b.BottomQuartile,
			IndustryAverage: b.IndustryAverage,
			TopQuartile:     b.TopQuartile,
		}
	}
	return ref
}
