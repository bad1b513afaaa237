package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// GeneratorConfig tunes the configuration producer
type GeneratorConfig struct {
	Producer ProducerSettings `toml:"producer"`
	Limits   LimitSettings    `toml:"limits"`
}

// ProducerSettings contains model settings for the Anthropic producer
type ProducerSettings struct {
	Model       string  `toml:"model"`
	MaxTokens   int64   `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// LimitSettings bounds what a generated configuration may contain
type LimitSettings struct {
	MaxResources        int `toml:"max_resources"`
	MaxSeedsPerResource int `toml:"max_seeds_per_resource"`
}

// DefaultGeneratorConfig returns the settings used when no TOML file is
// provided.
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		Producer: ProducerSettings{
			Model:     "claude-sonnet-4-20250514",
			MaxTokens: 4096,
		},
		Limits: LimitSettings{
			MaxResources:        10,
			MaxSeedsPerResource: 20,
		},
	}
}

// LoadGeneratorConfig loads configuration from a TOML file
func LoadGeneratorConfig(filename string) (*GeneratorConfig, error) {
	cfg := DefaultGeneratorConfig()
	_, err := toml.DecodeFile(filename, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return cfg, nil
}
