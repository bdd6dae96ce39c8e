// Package config loads the refcheck YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied to fields the file leaves unset.
const (
	DefaultThreshold  = 0.90
	DefaultDelay      = 3 * time.Second
	DefaultRetryLimit = 3
	DefaultWorkers    = 4
)

// Config holds the validation run settings.
type Config struct {
	// TitleSimilarityThreshold is the minimum normalized similarity for
	// a lookup candidate to count as the cited paper.
	TitleSimilarityThreshold float64 `yaml:"title_similarity_threshold"`

	// RequestDelay is the minimum spacing between lookup requests.
	RequestDelay Duration `yaml:"request_delay"`

	// RetryLimit is the number of retries after a transient lookup
	// failure (0 disables retries).
	RetryLimit int `yaml:"retry_limit"`

	// MaxReferences caps how many references a run validates (0 = all).
	MaxReferences int `yaml:"max_references"`

	// Workers bounds concurrent lookups.
	Workers int `yaml:"workers"`

	// CachePath enables the SQLite lookup cache when non-empty.
	CachePath string `yaml:"cache_path"`
}

// Duration wraps time.Duration so YAML values like "3s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", node.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		TitleSimilarityThreshold: DefaultThreshold,
		RequestDelay:             Duration(DefaultDelay),
		RetryLimit:               DefaultRetryLimit,
		Workers:                  DefaultWorkers,
	}
}

// Load reads and validates the config file at path. Fields the file
// omits keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TitleSimilarityThreshold <= 0 || c.TitleSimilarityThreshold > 1 {
		return fmt.Errorf("title_similarity_threshold must be in (0, 1], got %v", c.TitleSimilarityThreshold)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request_delay must not be negative")
	}
	if c.RetryLimit < 0 {
		return fmt.Errorf("retry_limit must not be negative")
	}
	if c.MaxReferences < 0 {
		return fmt.Errorf("max_references must not be negative")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
