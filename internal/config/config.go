// Package config loads doccomp configuration from YAML with sensible
// defaults. A missing config file is not an error; a malformed one is.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/doccomp/internal/diffengine"
	"github.com/harrison/doccomp/internal/document"
	"github.com/harrison/doccomp/internal/scorer"
)

// DefaultPath is where doccomp looks for configuration unless told otherwise.
const DefaultPath = ".doccomp/config.yaml"

// DiffConfig holds structural diff options.
type DiffConfig struct {
	// Mode selects unified or context rendering
	Mode string `yaml:"mode"`

	// Context is the number of unchanged lines kept around changes
	Context int `yaml:"context"`

	// ReplaceThreshold is the minimum line similarity for delete/insert
	// pairs to be reported as a single replaced line
	ReplaceThreshold float64 `yaml:"replace_threshold"`
}

// LimitsConfig bounds input size; zero means unlimited.
type LimitsConfig struct {
	MaxLines int `yaml:"max_lines"`
	MaxChars int `yaml:"max_chars"`
}

// HistoryConfig controls the comparison history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

// CacheConfig controls the fingerprint-keyed result cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// Config represents doccomp configuration options.
type Config struct {
	// Normalize controls line normalization before equality comparison
	Normalize document.NormalizeOptions `yaml:"normalize"`

	// Diff holds structural diff options
	Diff DiffConfig `yaml:"diff"`

	// Scorers lists the similarity algorithms to run
	Scorers []string `yaml:"scorers"`

	// Limits bounds input size
	Limits LimitsConfig `yaml:"limits"`

	// History controls the sqlite comparison history
	History HistoryConfig `yaml:"history"`

	// Cache controls the result cache
	Cache CacheConfig `yaml:"cache"`

	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	algorithms := scorer.DefaultAlgorithms()
	scorers := make([]string, len(algorithms))
	for i, a := range algorithms {
		scorers[i] = string(a)
	}

	return &Config{
		Normalize: document.DefaultNormalizeOptions(),
		Diff: DiffConfig{
			Mode:             string(diffengine.ModeUnified),
			Context:          diffengine.DefaultContext,
			ReplaceThreshold: diffengine.DefaultReplaceThreshold,
		},
		Scorers: scorers,
		Limits:  LimitsConfig{},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".doccomp/history.db",
		},
		Cache: CacheConfig{
			Enabled: false,
			Dir:     ".doccomp/cache",
		},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configured mode, scorers, and numbers are usable.
func (c *Config) Validate() error {
	switch diffengine.Mode(c.Diff.Mode) {
	case diffengine.ModeUnified, diffengine.ModeContext:
	default:
		return fmt.Errorf("invalid diff mode %q (must be unified or context)", c.Diff.Mode)
	}
	if c.Diff.Context < 0 {
		return fmt.Errorf("diff context must be >= 0, got %d", c.Diff.Context)
	}
	if c.Diff.ReplaceThreshold < 0 || c.Diff.ReplaceThreshold > 1 {
		return fmt.Errorf("replace threshold must be in [0, 1], got %v", c.Diff.ReplaceThreshold)
	}
	for _, name := range c.Scorers {
		if _, err := scorer.New(scorer.Algorithm(name), c.Normalize); err != nil {
			return fmt.Errorf("invalid scorer %q: %w", name, err)
		}
	}
	return nil
}

// Algorithms converts the configured scorer names to algorithm identifiers.
func (c *Config) Algorithms() []scorer.Algorithm {
	out := make([]scorer.Algorithm, len(c.Scorers))
	for i, s := range c.Scorers {
		out[i] = scorer.Algorithm(s)
	}
	return out
}
