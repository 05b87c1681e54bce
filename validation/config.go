package validation

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config selects the rules a document is validated with.
type Config struct {
	// Extends specifies rulesets to extend (e.g., "default", "strict", "all")
	Extends []string `yaml:"extends,omitempty" json:"extends,omitempty"`

	// Rules contains per-rule configuration
	Rules map[string]RuleConfig `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// RuleConfig configures a specific rule
type RuleConfig struct {
	// Enabled controls whether the rule is active. A rule listed without it is enabled.
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`
}

// IsEnabled reports whether the rule is turned on.
func (c RuleConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// NewConfig creates a new default configuration
func NewConfig() *Config {
	return &Config{
		Extends: []string{"default"},
		Rules:   make(map[string]RuleConfig),
	}
}

// LoadConfig loads validation configuration from a YAML reader.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if len(cfg.Extends) == 0 {
		cfg.Extends = []string{"default"}
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}

	return &cfg, nil
}

// LoadConfigFromFile loads validation configuration from a YAML file.
func LoadConfigFromFile(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}
