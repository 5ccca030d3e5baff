package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".curtaincall.yml"

// Config is the top-level CurtainCall configuration.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Report   ReportConfig   `yaml:"report"`
	Badge    BadgeConfig    `yaml:"badge"`
	Masking  MaskingConfig  `yaml:"masking"`
}

// Load reads configuration from a YAML file.
// If path is empty, it tries the default file.
// Returns sensible defaults if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaults(), nil
		}
		return nil, err
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Pipeline: DefaultPipelineConfig(),
		Report:   DefaultReportConfig(),
		Badge:    DefaultBadgeConfig(),
		Masking:  DefaultMaskingConfig(),
	}
}

// MaskingConfig controls secret redaction of captured step logs.
type MaskingConfig struct {
	// Enabled toggles redaction. Default: true.
	Enabled *bool `yaml:"enabled,omitempty"`
}

// DefaultMaskingConfig returns masking defaults.
func DefaultMaskingConfig() MaskingConfig {
	return MaskingConfig{}
}

// Active reports whether masking should run.
func (m MaskingConfig) Active() bool {
	return m.Enabled == nil || *m.Enabled
}
