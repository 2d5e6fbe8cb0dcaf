package config

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

// ParseFile parses a promptforge config file (promptforge.yaml). The returned
// config has defaults applied but has not been validated; callers run Validate
// after any command line overrides are applied.
func ParseFile(path string) (*Config, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path to config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse parses config file contents.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	if cfg.Kind == "" {
		return nil, fmt.Errorf("kind field is required, expected %s", Kind)
	}
	if cfg.Kind != Kind {
		return nil, fmt.Errorf("invalid kind %s, expected %s", cfg.Kind, Kind)
	}

	if cfg.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("invalid schema version %s, expected %s - please migrate your file and handle any breaking changes", cfg.SchemaVersion, SchemaVersion)
	}

	cfg.ApplyDefaults()

	return cfg, nil
}
