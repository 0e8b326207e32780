package config

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// Parse decodes a configuration document into a Config. Documents are
// YAML; JSON documents parse unchanged since YAML is a superset. A
// malformed document yields a descriptive error and no Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parsing log config: %w", err)
	}
	return &cfg, nil
}
