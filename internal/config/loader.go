package config

import (
	"fmt"
	"os"

	"az-group-manager/pkg/logging"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// Load builds a Config from the defaults, the YAML file at path (skipped when
// path is empty) and the process environment, in that order.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		logging.Debug("ConfigLoader", "Loaded configuration from %s", path)
	}

	// Fields without a matching variable keep the value from the layers above.
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}
