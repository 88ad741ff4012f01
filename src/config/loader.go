package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads and parses a configuration file. Fields absent from the
// file keep their Default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfigYAML decodes data over Default and validates the result
func ParseConfigYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate performs validation on the configuration
func Validate(cfg *Config) error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log_format: %s (must be text or json)", cfg.LogFormat)
	}
	if cfg.BaseDir == "" {
		return fmt.Errorf("base_dir cannot be empty")
	}
	switch cfg.Generator {
	case GeneratorExternal:
		if cfg.GeneratorPath == "" {
			return fmt.Errorf("generator_path cannot be empty for the external generator")
		}
	case GeneratorGaussian:
	default:
		return fmt.Errorf("invalid generator: %s (must be %s or %s)", cfg.Generator, GeneratorExternal, GeneratorGaussian)
	}
	if cfg.TwoObjective != SolverDP && cfg.TwoObjective != SolverHighs {
		return fmt.Errorf("invalid two_objective_solver: %s (must be %s or %s)", cfg.TwoObjective, SolverDP, SolverHighs)
	}
	if cfg.MaxValue <= 2 {
		return fmt.Errorf("max_value must be greater than 2, got %d", cfg.MaxValue)
	}
	timeout, err := cfg.GetTimeout()
	if err != nil {
		return fmt.Errorf("invalid timeout %s: %w", cfg.Timeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	if !(cfg.WeightFactor >= 0 && cfg.WeightFactor <= 1) {
		return fmt.Errorf("weight_factor must be between 0 and 1, got %f", cfg.WeightFactor)
	}
	return nil
}
