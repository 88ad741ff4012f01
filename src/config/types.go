package config

import "time"

// Config holds the process-wide defaults of the generator commands.
type Config struct {
	LogLevel      string  `yaml:"log_level"`
	LogFormat     string  `yaml:"log_format"` // text or json
	BaseDir       string  `yaml:"base_dir"`
	StatsDir      string  `yaml:"stats_dir,omitempty"` // empty: next to each instance
	Generator     string  `yaml:"generator"`           // external or gaussian
	GeneratorPath string  `yaml:"generator_path"`
	MaxValue      int64   `yaml:"max_value"`
	Timeout       string  `yaml:"timeout"` // e.g. "720h"
	WeightFactor  float64 `yaml:"weight_factor"`
	TwoObjective  string  `yaml:"two_objective_solver"` // dp or highs
}

const (
	GeneratorExternal = "external"
	GeneratorGaussian = "gaussian"

	SolverDP    = "dp"
	SolverHighs = "highs"
)

// Default holds the values used when no configuration file is given.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		BaseDir:       "../instances",
		Generator:     GeneratorExternal,
		GeneratorPath: "../include/generator.R",
		MaxValue:      300,
		Timeout:       "720h",
		WeightFactor:  0.5,
		TwoObjective:  SolverDP,
	}
}

// GetTimeout parses Timeout.
func (c *Config) GetTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Timeout)
}
