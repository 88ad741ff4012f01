package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	timeout, err := cfg.GetTimeout()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, timeout)
}

func TestParseConfigYAMLOverridesDefaults(t *testing.T) {
	cfg, err := ParseConfigYAML([]byte(`
log_level: debug
base_dir: /tmp/instances
generator: gaussian
max_value: 1000
timeout: 90s
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/instances", cfg.BaseDir)
	assert.Equal(t, GeneratorGaussian, cfg.Generator)
	assert.EqualValues(t, 1000, cfg.MaxValue)
	assert.Equal(t, "90s", cfg.Timeout)
	// untouched fields keep their defaults
	assert.Equal(t, 0.5, cfg.WeightFactor)
	assert.Equal(t, SolverDP, cfg.TwoObjective)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestParseConfigYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "log_level: [unclosed"},
		{"bad log level", "log_level: verbose"},
		{"bad log format", "log_format: xml"},
		{"empty base dir", "base_dir: ''"},
		{"bad generator", "generator: r"},
		{"external without path", "generator_path: ''"},
		{"bad solver", "two_objective_solver: cplex"},
		{"small max value", "max_value: 2"},
		{"bad timeout", "timeout: soon"},
		{"negative timeout", "timeout: -1s"},
		{"weight factor", "weight_factor: 1.5"},
		{"NaN weight factor", "weight_factor: .nan"},
		{"infinite weight factor", "weight_factor: .inf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfigYAML([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestGaussianNeedsNoGeneratorPath(t *testing.T) {
	_, err := ParseConfigYAML([]byte("generator: gaussian\ngenerator_path: ''\n"))
	assert.NoError(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mobkp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stats_dir: stats\nweight_factor: 0.25\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "stats", cfg.StatsDir)
	assert.Equal(t, 0.25, cfg.WeightFactor)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
