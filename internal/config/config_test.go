package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 50000, cfg.Planner.MaxCombinations)
	assert.True(t, cfg.Planner.Fallback)
	assert.True(t, cfg.Planner.Relaxation)
	assert.Equal(t, "default", cfg.Planner.SortMode)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Metrics.File)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	content := `
planner:
  max_combinations: 1000
  relaxation: false
  sort_mode: minimizeClassDays
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Planner.MaxCombinations)
	assert.False(t, cfg.Planner.Relaxation)
	assert.True(t, cfg.Planner.Fallback)
	assert.Equal(t, "minimizeClassDays", cfg.Planner.SortMode)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("planner:\n  max_combinations: 1000\n"), 0o644))
	t.Setenv("TIMETABLE_PLANNER_MAX_COMBINATIONS", "25")
	t.Setenv("TIMETABLE_LOG_LEVEL", "debug")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Planner.MaxCombinations)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadWithFlagsOverride(t *testing.T) {
	v := viper.New()
	v.Set("planner.sort_mode", "sortByWaitingTime")

	cfg, err := LoadWith(v, "")

	require.NoError(t, err)
	assert.Equal(t, "sortByWaitingTime", cfg.Planner.SortMode)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Planner: PlannerConfig{MaxCombinations: 10, SortMode: "default"},
		Log:     LogConfig{Level: "info", Format: "json"},
	}
	require.NoError(t, valid.Validate())

	scenarios := map[string]func(cfg *Config){
		"zero threshold":     func(cfg *Config) { cfg.Planner.MaxCombinations = 0 },
		"negative threshold": func(cfg *Config) { cfg.Planner.MaxCombinations = -5 },
		"unknown sort":       func(cfg *Config) { cfg.Planner.SortMode = "random" },
		"unknown format":     func(cfg *Config) { cfg.Log.Format = "xml" },
	}

	for name, mutate := range scenarios {
		cfg := valid
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}
