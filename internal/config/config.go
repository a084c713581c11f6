package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "TIMETABLE"

var sortModes = []string{"default", "sortByWaitingTime", "minimizeClassDays"}

type Config struct {
	Planner PlannerConfig `mapstructure:"planner"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type PlannerConfig struct {
	MaxCombinations int    `mapstructure:"max_combinations"`
	Fallback        bool   `mapstructure:"fallback"`
	Relaxation      bool   `mapstructure:"relaxation"`
	SortMode        string `mapstructure:"sort_mode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	File string `mapstructure:"file"` // Prometheus text file written after generation; disabled when empty
}

// Load reads the configuration. Precedence: environment (TIMETABLE_*) > .env > config file > defaults.
// An empty path looks for config.yaml in the working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith loads into a caller-provided viper instance, so command-line flags bound to it take precedence
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	_ = godotenv.Load()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("cannot read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("planner.max_combinations", 50000)
	v.SetDefault("planner.fallback", true)
	v.SetDefault("planner.relaxation", true)
	v.SetDefault("planner.sort_mode", "default")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("metrics.file", "")
}

func (c *Config) Validate() error {
	if c.Planner.MaxCombinations <= 0 {
		return fmt.Errorf("invalid config: planner.max_combinations must be positive: %v", c.Planner.MaxCombinations)
	}
	if !slices.Contains(sortModes, c.Planner.SortMode) {
		return fmt.Errorf("invalid config: planner.sort_mode %q is not one of %v", c.Planner.SortMode, sortModes)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid config: log.format must be \"json\" or \"console\": %q", c.Log.Format)
	}
	return nil
}
