package config

import (
	"fmt"
	"os"

	"github.com/YusovID/lcov-branch-filter/internal/validation"
	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultMarkers are the substrings that make a source line conditional.
var DefaultMarkers = []string{"if ", "else", "while", "switch", "case", "for ", "?"}

type Config struct {
	Env            string   `yaml:"env" env:"LCOV_FILTER_ENV" env-default:"local" validate:"required,oneof=local dev prod"`
	SystemPrefixes []string `yaml:"system_prefixes" env:"LCOV_FILTER_SYSTEM_PREFIXES" env-separator:"," env-default:"/usr" validate:"min=1,dive,required,abs_prefix"`
	Markers        []string `yaml:"markers" validate:"min=1,dive,required"`
	MetricsFile    string   `yaml:"metrics_file" env:"LCOV_FILTER_METRICS_FILE"`
}

// Load reads the configuration from the YAML file named by CONFIG_PATH, or
// from the environment alone when CONFIG_PATH is not set.
func Load() (*Config, error) {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file does not exist: %w", err)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read env: %w", err)
	}

	if len(cfg.Markers) == 0 {
		cfg.Markers = append([]string(nil), DefaultMarkers...)
	}

	if err := validation.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
