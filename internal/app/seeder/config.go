package seeder

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

const maxBatchSize = 5000

// Config holds seeder pipeline settings.
type Config struct {
	Paths           []string `yaml:"paths"             env:"SEEDER_OMW_PATHS"          env-separator:","`
	Languages       []string `yaml:"languages"         env:"SEEDER_OMW_LANGUAGES"      env-separator:","`
	BatchSize       int      `yaml:"batch_size"        env:"SEEDER_BATCH_SIZE"         env-default:"500"`
	Workers         int      `yaml:"workers"           env:"SEEDER_WORKERS"            env-default:"4"`
	MaxLoggedErrors int      `yaml:"max_logged_errors" env:"SEEDER_MAX_LOGGED_ERRORS"  env-default:"20"`
	Strict          bool     `yaml:"strict"            env:"SEEDER_STRICT"`
	DryRun          bool     `yaml:"dry_run"           env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("seeder config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	cfg.Paths = trimAll(cfg.Paths)
	cfg.Languages = trimAll(cfg.Languages)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges. An empty Paths list is allowed here because
// the command line may still supply files.
func (c *Config) Validate() error {
	var errs []error

	if c.BatchSize < 1 || c.BatchSize > maxBatchSize {
		errs = append(errs, fmt.Errorf("seeder config: batch_size must be in [1, %d], got %d", maxBatchSize, c.BatchSize))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("seeder config: workers must be >= 1, got %d", c.Workers))
	}
	if c.MaxLoggedErrors < 0 {
		errs = append(errs, fmt.Errorf("seeder config: max_logged_errors must be >= 0, got %d", c.MaxLoggedErrors))
	}
	for _, lang := range c.Languages {
		if len(lang) != 3 {
			errs = append(errs, fmt.Errorf("seeder config: language %q is not a 3-letter code", lang))
		}
	}

	return errors.Join(errs...)
}

// languageFilter returns nil when no filter is configured.
func (c *Config) languageFilter() map[string]bool {
	if len(c.Languages) == 0 {
		return nil
	}
	m := make(map[string]bool, len(c.Languages))
	for _, l := range c.Languages {
		m[l] = true
	}
	return m
}

func trimAll(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
