// Package config loads CLI configuration.
//
// Sources, in descending priority:
//  1. explicit --config path;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. environment variables only.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigFile = "local.yaml"

// Config holds everything the CLI needs to construct a client: where the
// backend lives, how long to wait for it, and where the credential pair is
// persisted between runs.
type Config struct {
	Env             string        `yaml:"env" env:"ENV" env-default:"local"`
	BaseURL         string        `yaml:"base_url" env:"GASGUARD_BASE_URL" env-default:"http://localhost:8081"`
	Timeout         time.Duration `yaml:"timeout" env:"GASGUARD_TIMEOUT" env-default:"30s"`
	CredentialsFile string        `yaml:"credentials_file" env:"GASGUARD_CREDENTIALS_FILE" env-default:""`
	Passphrase      string        `yaml:"-" env:"GASGUARD_PASSPHRASE" env-default:""`
}

// Validate checks the loaded values before the CLI constructs anything.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// MustLoad panics on a load failure.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from path (or the fallbacks listed in the package
// comment) and overlays environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}
		return &cfg, cfg.Validate()
	}

	if path != "" {
		return tryRead(path)
	}

	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	if _, err := os.Stat(defaultConfigFile); err == nil {
		return tryRead(defaultConfigFile)
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return &cfg, cfg.Validate()
}
