// Package config layers the settings of the axisgoat binary: built-in
// defaults, an optional YAML file, then AXISGOAT_* environment variables.
// Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

const (
	EnvConfig   = "AXISGOAT_CONFIG"
	EnvDB       = "AXISGOAT_DB"
	EnvPort     = "AXISGOAT_PORT"
	EnvLogLevel = "AXISGOAT_LOG_LEVEL"
	EnvWorkers  = "AXISGOAT_WORKERS"
)

type Config struct {
	DB       string `yaml:"db"`
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	Workers  int    `yaml:"workers"`
}

func Default() Config {
	return Config{
		DB:       "./axisgoat.db",
		Port:     8080,
		LogLevel: "info",
		Workers:  4,
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults; a path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

// ApplyEnv overrides cfg with the environment variables reported by lookup.
func (cfg Config) ApplyEnv(lookup func(string) (string, bool)) (Config, error) {
	if v, ok := lookup(EnvDB); ok && v != "" {
		cfg.DB = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvWorkers, err)
		}
		cfg.Workers = workers
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	var errs []error
	if cfg.DB == "" {
		errs = append(errs, errors.New("db path must not be empty"))
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", cfg.Port))
	}
	if cfg.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers))
	}
	return errors.Join(errs...)
}
