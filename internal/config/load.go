package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file at path, applies defaults and validates the result.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadWithEnvOverrides is Load followed by CONFORM_* environment overrides.
// Environment variables always take precedence over the file.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString("CONFORM_LOG_LEVEL", &cfg.LogLevel)

	setString("CONFORM_DATASET_PATH", &cfg.Dataset.Path)
	setString("CONFORM_DATASET_FORMAT", &cfg.Dataset.Format)
	setString("CONFORM_DATASET_NAME", &cfg.Dataset.Name)
	setString("CONFORM_DATASET_MEDIA_TYPE", &cfg.Dataset.MediaType)
	if val := os.Getenv("CONFORM_DATASET_FRAMES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Dataset.Frames = b
		}
	}

	setString("CONFORM_REGISTRY_BACKEND", &cfg.Registry.Backend)
	setString("CONFORM_REDIS_ADDR", &cfg.Registry.Redis.Addr)
	setString("CONFORM_REDIS_PASSWORD", &cfg.Registry.Redis.Password)
	setString("CONFORM_REDIS_PREFIX", &cfg.Registry.Redis.Prefix)
	setInt("CONFORM_REDIS_DB", &cfg.Registry.Redis.DB)
	if val := os.Getenv("CONFORM_REDIS_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Registry.Redis.TTL = d
		}
	}

	setInt("CONFORM_SERVER_PORT", &cfg.Server.Port)
	if val := os.Getenv("CONFORM_SERVER_RATE_LIMIT_RPS"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Server.RateLimit.RPS = f
		}
	}
	setInt("CONFORM_SERVER_RATE_LIMIT_BURST", &cfg.Server.RateLimit.Burst)

	setString("CONFORM_MCP_TRANSPORT", &cfg.MCP.Transport)
	setInt("CONFORM_MCP_PORT", &cfg.MCP.Port)
}

func setString(key string, dst *string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(key string, dst *int) {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}
