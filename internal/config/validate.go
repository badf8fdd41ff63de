package config

import (
	"errors"
	"fmt"

	"github.com/aretw0/conform/internal/logging"
	"github.com/aretw0/conform/pkg/domain"
)

// Validate reports every invalid setting at once.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	switch cfg.Dataset.Format {
	case FormatAuto, FormatManifest, FormatLoam:
	default:
		errs = append(errs, fmt.Errorf("dataset.format must be %q, %q or %q, got %q", FormatAuto, FormatManifest, FormatLoam, cfg.Dataset.Format))
	}
	if _, err := domain.ParseMediaType(cfg.Dataset.MediaType); err != nil {
		errs = append(errs, fmt.Errorf("dataset.media_type: %w", err))
	}

	switch cfg.Registry.Backend {
	case BackendMemory, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("registry.backend must be %q or %q, got %q", BackendMemory, BackendRedis, cfg.Registry.Backend))
	}
	if cfg.Registry.Redis.DB < 0 {
		errs = append(errs, errors.New("registry.redis.db must be non-negative"))
	}
	if cfg.Registry.Redis.TTL < 0 {
		errs = append(errs, errors.New("registry.redis.ttl must be non-negative"))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", cfg.Server.Port))
	}
	if cfg.Server.RateLimit.RPS < 0 || cfg.Server.RateLimit.Burst < 0 {
		errs = append(errs, errors.New("server.rate_limit values must be non-negative"))
	}
	if cfg.Server.RateLimit.RPS > 0 && cfg.Server.RateLimit.Burst == 0 {
		errs = append(errs, errors.New("server.rate_limit.burst must be positive when rps is set"))
	}

	switch cfg.MCP.Transport {
	case TransportStdio, TransportSSE:
	default:
		errs = append(errs, fmt.Errorf("mcp.transport must be %q or %q, got %q", TransportStdio, TransportSSE, cfg.MCP.Transport))
	}
	if cfg.MCP.Port < 1 || cfg.MCP.Port > 65535 {
		errs = append(errs, fmt.Errorf("mcp.port out of range: %d", cfg.MCP.Port))
	}

	return errors.Join(errs...)
}
