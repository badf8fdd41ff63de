// Package config loads conform.yaml with defaults and CONFORM_* environment overrides.
package config

import "time"

// Config is the root configuration.
type Config struct {
	LogLevel string         `yaml:"log_level"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Registry RegistryConfig `yaml:"registry"`
	Server   ServerConfig   `yaml:"server"`
	MCP      MCPConfig      `yaml:"mcp"`
}

// DatasetConfig locates the datasets to serve.
type DatasetConfig struct {
	// Path is a manifest file (format "manifest") or a directory of sample documents (format "loam").
	// Format "auto" picks loam for directories.
	Path   string `yaml:"path"`
	Format string `yaml:"format"`

	// Name and MediaType describe the collection of a loam directory.
	// Name defaults to the directory name.
	Name      string `yaml:"name"`
	MediaType string `yaml:"media_type"`
	Frames    bool   `yaml:"frames_dataset"`
}

// RegistryConfig selects where schemas are stored.
type RegistryConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis schema registry.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port      int             `yaml:"port"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds request throughput. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// MCPConfig configures the MCP server.
type MCPConfig struct {
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
}

// Dataset formats.
const (
	FormatAuto     = "auto"
	FormatManifest = "manifest"
	FormatLoam     = "loam"
)

// Registry backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// MCP transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)
