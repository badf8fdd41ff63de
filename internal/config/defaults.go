package config

// Default values for configuration fields.
const (
	DefaultLogLevel       = "info"
	DefaultDatasetPath    = "./datasets.yaml"
	DefaultDatasetFormat  = FormatAuto
	DefaultMediaType      = "image"
	DefaultBackend        = BackendMemory
	DefaultRedisAddr      = "localhost:6379"
	DefaultRedisPrefix    = "conform:schema:"
	DefaultServerPort     = 8080
	DefaultRateLimitRPS   = 50
	DefaultRateLimitBurst = 100
	DefaultMCPTransport   = TransportStdio
	DefaultMCPPort        = 8081
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields.
func ApplyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = DefaultDatasetPath
	}
	if cfg.Dataset.Format == "" {
		cfg.Dataset.Format = DefaultDatasetFormat
	}
	if cfg.Dataset.MediaType == "" {
		cfg.Dataset.MediaType = DefaultMediaType
	}
	if cfg.Registry.Backend == "" {
		cfg.Registry.Backend = DefaultBackend
	}
	if cfg.Registry.Redis.Addr == "" {
		cfg.Registry.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Registry.Redis.Prefix == "" {
		cfg.Registry.Redis.Prefix = DefaultRedisPrefix
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.RateLimit.RPS == 0 && cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.RPS = DefaultRateLimitRPS
		cfg.Server.RateLimit.Burst = DefaultRateLimitBurst
	}
	if cfg.MCP.Transport == "" {
		cfg.MCP.Transport = DefaultMCPTransport
	}
	if cfg.MCP.Port == 0 {
		cfg.MCP.Port = DefaultMCPPort
	}
}
