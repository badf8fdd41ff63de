package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conform.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDatasetPath, cfg.Dataset.Path)
	assert.Equal(t, FormatAuto, cfg.Dataset.Format)
	assert.Equal(t, BackendMemory, cfg.Registry.Backend)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, float64(DefaultRateLimitRPS), cfg.Server.RateLimit.RPS)
	assert.Equal(t, TransportStdio, cfg.MCP.Transport)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
dataset:
  path: ./pets
  format: loam
  name: pets
  media_type: video
registry:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 1h
server:
  port: 9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, FormatLoam, cfg.Dataset.Format)
	assert.Equal(t, "video", cfg.Dataset.MediaType)
	assert.Equal(t, "redis:6379", cfg.Registry.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Registry.Redis.TTL)
	assert.Equal(t, DefaultRedisPrefix, cfg.Registry.Redis.Prefix)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown format", "dataset: {format: parquet}", "dataset.format"},
		{"bad media type", "dataset: {media_type: audio}", "dataset.media_type"},
		{"bad backend", "registry: {backend: etcd}", "registry.backend"},
		{"bad port", "server: {port: 70000}", "server.port"},
		{"bad transport", "mcp: {transport: grpc}", "mcp.transport"},
		{"bad log level", "log_level: loud", "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server: {port: 9000}\n")

	t.Setenv("CONFORM_SERVER_PORT", "9100")
	t.Setenv("CONFORM_REGISTRY_BACKEND", "redis")
	t.Setenv("CONFORM_REDIS_DB", "2")
	t.Setenv("CONFORM_REDIS_TTL", "30m")
	t.Setenv("CONFORM_SERVER_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CONFORM_DATASET_FRAMES", "true")

	cfg, err := LoadWithEnvOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, BackendRedis, cfg.Registry.Backend)
	assert.Equal(t, 2, cfg.Registry.Redis.DB)
	assert.Equal(t, 30*time.Minute, cfg.Registry.Redis.TTL)
	assert.Equal(t, 2.5, cfg.Server.RateLimit.RPS)
	assert.True(t, cfg.Dataset.Frames)
}

func TestLoadWithEnvOverrides_Revalidates(t *testing.T) {
	t.Setenv("CONFORM_MCP_TRANSPORT", "carrier-pigeon")

	_, err := LoadWithEnvOverrides("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after environment overrides")
}
