package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/deriv/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "deriv.yaml", `
log_level: debug
format: latex
store:
  driver: redis
  timeout: 500ms
  redis:
    addr: cache:6379
    ttl: 90s
http:
  port: "9090"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "latex", cfg.Format)
	assert.Equal(t, config.DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 90*time.Second, cfg.Store.Redis.TTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Store.Timeout)
	assert.Equal(t, "deriv:derivation:", cfg.Store.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_TOML(t *testing.T) {
	path := write(t, "deriv.toml", `
format = "json"

[store]
driver = "file"
path = "/tmp/deriv-cache"

[mcp]
transport = "sse"
port = 7000
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, config.DriverFile, cfg.Store.Driver)
	assert.Equal(t, "/tmp/deriv-cache", cfg.Store.Path)
	assert.Equal(t, "sse", cfg.MCP.Transport)
	assert.Equal(t, 7000, cfg.MCP.Port)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "deriv.json", `{"max_input_size": 128, "store": {"driver": "memory"}}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.MaxInputSize)
	assert.Equal(t, config.DriverMemory, cfg.Store.Driver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := write(t, "deriv.yaml", "store:\n  driver: file\n")
	t.Setenv("DERIV_LOG_LEVEL", "warn")
	t.Setenv("DERIV_FORMAT", "yaml")
	t.Setenv("DERIV_STORE", "redis")
	t.Setenv("DERIV_REDIS_ADDR", "redis:6380")
	t.Setenv("DERIV_HTTP_PORT", "8181")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, config.DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6380", cfg.Store.Redis.Addr)
	assert.Equal(t, 8181, cfg.HTTP.Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"Unknown Key", "a.yaml", "colour: red\n"},
		{"Bad Driver", "b.yaml", "store:\n  driver: postgres\n"},
		{"Bad Transport", "c.yaml", "mcp:\n  transport: grpc\n"},
		{"Bad Duration", "d.yaml", "store:\n  redis:\n    ttl: soon\n"},
		{"Bad TOML", "e.toml", "format = \n"},
		{"Bad JSON", "f.json", "{"},
		{"Non Positive Size", "g.yaml", "max_input_size: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(write(t, tt.file, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_BadEnvPort(t *testing.T) {
	t.Setenv("DERIV_HTTP_PORT", "eighty")
	_, err := config.Load("")
	assert.Error(t, err)
}
