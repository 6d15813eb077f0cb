// Package config loads the deriv configuration file and environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file read when --config is not given.
const DefaultPath = "deriv.yaml"

// Store drivers.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// Config holds the complete application configuration.
type Config struct {
	LogLevel     string      `mapstructure:"log_level"`
	Format       string      `mapstructure:"format"`
	MaxInputSize int         `mapstructure:"max_input_size"`
	Store        StoreConfig `mapstructure:"store"`
	HTTP         HTTPConfig  `mapstructure:"http"`
	MCP          MCPConfig   `mapstructure:"mcp"`
}

// StoreConfig selects where derivations are cached.
type StoreConfig struct {
	Driver  string        `mapstructure:"driver"`
	Path    string        `mapstructure:"path"`
	Timeout time.Duration `mapstructure:"timeout"` // per store call; zero disables it
	Redis   RedisConfig   `mapstructure:"redis"`
}

// RedisConfig holds the redis store settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// HTTPConfig holds the JSON API settings.
type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

// MCPConfig holds the MCP server settings.
type MCPConfig struct {
	Transport string `mapstructure:"transport"`
	Port      int    `mapstructure:"port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:     "info",
		Format:       "text",
		MaxInputSize: 4096,
		Store: StoreConfig{
			Driver:  DriverNone,
			Path:    filepath.Join(".deriv", "cache"),
			Timeout: 2 * time.Second,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "deriv:derivation:",
			},
		},
		HTTP: HTTPConfig{Port: 8080},
		MCP:  MCPConfig{Transport: "stdio", Port: 8081},
	}
}

// Load reads path on top of Default and applies environment overrides.
// A missing file is not an error. The format follows the extension:
// .toml, .json, otherwise YAML.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err := decode(raw, cfg); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return raw, nil
}

func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DERIV_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DERIV_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("DERIV_STORE"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("DERIV_REDIS_ADDR"); v != "" {
		cfg.Store.Redis.Addr = v
	}
	if v := os.Getenv("DERIV_HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DERIV_HTTP_PORT %q: %w", v, err)
		}
		cfg.HTTP.Port = port
	}
	return nil
}

// Validate rejects values no component can use.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverNone, DriverMemory, DriverFile, DriverRedis:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		return fmt.Errorf("unknown mcp transport %q", c.MCP.Transport)
	}
	if c.MaxInputSize <= 0 {
		return fmt.Errorf("max_input_size must be positive, got %d", c.MaxInputSize)
	}
	return nil
}
