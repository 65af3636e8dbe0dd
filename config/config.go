package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all unitconv configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Catalog CatalogConfig `yaml:"catalog"`
	Display DisplayConfig `yaml:"display"`
	RPC     RPCConfig     `yaml:"rpc"`
	HTTP    HTTPConfig    `yaml:"http"`
}

type LogConfig struct {
	Mode  string `yaml:"mode"`  // development, production
	Level string `yaml:"level"` // debug, info, warn, error
}

// CatalogConfig selects the unit catalog source. An empty SQLitePath means
// the built-in catalog.
type CatalogConfig struct {
	SQLitePath string `yaml:"sqlite_path"`
}

type DisplayConfig struct {
	Decimals int `yaml:"decimals"`
}

type RPCConfig struct {
	Addr string `yaml:"addr"`
}

type HTTPConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

const MaxDecimals = 12

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Mode:  "development",
			Level: "info",
		},
		Display: DisplayConfig{
			Decimals: 2,
		},
		RPC: RPCConfig{
			Addr: "127.0.0.1:7411",
		},
		HTTP: HTTPConfig{
			Addr:         "127.0.0.1:8080",
			AllowOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("UNITCONV_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("UNITCONV_LOG_MODE"); v != "" {
		c.Log.Mode = v
	}
	if v := os.Getenv("UNITCONV_CATALOG_DB"); v != "" {
		c.Catalog.SQLitePath = v
	}
	if v := os.Getenv("UNITCONV_RPC_ADDR"); v != "" {
		c.RPC.Addr = v
	}
	if v := os.Getenv("UNITCONV_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("UNITCONV_DECIMALS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("UNITCONV_DECIMALS: %w", err)
		}
		c.Display.Decimals = n
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Mode) {
	case "development", "dev", "production", "prod":
	default:
		return fmt.Errorf("log.mode must be development or production, got %q", c.Log.Mode)
	}
	if c.Display.Decimals < 0 || c.Display.Decimals > MaxDecimals {
		return fmt.Errorf("display.decimals must be between 0 and %d", MaxDecimals)
	}
	if c.RPC.Addr == "" {
		return fmt.Errorf("rpc.addr is required")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr is required")
	}
	return nil
}
