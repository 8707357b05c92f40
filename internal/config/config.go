// Package config loads and finalizes the root service configuration.
// Values come from config.toml, an optional per-environment overlay, and
// GRIDSIGHT_* environment variables, in ascending precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/gridsight/gridsight/internal/vision"
	"github.com/gridsight/gridsight/pkg/database"
	"github.com/gridsight/gridsight/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvGridsightEnv             = "GRIDSIGHT_ENV"
	EnvGridsightShutdownTimeout = "GRIDSIGHT_SHUTDOWN_TIMEOUT"
	EnvGridsightVersion         = "GRIDSIGHT_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "GRIDSIGHT_DB_HOST",
	Port:            "GRIDSIGHT_DB_PORT",
	Name:            "GRIDSIGHT_DB_NAME",
	User:            "GRIDSIGHT_DB_USER",
	Password:        "GRIDSIGHT_DB_PASSWORD",
	SSLMode:         "GRIDSIGHT_DB_SSL_MODE",
	MaxOpenConns:    "GRIDSIGHT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "GRIDSIGHT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "GRIDSIGHT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "GRIDSIGHT_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Driver:           "GRIDSIGHT_STORAGE_DRIVER",
	Root:             "GRIDSIGHT_STORAGE_ROOT",
	ContainerName:    "GRIDSIGHT_STORAGE_CONTAINER_NAME",
	ConnectionString: "GRIDSIGHT_STORAGE_CONNECTION_STRING",
}

var visionEnv = &vision.Env{
	Endpoint: "GRIDSIGHT_VISION_ENDPOINT",
	APIKey:   "GRIDSIGHT_VISION_API_KEY",
	Timeout:  "GRIDSIGHT_VISION_TIMEOUT",
}

// Config is the root configuration for the GridSight service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	Vision          vision.Config   `toml:"vision"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the GRIDSIGHT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvGridsightEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.Vision.Merge(&overlay.Vision)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.Vision.Finalize(visionEnv); err != nil {
		return fmt.Errorf("vision: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvGridsightShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvGridsightVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvGridsightEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
