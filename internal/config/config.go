package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"reverie/pkg/crypto"
	"reverie/pkg/database"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvReverieEnv             = "REVERIE_ENV"
	EnvReverieShutdownTimeout = "REVERIE_SHUTDOWN_TIMEOUT"
	EnvReverieVersion         = "REVERIE_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "REVERIE_DB_HOST",
	Port:            "REVERIE_DB_PORT",
	Name:            "REVERIE_DB_NAME",
	User:            "REVERIE_DB_USER",
	Password:        "REVERIE_DB_PASSWORD",
	SSLMode:         "REVERIE_DB_SSL_MODE",
	MaxOpenConns:    "REVERIE_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "REVERIE_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "REVERIE_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "REVERIE_DB_CONN_TIMEOUT",
}

var cryptoEnv = &crypto.Env{
	Passphrase: "REVERIE_CRYPTO_PASSPHRASE",
	Salt:       "REVERIE_CRYPTO_SALT",
}

// Config is the root configuration for the Reverie service.
type Config struct {
	Server          ServerConfig     `toml:"server"`
	Database        database.Config  `toml:"database"`
	Crypto          crypto.Config    `toml:"crypto"`
	Summarizer      SummarizerConfig `toml:"summarizer"`
	API             APIConfig        `toml:"api"`
	ShutdownTimeout string           `toml:"shutdown_timeout"`
	Version         string           `toml:"version"`
}

// Env returns the REVERIE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvReverieEnv); env != "" {
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
	c.Crypto.Merge(&overlay.Crypto)
	c.Summarizer.Merge(&overlay.Summarizer)
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
	if err := c.Crypto.Finalize(cryptoEnv); err != nil {
		return fmt.Errorf("crypto: %w", err)
	}
	if err := c.Summarizer.Finalize(); err != nil {
		return fmt.Errorf("summarizer: %w", err)
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
	if v := os.Getenv(EnvReverieShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvReverieVersion); v != "" {
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
	if env := os.Getenv(EnvReverieEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
