package crypto

import (
	"fmt"
	"os"
)

// Config holds the key material used to derive the symmetric entry key.
// Passphrase and Salt are fed through argon2id to produce a 256-bit AES key.
type Config struct {
	Passphrase string `toml:"passphrase"`
	Salt       string `toml:"salt"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Passphrase string
	Salt       string
}

// Finalize applies environment variable overrides and validation.
// There are no defaults: key material must be supplied explicitly.
func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Passphrase != "" {
		c.Passphrase = overlay.Passphrase
	}
	if overlay.Salt != "" {
		c.Salt = overlay.Salt
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Passphrase != "" {
		if v := os.Getenv(env.Passphrase); v != "" {
			c.Passphrase = v
		}
	}
	if env.Salt != "" {
		if v := os.Getenv(env.Salt); v != "" {
			c.Salt = v
		}
	}
}

func (c *Config) validate() error {
	if c.Passphrase == "" {
		return fmt.Errorf("passphrase required")
	}
	if len(c.Salt) < 8 {
		return fmt.Errorf("salt must be at least 8 bytes")
	}
	return nil
}
