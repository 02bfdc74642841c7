package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvSummarizerBaseURL    = "REVERIE_SUMMARIZER_BASE_URL"
	EnvSummarizerAPIKey     = "REVERIE_SUMMARIZER_API_KEY"
	EnvSummarizerModel      = "REVERIE_SUMMARIZER_MODEL"
	EnvSummarizerAPIVersion = "REVERIE_SUMMARIZER_API_VERSION"
	EnvSummarizerMaxTokens  = "REVERIE_SUMMARIZER_MAX_TOKENS"
	EnvSummarizerTimeout    = "REVERIE_SUMMARIZER_TIMEOUT"
)

// SummarizerConfig holds connection parameters for the language-model
// service that produces entry summaries and clarifying questions.
// APIKey is environment-only and never read from TOML.
type SummarizerConfig struct {
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"-"`
	Model      string `toml:"model"`
	APIVersion string `toml:"api_version"`
	MaxTokens  int    `toml:"max_tokens"`
	Timeout    string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *SummarizerConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SummarizerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SummarizerConfig) Merge(overlay *SummarizerConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	if overlay.MaxTokens != 0 {
		c.MaxTokens = overlay.MaxTokens
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *SummarizerConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.anthropic.com"
	}
	if c.Model == "" {
		c.Model = "claude-sonnet-4-20250514"
	}
	if c.APIVersion == "" {
		c.APIVersion = "2023-06-01"
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = 1000
	}
	if c.Timeout == "" {
		c.Timeout = "60s"
	}
}

func (c *SummarizerConfig) loadEnv() {
	if v := os.Getenv(EnvSummarizerBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvSummarizerAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvSummarizerModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvSummarizerAPIVersion); v != "" {
		c.APIVersion = v
	}
	if v := os.Getenv(EnvSummarizerMaxTokens); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
	if v := os.Getenv(EnvSummarizerTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *SummarizerConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.MaxTokens < 1 {
		return fmt.Errorf("max_tokens must be positive")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
