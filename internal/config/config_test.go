package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"reverie/internal/config"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[database]
host = "localhost"
port = 5432
name = "reverie"
user = "reverie"
password = "reverie"
ssl_mode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = "15m"
conn_timeout = "5s"

[crypto]
passphrase = "file-passphrase"
salt = "file-salt-value"

[summarizer]
base_url = "http://localhost:9999"
model = "test-model"
max_tokens = 500
timeout = "10s"

[api]
base_path = "/api"

[api.cors]
enabled = false

[api.pagination]
default_page_size = 25
max_page_size = 50
`

const overlayConfig = `
[server]
port = 9090

[database]
host = "stagehost"
`

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("db host: got %s, want localhost", cfg.Database.Host)
	}
	if cfg.Crypto.Passphrase != "file-passphrase" {
		t.Errorf("crypto passphrase: got %s, want file-passphrase", cfg.Crypto.Passphrase)
	}
	if cfg.Summarizer.Model != "test-model" {
		t.Errorf("summarizer model: got %s, want test-model", cfg.Summarizer.Model)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("pagination default_page_size: got %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("REVERIE_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Database.Host != "stagehost" {
		t.Errorf("db host: got %s, want stagehost (from overlay)", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("db port: got %d, want 5432 (from base)", cfg.Database.Port)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("REVERIE_VERSION", "2.0.0")
	t.Setenv("REVERIE_SERVER_PORT", "3000")
	t.Setenv("REVERIE_CRYPTO_PASSPHRASE", "env-passphrase")
	t.Setenv("REVERIE_SUMMARIZER_MODEL", "env-model")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Crypto.Passphrase != "env-passphrase" {
		t.Errorf("crypto passphrase: got %s, want env-passphrase", cfg.Crypto.Passphrase)
	}
	if cfg.Summarizer.Model != "env-model" {
		t.Errorf("summarizer model: got %s, want env-model", cfg.Summarizer.Model)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("REVERIE_DB_NAME", "testdb")
	t.Setenv("REVERIE_DB_USER", "testuser")
	t.Setenv("REVERIE_CRYPTO_PASSPHRASE", "env-passphrase")
	t.Setenv("REVERIE_CRYPTO_SALT", "env-salt-value")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "testdb" {
		t.Errorf("db name from env: got %s, want testdb", cfg.Database.Name)
	}
	if cfg.Crypto.Salt != "env-salt-value" {
		t.Errorf("crypto salt from env: got %s, want env-salt-value", cfg.Crypto.Salt)
	}
}

func TestLoadMissingKeyMaterial(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	t.Setenv("REVERIE_DB_NAME", "testdb")
	t.Setenv("REVERIE_DB_USER", "testuser")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error when crypto key material is absent")
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", "shutdown_timeout = [broken")
	chdir(t, dir)

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestEnvDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if d := cfg.ShutdownTimeoutDuration(); d != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", d)
	}
}

func TestSummarizerDefaults(t *testing.T) {
	var cfg config.SummarizerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.BaseURL == "" {
		t.Error("expected default base url")
	}
	if cfg.Model == "" {
		t.Error("expected default model")
	}
	if cfg.MaxTokens <= 0 {
		t.Errorf("expected positive default max_tokens, got %d", cfg.MaxTokens)
	}
	if cfg.TimeoutDuration() <= 0 {
		t.Errorf("expected positive default timeout, got %v", cfg.TimeoutDuration())
	}
}

func TestSummarizerEnvOverrides(t *testing.T) {
	t.Setenv("REVERIE_SUMMARIZER_BASE_URL", "http://localhost:4040")
	t.Setenv("REVERIE_SUMMARIZER_API_KEY", "env-key")
	t.Setenv("REVERIE_SUMMARIZER_MAX_TOKENS", "2500")

	var cfg config.SummarizerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.BaseURL != "http://localhost:4040" {
		t.Errorf("base url: got %s, want http://localhost:4040", cfg.BaseURL)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("api key: got %s, want env-key", cfg.APIKey)
	}
	if cfg.MaxTokens != 2500 {
		t.Errorf("max tokens: got %d, want 2500", cfg.MaxTokens)
	}
}
