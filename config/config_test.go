// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Covers defaults, YAML files, environment overrides, and bad values
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG lookups at a temp dir and clears the config env vars.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	origConfig, origData := xdg.ConfigHome, xdg.DataHome
	xdg.ConfigHome = filepath.Join(dir, "config")
	xdg.DataHome = filepath.Join(dir, "data")
	t.Cleanup(func() {
		xdg.ConfigHome, xdg.DataHome = origConfig, origData
	})

	for _, key := range []string{"CRM_CONFIG", "PORT", "CRM_CORS_ORIGINS", "CRM_DB_PATH", "CRM_SEED_SAMPLE_DATA",
		"GEMINI_API_KEY", "CRM_AI_API_KEY", "CRM_AI_MODEL", "CRM_LOG_LEVEL", "CRM_LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, filepath.Join(dir, "data", "salescrm", "crm.db"), cfg.Database.Path)
	assert.True(t, cfg.Database.SeedSampleData)
	assert.Empty(t, cfg.AI.APIKey)
	require.NoError(t, cfg.Validate())
}

func TestLoadDefaultPathFile(t *testing.T) {
	isolate(t)
	writeFile(t, DefaultPath(), "server:\n  port: 9090\nlog:\n  format: console\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "crm.yaml")
	writeFile(t, path, `
database:
  path: /tmp/other.db
  seed_sample_data: false
ai:
  model: gemini-2.5-pro
  timeout: 15s
server:
  cors_origins: ["http://localhost:3000"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Database.Path)
	assert.False(t, cfg.Database.SeedSampleData)
	assert.Equal(t, "gemini-2.5-pro", cfg.AI.Model)
	assert.Equal(t, 15*time.Second, cfg.AI.Timeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSOrigins)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")

	t.Setenv("CRM_CONFIG", filepath.Join(dir, "also-nope.yaml"))
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "server: [")

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "crm.yaml")
	writeFile(t, path, "server:\n  port: 9090\nai:\n  api_key: from-file\n")

	t.Setenv("PORT", "7070")
	t.Setenv("CRM_DB_PATH", "/data/crm.db")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("CRM_LOG_LEVEL", "debug")
	t.Setenv("CRM_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("CRM_SEED_SAMPLE_DATA", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "/data/crm.db", cfg.Database.Path)
	assert.Equal(t, "gemini-key", cfg.AI.APIKey)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Database.SeedSampleData)

	t.Setenv("CRM_AI_API_KEY", "crm-key")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "crm-key", cfg.AI.APIKey)
}

func TestEnvOverridesRejectBadNumbers(t *testing.T) {
	isolate(t)

	t.Setenv("PORT", "eighty")
	_, err := Load("")
	assert.ErrorContains(t, err, "invalid PORT")

	t.Setenv("PORT", "")
	t.Setenv("CRM_SEED_SAMPLE_DATA", "maybe")
	_, err = Load("")
	assert.ErrorContains(t, err, "invalid CRM_SEED_SAMPLE_DATA")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "invalid server port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "invalid server port"},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "database path is required"},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"negative timeout", func(c *Config) { c.AI.Timeout = -time.Second }, "invalid ai timeout"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}
