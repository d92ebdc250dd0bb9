// ABOUTME: Application configuration with layered sources
// ABOUTME: Defaults, then YAML file, then .env and environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const appName = "salescrm"

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	AI       AIConfig       `yaml:"ai"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	CORSOrigins     []string      `yaml:"cors_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path           string `yaml:"path"`
	SeedSampleData bool   `yaml:"seed_sample_data"`
}

// AIConfig configures the hosted model. An empty APIKey disables AI assist.
type AIConfig struct {
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultDatabasePath returns the XDG-compliant database location.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, appName, "crm.db")
}

// DefaultPath returns the XDG-compliant config file location.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:           DefaultDatabasePath(),
			SeedSampleData: true,
		},
		AI: AIConfig{
			Model:           "gemini-2.5-flash",
			MaxOutputTokens: 2048,
			Timeout:         60 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. path falls back to $CRM_CONFIG and then
// DefaultPath; only an explicitly named file is required to exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	required := path != ""
	if path == "" {
		path = os.Getenv("CRM_CONFIG")
		required = path != ""
	}
	if path == "" {
		path = DefaultPath()
	}

	if err := cfg.loadFile(path, required); err != nil {
		return nil, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("CRM_CORS_ORIGINS"); v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("CRM_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("CRM_SEED_SAMPLE_DATA"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid CRM_SEED_SAMPLE_DATA %q: %w", v, err)
		}
		c.Database.SeedSampleData = seed
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("CRM_AI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("CRM_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("CRM_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CRM_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database path is required")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format %q (valid: json, console)", c.Log.Format)
	}
	if c.AI.Timeout < 0 {
		return fmt.Errorf("invalid ai timeout %s", c.AI.Timeout)
	}
	return nil
}
