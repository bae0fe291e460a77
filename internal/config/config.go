// Package config resolves bard's configuration from built-in defaults
// overlaid with optional YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Generator providers.
const (
	ProviderCLI    = "cli"
	ProviderOpenAI = "openai"
)

// Config is the top-level configuration structure.
type Config struct {
	LogLevel  string    `yaml:"log_level"`
	Generator Generator `yaml:"generator"`
	Fetch     Fetch     `yaml:"fetch"`
	Serve     Serve     `yaml:"serve"`
}

// Generator selects and parameterizes the text-generation backend.
type Generator struct {
	Provider  string `yaml:"provider"`
	Command   string `yaml:"command"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Timeout   string `yaml:"timeout"`
}

// APIKey returns the API key for HTTP providers, resolved from the
// configured environment variable.
func (g Generator) APIKey() string {
	if g.APIKeyEnv == "" {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv(g.APIKeyEnv)
}

// TimeoutValue parses the optional timeout. Empty means no timeout.
func (g Generator) TimeoutValue() (time.Duration, error) {
	return parseTimeout(g.Timeout)
}

// Fetch overrides the README probing defaults. Empty lists keep the
// built-in branch and filename candidates; an empty base_url keeps the
// public raw content host.
type Fetch struct {
	BaseURL   string   `yaml:"base_url"`
	Branches  []string `yaml:"branches"`
	Filenames []string `yaml:"filenames"`
	Timeout   string   `yaml:"timeout"`
}

// TimeoutValue parses the optional HTTP timeout. Empty means no timeout.
func (f Fetch) TimeoutValue() (time.Duration, error) {
	return parseTimeout(f.Timeout)
}

// Serve configures the MCP server.
type Serve struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Validate checks provider selection and field consistency.
func (c *Config) Validate() error {
	switch c.Generator.Provider {
	case ProviderCLI:
		if c.Generator.Command == "" {
			return fmt.Errorf("generator.command is required for the cli provider")
		}
	case ProviderOpenAI:
		if c.Generator.Model == "" {
			return fmt.Errorf("generator.model is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown generator.provider %q (want %s or %s)",
			c.Generator.Provider, ProviderCLI, ProviderOpenAI)
	}
	if _, err := parseTimeout(c.Generator.Timeout); err != nil {
		return fmt.Errorf("generator.timeout: %w", err)
	}
	if _, err := parseTimeout(c.Fetch.Timeout); err != nil {
		return fmt.Errorf("fetch.timeout: %w", err)
	}
	if c.Serve.MaxConcurrent < 1 {
		return fmt.Errorf("serve.max_concurrent must be at least 1, got %d", c.Serve.MaxConcurrent)
	}
	return nil
}

// Load resolves config from defaults → user file → project file.
// Missing files are fine; unreadable or invalid ones are not.
func Load() (*Config, error) {
	cfg := defaults()

	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".bard", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	projectPath := filepath.Join(".bard", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom resolves config from defaults plus one explicit file. Unlike the
// implicit files in Load, the named file must exist.
func LoadFrom(path string) (*Config, error) {
	cfg := defaults()
	if err := mergeFile(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}

func defaults() *Config {
	return &Config{
		LogLevel: "info",
		Generator: Generator{
			Provider:  ProviderCLI,
			Command:   "gemini",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		Serve: Serve{MaxConcurrent: 2},
	}
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
