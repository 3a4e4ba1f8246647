// Package config loads docvet settings from file, environment, and
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable surfaced by the CLI and server.
type Config struct {
	// Format selects output: "terminal" or "json".
	Format string `mapstructure:"format"`
	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
	// Tables optionally points at a YAML file overriding the built-in
	// phrase tables.
	Tables string `mapstructure:"tables"`
	// FetchTimeout bounds each page download.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	Hook   HookConfig   `mapstructure:"hook"`
	Server ServerConfig `mapstructure:"server"`
}

// HookConfig configures the optional AI rewrite hook.
type HookConfig struct {
	// Enabled gates hook use even when an API key is present.
	Enabled bool `mapstructure:"enabled"`
	// Model is the Anthropic model identifier.
	Model string `mapstructure:"model"`
	// Timeout bounds each rewrite call.
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads docvet.yaml from the working directory (when present),
// then DOCVET_* environment variables, on top of defaults. An explicit
// path overrides the search.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("format", "terminal")
	v.SetDefault("verbose", false)
	v.SetDefault("tables", "")
	v.SetDefault("fetch_timeout", 10*time.Second)
	v.SetDefault("hook.enabled", true)
	v.SetDefault("hook.model", "claude-3-5-haiku-20241022")
	v.SetDefault("hook.timeout", 30*time.Second)
	v.SetDefault("server.addr", ":8700")

	v.SetEnvPrefix("DOCVET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("docvet")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/docvet")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Format != "terminal" && cfg.Format != "json" {
		return nil, fmt.Errorf("invalid format %q: want terminal or json", cfg.Format)
	}
	return &cfg, nil
}
