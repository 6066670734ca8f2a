// Package config provides configuration types and defaults for selectmenu.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/tracing"
	"github.com/zjrosen/selectmenu/internal/ui/styles"
)

// Config holds all configuration options for selectmenu.
type Config struct {
	Page    string             `mapstructure:"page"`   // page file used when none is given on the command line
	Format  string             `mapstructure:"format"` // "text" (default) or "yaml"
	UI      UIConfig           `mapstructure:"ui"`
	Theme   ThemeConfig        `mapstructure:"theme"`
	Tracing tracing.Config     `mapstructure:"tracing"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	SearchPlaceholder string `mapstructure:"search_placeholder"`
	ShowCounts        bool   `mapstructure:"show_counts"`
	TagMaxWidth       int    `mapstructure:"tag_max_width"` // 0 disables truncation
}

// ThemeConfig holds hex color overrides. Empty fields keep the built-in colors.
type ThemeConfig struct {
	Accent  string `mapstructure:"accent"`
	Muted   string `mapstructure:"muted"`
	Error   string `mapstructure:"error"`
	Success string `mapstructure:"success"`
}

// Styles converts the theme for styles.ApplyTheme.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{
		Accent:  t.Accent,
		Muted:   t.Muted,
		Error:   t.Error,
		Success: t.Success,
	}
}

// DefaultTracesFilePath returns the default trace file location.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".selectmenu", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "selectmenu", "traces", "traces.jsonl")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = "" // derived from the config dir at runtime
	return Config{
		Format: "text",
		UI: UIConfig{
			SearchPlaceholder: "Search...",
			ShowCounts:        true,
			TagMaxWidth:       24,
		},
		Tracing: tc,
	}
}

// Validate checks option values that viper cannot type-check.
func Validate(cfg Config) error {
	switch cfg.Format {
	case "", "text", "yaml":
	default:
		return fmt.Errorf("format must be \"text\" or \"yaml\", got %q", cfg.Format)
	}
	if cfg.UI.TagMaxWidth < 0 {
		return fmt.Errorf("ui.tag_max_width must not be negative, got %d", cfg.UI.TagMaxWidth)
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateTracing checks tracing configuration.
func ValidateTracing(tc tracing.Config) error {
	if tc.SampleRate < 0 || tc.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tc.SampleRate)
	}
	if !tc.Enabled {
		return nil
	}
	switch tc.Exporter {
	case "none", "stdout":
	case "file":
		if tc.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
	case "otlp":
		if tc.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tc.Exporter)
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# selectmenu configuration

# Page file to open when none is given on the command line
# page: ./page.yaml

# Report format printed on exit: "text" or "yaml"
format: text

# UI settings
ui:
  search_placeholder: "Search..."  # used when a menu sets none
  show_counts: true                # show "n/m selected" next to each menu
  tag_max_width: 24                # truncate long tag labels (0 = never)

# Colors (hex, all optional)
# theme:
#   accent: "#54A0FF"
#   muted: "#696969"
#   error: "#FF8787"
#   success: "#73F59F"

# Tracing
# tracing:
#   enabled: true
#   exporter: file   # none, file, stdout, otlp
#   file_path: ~/.config/selectmenu/traces/traces.jsonl
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: localhost:4317
#   sample_rate: 0.1
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
