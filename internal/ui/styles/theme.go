package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Accent  string
	Muted   string
	Error   string
	Success string
}

// ApplyTheme applies custom theme colors from configuration and rebuilds all
// styles. Empty strings keep the default value. Any non-empty value must be a
// hex color; on error nothing is applied.
func ApplyTheme(cfg ThemeConfig) error {
	for name, value := range map[string]string{
		"accent":  cfg.Accent,
		"muted":   cfg.Muted,
		"error":   cfg.Error,
		"success": cfg.Success,
	} {
		if value != "" && !hexColorPattern.MatchString(value) {
			return fmt.Errorf("invalid hex color for theme.%s: %s", name, value)
		}
	}

	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	if cfg.Accent != "" {
		BorderHighlightFocusColor = makeColor(cfg.Accent)
		ButtonPrimaryFocusBgColor = makeColor(cfg.Accent)
		TagFocusBgColor = makeColor(cfg.Accent)
	}
	if cfg.Muted != "" {
		TextMutedColor = makeColor(cfg.Muted)
		BorderDefaultColor = makeColor(cfg.Muted)
	}
	if cfg.Error != "" {
		StatusErrorColor = makeColor(cfg.Error)
	}
	if cfg.Success != "" {
		StatusSuccessColor = makeColor(cfg.Success)
	}

	rebuildStyles()
	return nil
}
