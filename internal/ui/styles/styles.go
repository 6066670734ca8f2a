// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Buttons
	ButtonTextColor             = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ButtonPrimaryFocusBgColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}

	// Tag chips
	TagBgColor      = lipgloss.AdaptiveColor{Light: "#D6EAF8", Dark: "#1A5276"}
	TagFocusBgColor = lipgloss.AdaptiveColor{Light: "#85C1E9", Dark: "#3498DB"}
	TagTextColor    = lipgloss.AdaptiveColor{Light: "#1B2631", Dark: "#FFFFFF"}

	SelectionIndicatorStyle lipgloss.Style

	PrimaryButtonStyle          lipgloss.Style
	PrimaryButtonFocusedStyle   lipgloss.Style
	SecondaryButtonStyle        lipgloss.Style
	SecondaryButtonFocusedStyle lipgloss.Style

	CheckedStyle   lipgloss.Style
	UncheckedStyle lipgloss.Style
	RowLabelStyle  lipgloss.Style
	MutedStyle     lipgloss.Style

	TagStyle        lipgloss.Style
	TagFocusedStyle lipgloss.Style

	ErrorStyle lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates every Style from the current color variables.
func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	baseButtonStyle := lipgloss.NewStyle().Padding(0, 1).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonPrimaryFocusBgColor).
		Underline(true).
		UnderlineSpaces(true)

	SecondaryButtonStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonSecondaryBgColor)

	SecondaryButtonFocusedStyle = baseButtonStyle.
		Foreground(ButtonTextColor).
		Background(ButtonSecondaryFocusBgColor).
		Underline(true).
		UnderlineSpaces(true)

	CheckedStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor).Bold(true)
	UncheckedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	RowLabelStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	TagStyle = lipgloss.NewStyle().
		Foreground(TagTextColor).
		Background(TagBgColor).
		Padding(0, 1)
	TagFocusedStyle = TagStyle.
		Background(TagFocusBgColor).
		Bold(true)

	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
}
