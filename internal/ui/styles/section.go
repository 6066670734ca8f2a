package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rounded border glyphs used by RenderSection.
const (
	cornerTL = "╭"
	cornerTR = "╮"
	cornerBL = "╰"
	cornerBR = "╯"
	edgeH    = "─"
	edgeV    = "│"
)

// RenderSection renders rows inside a rounded box with the title (and an
// optional hint) set into the top edge:
//
//	╭─ Title (hint) ─────╮
//	│row                 │
//	╰────────────────────╯
//
// The border switches to BorderHighlightFocusColor when focused.
func RenderSection(rows []string, title, hint string, width int, focused bool) string {
	var edgeColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		edgeColor = BorderHighlightFocusColor
	}
	edge := lipgloss.NewStyle().Foreground(edgeColor)
	heading := lipgloss.NewStyle().Bold(true).Foreground(edgeColor)

	inner := max(width-2, 1)

	var top strings.Builder
	if title == "" {
		top.WriteString(edge.Render(cornerTL + strings.Repeat(edgeH, inner) + cornerTR))
	} else {
		label := title
		if hint != "" {
			label += " (" + hint + ")"
		}
		fill := max(inner-lipgloss.Width(label)-3, 0)
		top.WriteString(edge.Render(cornerTL + edgeH + " "))
		top.WriteString(heading.Render(title))
		if hint != "" {
			top.WriteString(" " + MutedStyle.Render("("+hint+")"))
		}
		top.WriteString(edge.Render(" " + strings.Repeat(edgeH, fill) + cornerTR))
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, top.String())
	for _, row := range rows {
		pad := max(inner-lipgloss.Width(row), 0)
		lines = append(lines, edge.Render(edgeV)+row+strings.Repeat(" ", pad)+edge.Render(edgeV))
	}
	lines = append(lines, edge.Render(cornerBL+strings.Repeat(edgeH, inner)+cornerBR))

	return strings.Join(lines, "\n")
}
