package widget

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/selectmenu/internal/keys"
	"github.com/zjrosen/selectmenu/internal/ui/styles"
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// View renders the widget. Zones are marked but not scanned; the host calls
// zone.Scan once on the full frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(zone.Mark(SearchZoneID(m.config.ID), m.search.View()))
	b.WriteString("\n\n")
	b.WriteString(m.renderActions())
	b.WriteString("\n")

	if m.form.IsOpen() {
		b.WriteString("\n")
		b.WriteString(m.form.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	listFocused := m.focused && m.focus == FocusList
	b.WriteString(styles.RenderSection(
		strings.Split(m.handle.Checklist.View(), "\n"),
		"Options", m.listHint(), m.width, listFocused))
	b.WriteString("\n")

	tagsFocused := m.focused && m.focus == FocusTags
	b.WriteString(styles.RenderSection(
		strings.Split(m.handle.Tags.View(), "\n"),
		"Selected", "x to remove", m.width, tagsFocused))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(wordwrap.String(m.status, m.width)))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	header := titleStyle.Render(m.Label())
	if m.config.ShowCounts {
		reg := m.handle.Registry
		counts := fmt.Sprintf(" %d/%d selected", len(reg.SelectedValues()), reg.Len())
		if m.search.Value() != "" {
			counts += fmt.Sprintf(", %d shown", m.handle.Checklist.VisibleCount())
		}
		header += styles.MutedStyle.Render(counts)
	}
	return header
}

func (m Model) renderActions() string {
	render := func(b button, label, id string) string {
		style := styles.SecondaryButtonStyle
		if m.focused && m.focus == FocusActions && m.actionCursor == b {
			style = styles.SecondaryButtonFocusedStyle
		}
		return zone.Mark(id, style.Render(label))
	}

	buttons := []string{
		render(buttonSelectAll, "Select All", SelectAllZoneID(m.config.ID)),
		render(buttonDeselectAll, "Deselect All", DeselectAllZoneID(m.config.ID)),
	}
	if m.config.EnableAdd {
		style := styles.PrimaryButtonStyle
		if m.focused && m.focus == FocusActions && m.actionCursor == buttonAdd {
			style = styles.PrimaryButtonFocusedStyle
		}
		buttons = append(buttons, zone.Mark(AddZoneID(m.config.ID), style.Render("+ Add Option")))
	}
	return strings.Join(buttons, " ")
}

func (m Model) listHint() string {
	if m.search.Value() != "" {
		return fmt.Sprintf("%d of %d", m.handle.Checklist.VisibleCount(), m.handle.Checklist.Len())
	}
	return "space to toggle"
}

// HelpView renders the key hints, wrapped to width.
func HelpView(width int, full bool) string {
	var groups [][]key.Binding
	if full {
		groups = keys.FullHelp()
	} else {
		groups = [][]key.Binding{keys.ShortHelp()}
	}

	var lines []string
	for _, group := range groups {
		var parts []string
		for _, k := range group {
			h := k.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		lines = append(lines, wordwrap.String(strings.Join(parts, " • "), width))
	}
	return styles.MutedStyle.Render(strings.Join(lines, "\n"))
}
