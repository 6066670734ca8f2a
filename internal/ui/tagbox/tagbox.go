// Package tagbox renders the current selections as removable chips.
package tagbox

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/selectmenu/internal/ui/styles"
)

const closeGlyph = "×"

// Tag is one chip.
type Tag struct {
	Value string
	Label string
}

// Box holds tags in insertion order.
type Box struct {
	tags       []Tag
	cursor     int
	focused    bool
	width      int
	maxLabel   int
	zonePrefix string
}

// New creates an empty box. zonePrefix namespaces the chip zone ids.
func New(zonePrefix string) *Box {
	return &Box{
		zonePrefix: zonePrefix,
		width:      40,
		maxLabel:   24,
	}
}

// ZoneID returns the zone id for chip i.
func ZoneID(prefix string, i int) string {
	return fmt.Sprintf("%s:tag:%d", prefix, i)
}

// Add appends a tag unless one with the same value exists.
// It reports whether a tag was added.
func (b *Box) Add(value, label string) bool {
	if b.Contains(value) {
		return false
	}
	b.tags = append(b.tags, Tag{Value: value, Label: label})
	return true
}

// Remove deletes the tag holding value. It reports whether one was removed.
func (b *Box) Remove(value string) bool {
	for i, t := range b.tags {
		if t.Value == value {
			b.tags = append(b.tags[:i], b.tags[i+1:]...)
			if b.cursor >= len(b.tags) && b.cursor > 0 {
				b.cursor = len(b.tags) - 1
			}
			return true
		}
	}
	return false
}

// Contains reports whether a tag with value exists.
func (b *Box) Contains(value string) bool {
	for _, t := range b.tags {
		if t.Value == value {
			return true
		}
	}
	return false
}

// Values returns the tag values in insertion order.
func (b *Box) Values() []string {
	values := make([]string, len(b.tags))
	for i, t := range b.tags {
		values[i] = t.Value
	}
	return values
}

// Tags returns a copy of the tags.
func (b *Box) Tags() []Tag {
	out := make([]Tag, len(b.tags))
	copy(out, b.tags)
	return out
}

// Len returns the number of tags.
func (b *Box) Len() int { return len(b.tags) }

// Cursor returns the focused tag.
func (b *Box) Cursor() (Tag, bool) {
	if b.cursor < 0 || b.cursor >= len(b.tags) {
		return Tag{}, false
	}
	return b.tags[b.cursor], true
}

// MoveCursor moves the focused chip by dir. It returns false at either end.
func (b *Box) MoveCursor(dir int) bool {
	next := b.cursor + dir
	if next < 0 || next >= len(b.tags) {
		return false
	}
	b.cursor = next
	return true
}

func (b *Box) SetFocused(focused bool) { b.focused = focused }
func (b *Box) Focused() bool           { return b.focused }
func (b *Box) SetWidth(w int)          { b.width = w }

// SetMaxLabelWidth caps the label width of a chip. Zero disables the cap.
func (b *Box) SetMaxLabelWidth(w int) { b.maxLabel = w }

// View renders the chips, wrapping onto a new line when the next chip would
// exceed the width.
func (b *Box) View() string {
	if len(b.tags) == 0 {
		return styles.MutedStyle.Render("  (nothing selected)")
	}

	var lines []string
	var line []string
	lineWidth := 0
	for i := range b.tags {
		chip := zone.Mark(ZoneID(b.zonePrefix, i), b.renderChip(i))
		w := lipgloss.Width(chip)
		if len(line) > 0 && lineWidth+1+w > b.width {
			lines = append(lines, strings.Join(line, " "))
			line, lineWidth = nil, 0
		}
		if len(line) > 0 {
			lineWidth++
		}
		line = append(line, chip)
		lineWidth += w
	}
	lines = append(lines, strings.Join(line, " "))
	return strings.Join(lines, "\n")
}

func (b *Box) renderChip(i int) string {
	label := b.tags[i].Label
	if b.maxLabel > 0 {
		label = runewidth.Truncate(label, b.maxLabel, "…")
	}
	style := styles.TagStyle
	if b.focused && i == b.cursor {
		style = styles.TagFocusedStyle
	}
	return style.Render(label + " " + closeGlyph)
}

// TagAt returns the index of the chip under a mouse event.
func (b *Box) TagAt(msg tea.MouseMsg) (int, bool) {
	for i := range b.tags {
		if z := zone.Get(ZoneID(b.zonePrefix, i)); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}
