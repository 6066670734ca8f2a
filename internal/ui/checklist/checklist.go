// Package checklist renders the checkbox rows that mirror a menu's options.
package checklist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/selectmenu/internal/option"
	"github.com/zjrosen/selectmenu/internal/ui/styles"
)

// Row mirrors one option.
type Row struct {
	Value   string
	Label   string
	Checked bool
	Hidden  bool
}

// List is an ordered set of rows with a cursor over the visible ones.
type List struct {
	rows       []Row
	first      map[string]int
	cursor     int
	offset     int
	width      int
	height     int
	focused    bool
	zonePrefix string
}

// New creates an empty list. zonePrefix namespaces the row zone ids.
func New(zonePrefix string) *List {
	return &List{
		first:      make(map[string]int),
		zonePrefix: zonePrefix,
		width:      40,
	}
}

// ZoneID returns the zone id for row i.
func ZoneID(prefix string, i int) string {
	return fmt.Sprintf("%s:row:%d", prefix, i)
}

// AppendRow adds an unchecked, visible row and returns its index.
func (l *List) AppendRow(value, label string) int {
	l.rows = append(l.rows, Row{Value: value, Label: label})
	idx := len(l.rows) - 1
	if _, exists := l.first[value]; !exists {
		l.first[value] = idx
	}
	return idx
}

// SetChecked sets the checked state of the first row holding value.
func (l *List) SetChecked(value string, checked bool) error {
	idx, ok := l.first[value]
	if !ok {
		return &option.LookupError{Kind: option.KindRow, Value: value}
	}
	l.rows[idx].Checked = checked
	return nil
}

// Checked reports the checked state of the first row holding value.
func (l *List) Checked(value string) (bool, error) {
	idx, ok := l.first[value]
	if !ok {
		return false, &option.LookupError{Kind: option.KindRow, Value: value}
	}
	return l.rows[idx].Checked, nil
}

// Rows returns a copy of the rows.
func (l *List) Rows() []Row {
	out := make([]Row, len(l.rows))
	copy(out, l.rows)
	return out
}

// Len returns the number of rows, hidden ones included.
func (l *List) Len() int { return len(l.rows) }

// Label returns the label of row i.
func (l *List) Label(i int) string { return l.rows[i].Label }

// SetHidden hides or shows row i.
func (l *List) SetHidden(i int, hidden bool) {
	l.rows[i].Hidden = hidden
}

// VisibleCount returns the number of rows not hidden by the filter.
func (l *List) VisibleCount() int {
	n := 0
	for _, r := range l.rows {
		if !r.Hidden {
			n++
		}
	}
	return n
}

// Cursor returns the row under the cursor. ok is false when no row is visible.
func (l *List) Cursor() (Row, bool) {
	if l.cursor < 0 || l.cursor >= len(l.rows) || l.rows[l.cursor].Hidden {
		return Row{}, false
	}
	return l.rows[l.cursor], true
}

// CursorIndex returns the raw index of the cursor row.
func (l *List) CursorIndex() int { return l.cursor }

// MoveCursor moves to the next visible row in direction dir (+1 or -1).
// It returns false when there is no visible row that way.
func (l *List) MoveCursor(dir int) bool {
	for i := l.cursor + dir; i >= 0 && i < len(l.rows); i += dir {
		if !l.rows[i].Hidden {
			l.cursor = i
			l.scrollToCursor()
			return true
		}
	}
	return false
}

// SetCursor puts the cursor on row i if it is visible.
func (l *List) SetCursor(i int) {
	if i >= 0 && i < len(l.rows) && !l.rows[i].Hidden {
		l.cursor = i
		l.scrollToCursor()
	}
}

// ClampCursor moves the cursor onto a visible row after a filter change,
// preferring the nearest one below, then above.
func (l *List) ClampCursor() {
	if _, ok := l.Cursor(); ok {
		l.scrollToCursor()
		return
	}
	start := l.cursor
	if start >= len(l.rows) {
		start = len(l.rows) - 1
	}
	for i := start; i < len(l.rows); i++ {
		if i >= 0 && !l.rows[i].Hidden {
			l.cursor = i
			l.scrollToCursor()
			return
		}
	}
	for i := start; i >= 0; i-- {
		if !l.rows[i].Hidden {
			l.cursor = i
			l.scrollToCursor()
			return
		}
	}
	l.cursor = 0
	l.offset = 0
}

// SetFocused shows or hides the cursor indicator.
func (l *List) SetFocused(focused bool) { l.focused = focused }

// Focused reports whether the list has focus.
func (l *List) Focused() bool { return l.focused }

// SetWidth sets the render width used for label truncation.
func (l *List) SetWidth(w int) { l.width = w }

// SetHeight limits how many visible rows are rendered. Zero means no limit.
func (l *List) SetHeight(h int) {
	l.height = h
	l.scrollToCursor()
}

// visibleIndexes returns the indexes of non-hidden rows.
func (l *List) visibleIndexes() []int {
	var idx []int
	for i, r := range l.rows {
		if !r.Hidden {
			idx = append(idx, i)
		}
	}
	return idx
}

// scrollToCursor keeps the cursor row inside the rendered window.
func (l *List) scrollToCursor() {
	if l.height <= 0 {
		l.offset = 0
		return
	}
	pos := 0
	for i, idx := range l.visibleIndexes() {
		if idx == l.cursor {
			pos = i
			break
		}
	}
	if pos < l.offset {
		l.offset = pos
	}
	if pos >= l.offset+l.height {
		l.offset = pos - l.height + 1
	}
}

// View renders the visible rows, each wrapped in its zone.
func (l *List) View() string {
	if len(l.rows) == 0 {
		return styles.MutedStyle.Render("  (no options)")
	}
	visible := l.visibleIndexes()
	if len(visible) == 0 {
		return styles.MutedStyle.Render("  (no matches)")
	}

	start, end := 0, len(visible)
	if l.height > 0 && len(visible) > l.height {
		start = l.offset
		if start > len(visible)-l.height {
			start = len(visible) - l.height
		}
		end = start + l.height
	}

	var lines []string
	if start > 0 {
		lines = append(lines, styles.MutedStyle.Render("  ↑ more"))
	}
	for _, idx := range visible[start:end] {
		lines = append(lines, zone.Mark(ZoneID(l.zonePrefix, idx), l.renderRow(idx)))
	}
	if end < len(visible) {
		lines = append(lines, styles.MutedStyle.Render("  ↓ more"))
	}
	return strings.Join(lines, "\n")
}

func (l *List) renderRow(idx int) string {
	r := l.rows[idx]

	prefix := "  "
	if l.focused && idx == l.cursor {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	box := styles.UncheckedStyle.Render("[ ]")
	if r.Checked {
		box = styles.CheckedStyle.Render("[x]")
	}

	// prefix, checkbox and a space take 6 cells
	labelWidth := l.width - 6
	label := r.Label
	if labelWidth > 0 {
		label = ansi.Truncate(label, labelWidth, "…")
	}
	return prefix + box + " " + styles.RowLabelStyle.Render(label)
}

// RowAt returns the index of the visible row under a mouse event.
func (l *List) RowAt(msg tea.MouseMsg) (int, bool) {
	for i, r := range l.rows {
		if r.Hidden {
			continue
		}
		if z := zone.Get(ZoneID(l.zonePrefix, i)); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}
