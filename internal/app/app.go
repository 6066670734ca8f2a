// Package app contains the root application model that hosts a page's menus.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/selectmenu/internal/keys"
	"github.com/zjrosen/selectmenu/internal/log"
	"github.com/zjrosen/selectmenu/internal/ui/styles"
	"github.com/zjrosen/selectmenu/internal/widget"
)

// minColumnWidth is the narrowest a menu column is laid out side by side.
const minColumnWidth = 36

// Model is the root application state.
type Model struct {
	widgets   []widget.Model
	directory *Directory
	active    int
	showHelp  bool
	width     int
	height    int
}

// New creates the root model. The first widget starts focused.
func New(widgets []widget.Model) (Model, error) {
	if len(widgets) == 0 {
		return Model{}, fmt.Errorf("no menus to show")
	}
	dir, err := NewDirectory(widgets)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		widgets:   widgets,
		directory: dir,
		width:     80,
		height:    24,
	}
	m = m.layout()
	return m.activate(0), nil
}

// Directory returns the handle directory.
func (m Model) Directory() *Directory { return m.directory }

// Active returns the index of the focused menu.
func (m Model) Active() int { return m.active }

// Widget returns the menu at index i.
func (m Model) Widget(i int) widget.Model { return m.widgets[i] }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.layout(), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.App.Quit):
			log.Info(log.CatUI, "Quit requested")
			return m, tea.Quit
		case key.Matches(msg, keys.App.NextMenu):
			return m.activate((m.active + 1) % len(m.widgets)), nil
		case key.Matches(msg, keys.App.PrevMenu):
			return m.activate((m.active - 1 + len(m.widgets)) % len(m.widgets)), nil
		case key.Matches(msg, keys.App.Help) && !m.typing():
			m.showHelp = !m.showHelp
			return m, nil
		}
		if m.showHelp {
			if key.Matches(msg, keys.Common.Escape) {
				m.showHelp = false
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.widgets[m.active], cmd = m.widgets[m.active].Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		target := m.active
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			target = m.columnAt(msg.X)
		}
		if target != m.active {
			m = m.activate(target)
		}
		var cmd tea.Cmd
		m.widgets[target], cmd = m.widgets[target].Update(msg)
		return m, cmd
	}

	// Blink and other internal messages go to every widget.
	cmds := make([]tea.Cmd, 0, len(m.widgets))
	for i := range m.widgets {
		var cmd tea.Cmd
		m.widgets[i], cmd = m.widgets[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// typing reports whether the active menu has a text input focused.
func (m Model) typing() bool {
	w := m.widgets[m.active]
	return w.Focus() == widget.FocusSearch || (w.Focus() == widget.FocusForm && w.FormOpen())
}

func (m Model) activate(i int) Model {
	for j := range m.widgets {
		m.widgets[j] = m.widgets[j].SetFocused(j == i)
	}
	m.active = i
	log.Debug(log.CatUI, "Menu focused", "menu", m.widgets[i].ID())
	return m
}

// columns returns how many menus fit side by side.
func (m Model) columns() int {
	n := m.width / minColumnWidth
	if n < 1 {
		n = 1
	}
	if n > len(m.widgets) {
		n = len(m.widgets)
	}
	return n
}

// firstVisible returns the index of the leftmost rendered menu, keeping the
// active one on screen when not all of them fit.
func (m Model) firstVisible() int {
	if cols := m.columns(); m.active >= cols {
		return m.active - cols + 1
	}
	return 0
}

// columnAt maps a screen column to the menu rendered there.
func (m Model) columnAt(x int) int {
	cols := m.columns()
	i := m.firstVisible() + x/max(m.width/cols, 1)
	if i >= len(m.widgets) {
		i = len(m.widgets) - 1
	}
	return i
}

func (m Model) layout() Model {
	cols := m.columns()
	colWidth := m.width/cols - 2
	for i := range m.widgets {
		m.widgets[i] = m.widgets[i].SetSize(colWidth, m.height)
	}
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	cols := m.columns()

	start := m.firstVisible()

	var panes []string
	for i := start; i < start+cols && i < len(m.widgets); i++ {
		w := m.widgets[i]
		panes = append(panes, lipgloss.NewStyle().Padding(0, 1).Render(w.View()))
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panes...))
	b.WriteString("\n")
	if len(m.widgets) > cols {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" menu %d of %d (ctrl+n/ctrl+p to switch)", m.active+1, len(m.widgets))))
		b.WriteString("\n")
	}
	b.WriteString(" " + widget.HelpView(m.width-2, false))

	view := b.String()
	if m.showHelp {
		help := widget.HelpView(minColumnWidth+8, true)
		box := styles.RenderSection(strings.Split(help, "\n"), "Keys", "esc to close", minColumnWidth+10, true)
		view = placeCentered(box, view, m.width, m.height)
	}
	return zone.Scan(view)
}
