// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// CommonKeys are shared by every component.
type CommonKeys struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Escape key.Binding
}

// ComponentKeys move focus between the parts of a component.
type ComponentKeys struct {
	Tab      key.Binding
	ShiftTab key.Binding
}

// MenuKeys are specific to a multi-select menu.
type MenuKeys struct {
	Toggle      key.Binding
	RemoveTag   key.Binding
	SelectAll   key.Binding
	DeselectAll key.Binding
	AddOption   key.Binding
	FocusSearch key.Binding
}

// AppKeys apply across all menus on a page.
type AppKeys struct {
	NextMenu key.Binding
	PrevMenu key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// Common holds navigation bindings.
var Common = CommonKeys{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "move left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "move right"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "activate"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// Component holds focus cycling bindings.
var Component = ComponentKeys{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next section"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous section"),
	),
}

// Menu holds multi-select bindings. Letter keys only apply outside text inputs.
var Menu = MenuKeys{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space", "toggle"),
	),
	RemoveTag: key.NewBinding(
		key.WithKeys("backspace", "delete", "x", "enter"),
		key.WithHelp("x", "remove tag"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select all"),
	),
	DeselectAll: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "deselect all"),
	),
	AddOption: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "add option"),
	),
	FocusSearch: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
}

// App holds page-level bindings.
var App = AppKeys{
	NextMenu: key.NewBinding(
		key.WithKeys("ctrl+n", "ctrl+j"),
		key.WithHelp("ctrl+n", "next menu"),
	),
	PrevMenu: key.NewBinding(
		key.WithKeys("ctrl+p", "ctrl+k"),
		key.WithHelp("ctrl+p", "previous menu"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "done"),
	),
}

// ShortHelp returns the bindings shown in the one-line footer.
func ShortHelp() []key.Binding {
	return []key.Binding{Component.Tab, Menu.Toggle, Menu.FocusSearch, App.Help, App.Quit}
}

// FullHelp returns the bindings shown when help is expanded.
func FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Common.Up, Common.Down, Common.Left, Common.Right},
		{Component.Tab, Component.ShiftTab, Menu.FocusSearch},
		{Menu.Toggle, Menu.RemoveTag, Menu.SelectAll, Menu.DeselectAll, Menu.AddOption},
		{App.NextMenu, App.PrevMenu, App.Help, App.Quit},
	}
}
