package app

import (
	"context"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/selectmenu/internal/option"
	"github.com/zjrosen/selectmenu/internal/testutil"
	"github.com/zjrosen/selectmenu/internal/widget"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newMenus(t *testing.T, ids ...string) []widget.Model {
	t.Helper()
	var out []widget.Model
	for _, id := range ids {
		w, err := widget.New(context.Background(), widget.Config{ID: id, Label: id}, testutil.Fruits())
		require.NoError(t, err)
		out = append(out, w)
	}
	return out
}

func newApp(t *testing.T, ids ...string) Model {
	t.Helper()
	m, err := New(newMenus(t, ids...))
	require.NoError(t, err)
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func space() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(newMenus(t, "same", "same"))
	require.ErrorContains(t, err, `menu "same" registered twice`)
}

func TestNew_FirstMenuFocused(t *testing.T) {
	m := newApp(t, "one", "two")
	require.Equal(t, 0, m.Active())
	require.True(t, m.Widget(0).Focused())
	require.False(t, m.Widget(1).Focused())
}

func TestDirectory_Lookup(t *testing.T) {
	m := newApp(t, "fruits", "veg")
	d := m.Directory()

	h, err := d.Lookup("veg")
	require.NoError(t, err)
	require.Equal(t, "veg", h.ID)
	require.Equal(t, []string{"fruits", "veg"}, d.IDs())

	_, err = d.Lookup("ghost")
	require.True(t, option.IsLookup(err, option.KindMenu))
	require.ErrorIs(t, err, option.ErrNotFound)
}

func TestDirectory_BulkByID(t *testing.T) {
	m := newApp(t, "fruits", "veg")

	h, err := m.Directory().Lookup("veg")
	require.NoError(t, err)
	require.NoError(t, widget.SelectAll(context.Background(), h))

	report := m.Directory().Report()
	require.Len(t, report, 2)
	require.Empty(t, report[0].Values, "other menus are untouched")
	require.Equal(t, []string{"a", "b"}, report[1].Values)
	require.Equal(t, []string{"Apple", "Banana"}, report[1].Labels)
}

func TestMenuSwitching(t *testing.T) {
	m := newApp(t, "one", "two", "three")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, 1, m.Active())
	require.True(t, m.Widget(1).Focused())
	require.False(t, m.Widget(0).Focused())

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.Equal(t, 2, m.Active(), "wraps around")
}

func TestKeysRouteToActiveMenu(t *testing.T) {
	m := newApp(t, "one", "two")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlN})
	m, _ = update(m, space())

	report := m.Directory().Report()
	require.Empty(t, report[0].Values)
	require.Equal(t, []string{"a"}, report[1].Values)
}

func TestQuit(t *testing.T) {
	m := newApp(t, "one")
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHelpToggle(t *testing.T) {
	m := newApp(t, "one")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	require.Contains(t, m.View(), "Keys")
	require.Contains(t, m.View(), "select all")

	// Keys other than esc are swallowed while help is open.
	m, _ = update(m, space())
	require.Empty(t, m.Directory().Report()[0].Values)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotContains(t, m.View(), "esc to close")
}

func TestHelpKeyIsTypedInSearch(t *testing.T) {
	m := newApp(t, "one")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})

	require.Equal(t, "?", m.Widget(0).Query())
	require.NotContains(t, m.View(), "esc to close")
}

func TestMouse_ClickActivatesOwningMenu(t *testing.T) {
	m := newApp(t, "left", "right")
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 40})

	z := testutil.WaitForScannedZone(t, m.View, "right:row:1")
	m, _ = update(m, testutil.ClickIn(z))

	require.Equal(t, 1, m.Active())
	report := m.Directory().Report()
	require.Empty(t, report[0].Values)
	require.Equal(t, []string{"b"}, report[1].Values)
}

func TestView_NarrowShowsActiveMenuOnly(t *testing.T) {
	m := newApp(t, "first", "second")
	m, _ = update(m, tea.WindowSizeMsg{Width: 40, Height: 30})
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyCtrlN})

	view := m.View()
	require.Contains(t, view, "second")
	require.NotContains(t, view, "first")
	require.Contains(t, view, "menu 2 of 2")
}

func TestPlaceCentered(t *testing.T) {
	bg := "..........\n..........\n.........."
	out := placeCentered("XX", bg, 10, 3)
	require.Equal(t, "..........\n....XX....\n..........", out)
}

// TestEndToEnd drives the app through a real program loop.
func TestEndToEnd(t *testing.T) {
	m := newApp(t, "fruits", "veg")
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 40))

	// Apple in the first menu, then select everything in the second and
	// leave a filter typed in.
	tm.Send(space())
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlN})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b', 'a', 'n'}})
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	report := final.Directory().Report()
	require.Equal(t, []string{"a"}, report[0].Values)
	require.Equal(t, []string{"a", "b"}, report[1].Values)
	require.Equal(t, "ban", final.Widget(1).Query())
}
