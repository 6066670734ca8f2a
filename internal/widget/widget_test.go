package widget

import (
	"context"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/selectmenu/internal/option"
	"github.com/zjrosen/selectmenu/internal/testutil"
	"github.com/zjrosen/selectmenu/internal/tracing"
	"github.com/zjrosen/selectmenu/internal/ui/createform"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func newWidget(t *testing.T, id string, specs []option.Spec) Model {
	t.Helper()
	m, err := New(context.Background(), Config{
		ID:        id,
		Label:     "Fruits",
		EnableAdd: true,
		Form:      createform.Config{ID: "new-fruit", Title: "New fruit"},
	}, specs)
	require.NoError(t, err)
	return m.SetFocused(true)
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func click(t *testing.T, m Model, id string) Model {
	t.Helper()
	z := testutil.WaitForZone(t, m.View, id)
	m, _ = m.Update(testutil.ClickIn(z))
	return m
}

func visibleLabels(m Model) []string {
	var out []string
	for _, r := range m.Handle().Checklist.Rows() {
		if !r.Hidden {
			out = append(out, r.Label)
		}
	}
	return out
}

func requireInSync(t *testing.T, h *Handle) {
	t.Helper()
	var selected []string
	for _, o := range h.Registry.Options() {
		checked, err := h.Checklist.Checked(o.Value)
		require.NoError(t, err)
		require.Equal(t, o.Selected, checked, "row %q out of step", o.Value)
		if o.Selected {
			selected = append(selected, o.Value)
		}
	}
	require.ElementsMatch(t, selected, h.Tags.Values())
}

func TestNew_RequiresID(t *testing.T) {
	_, err := New(context.Background(), Config{}, nil)
	require.Error(t, err)
}

func TestNew_PreselectedOptions(t *testing.T) {
	m := newWidget(t, "pre", testutil.NewBuilder(t).
		WithOption("a", testutil.WithLabel("Apple")).
		WithOption("b", testutil.WithLabel("Banana"), testutil.Selected()).
		Specs())

	h := m.Handle()
	require.Equal(t, []string{"b"}, h.Sync.Selected())
	require.Equal(t, []string{"b"}, h.Tags.Values())
	requireInSync(t, h)
}

func TestKey_ToggleRow(t *testing.T) {
	m := newWidget(t, "key-toggle", testutil.Fruits())
	require.Equal(t, FocusList, m.Focus())

	m = press(m, "space")
	require.Equal(t, []string{"a"}, m.Handle().Sync.Selected())

	m = press(m, "down", "enter")
	require.Equal(t, []string{"a", "b"}, m.Handle().Sync.Selected())

	m = press(m, "space")
	require.Equal(t, []string{"a"}, m.Handle().Sync.Selected())
	requireInSync(t, m.Handle())
}

func TestKey_SelectAllDeselectAll(t *testing.T) {
	m := newWidget(t, "key-bulk", testutil.Basket())

	m = press(m, "a")
	require.Equal(t, 6, m.Handle().Tags.Len())

	m = press(m, "n")
	require.Zero(t, m.Handle().Tags.Len())
	require.Empty(t, m.Handle().Sync.Selected())
	requireInSync(t, m.Handle())
}

func TestKey_RemoveTag(t *testing.T) {
	m := newWidget(t, "key-tag", testutil.Fruits())
	m = press(m, "space", "down", "space")
	require.Equal(t, []string{"a", "b"}, m.Handle().Tags.Values())

	// Down past the last row moves into the tag box.
	m = press(m, "down")
	require.Equal(t, FocusTags, m.Focus())

	m = press(m, "x")
	require.Equal(t, []string{"b"}, m.Handle().Tags.Values())
	m = press(m, "backspace")
	require.Zero(t, m.Handle().Tags.Len())
	require.Equal(t, FocusList, m.Focus(), "empty tag box hands focus back")
	requireInSync(t, m.Handle())
}

func TestSearch_FiltersOnEveryKeystroke(t *testing.T) {
	m := newWidget(t, "search", testutil.Basket())

	m = press(m, "/")
	require.Equal(t, FocusSearch, m.Focus())

	m = typeText(m, "a")
	require.Len(t, visibleLabels(m), 5, "every label but Cherry contains an a")

	m = typeText(m, "pp")
	require.Equal(t, []string{"Apple", "Pineapple"}, visibleLabels(m))
	require.Equal(t, "app", m.Query())

	m = press(m, "esc")
	require.Empty(t, m.Query())
	require.Len(t, visibleLabels(m), 6)
}

func TestSearch_NoMatchHidesAll(t *testing.T) {
	m := newWidget(t, "nomatch", testutil.Basket())
	m = press(m, "/")
	m = typeText(m, "zzz")

	require.Empty(t, visibleLabels(m))
	require.Contains(t, zone.Scan(m.View()), "(no matches)")
}

func TestSearch_DoesNotTouchSelection(t *testing.T) {
	m := newWidget(t, "search-sel", testutil.Fruits())
	m = press(m, "space", "/")
	m = typeText(m, "ban")

	require.Equal(t, []string{"Banana"}, visibleLabels(m))
	require.Equal(t, []string{"a"}, m.Handle().Sync.Selected())
	require.Equal(t, []string{"a"}, m.Handle().Tags.Values())
}

func TestCreate_AppendsOption(t *testing.T) {
	m := newWidget(t, "create", testutil.Fruits())

	m = press(m, "+")
	require.True(t, m.FormOpen())
	require.Equal(t, FocusForm, m.Focus())

	m = typeText(m, "Cherry")
	m = press(m, "enter")
	m = typeText(m, "c")
	m = press(m, "enter")

	require.False(t, m.FormOpen())
	h := m.Handle()
	var values []string
	for _, o := range h.Registry.Options() {
		values = append(values, o.Value)
	}
	require.Equal(t, []string{"a", "b", "c"}, values)

	opt, err := h.Registry.Lookup("c")
	require.NoError(t, err)
	require.False(t, opt.Selected)
	require.Equal(t, "Cherry", opt.Label)

	// The new row toggles like any other.
	m = click(t, m, "create:row:2")
	require.Equal(t, []string{"c"}, h.Sync.Selected())
	requireInSync(t, h)
}

func TestCreate_EmptyNameDiscards(t *testing.T) {
	m := newWidget(t, "discard", testutil.Fruits())

	m = press(m, "+", "tab")
	m = typeText(m, "c")
	m = press(m, "enter")

	require.False(t, m.FormOpen())
	require.Equal(t, 2, m.Handle().Registry.Len())
	require.Equal(t, 2, m.Handle().Checklist.Len())
	require.Empty(t, m.Status(), "discard is silent")
}

func TestCreate_FilteredAgainstCurrentQuery(t *testing.T) {
	m := newWidget(t, "create-filter", testutil.Fruits())
	m = press(m, "/")
	m = typeText(m, "apple")
	m = press(m, "tab") // actions

	m = press(m, "+")
	m = typeText(m, "Cherry")
	m = press(m, "enter")
	m = typeText(m, "c")
	m = press(m, "enter")

	require.Equal(t, 3, m.Handle().Checklist.Len())
	require.Equal(t, []string{"Apple"}, visibleLabels(m), "new row is hidden by the active query")
}

func TestCreate_Cancel(t *testing.T) {
	m := newWidget(t, "cancel", testutil.Fruits())
	m = press(m, "+")
	m = typeText(m, "Cherry")
	m = press(m, "esc")

	require.False(t, m.FormOpen())
	require.Equal(t, FocusActions, m.Focus())
	require.Equal(t, 2, m.Handle().Registry.Len())
}

func TestCreate_DisabledWithoutEnableAdd(t *testing.T) {
	m, err := New(context.Background(), Config{ID: "no-add"}, testutil.Fruits())
	require.NoError(t, err)

	m = press(m.SetFocused(true), "+")
	require.False(t, m.FormOpen())
	require.NotContains(t, zone.Scan(m.View()), "Add Option")
}

func TestCreate_DuplicateValueFirstMatch(t *testing.T) {
	m := newWidget(t, "dup-create", []option.Spec{{Value: "x", Label: "First"}})
	m = press(m, "+")
	m = typeText(m, "Second")
	m = press(m, "enter")
	m = typeText(m, "x")
	m = press(m, "enter")

	h := m.Handle()
	require.Equal(t, 2, h.Registry.Len())
	require.NoError(t, h.Sync.Select(context.Background(), "x"))

	opts := h.Registry.Options()
	require.True(t, opts[0].Selected)
	require.False(t, opts[1].Selected)
	require.Equal(t, []string{"x"}, h.Registry.Duplicates())
}

func TestMouse_RowClickTogglesOnce(t *testing.T) {
	m := newWidget(t, "row-click", testutil.Fruits())

	m = click(t, m, "row-click:row:1")
	require.Equal(t, []string{"b"}, m.Handle().Sync.Selected())
	require.Equal(t, FocusList, m.Focus())

	m = click(t, m, "row-click:row:1")
	require.Empty(t, m.Handle().Sync.Selected())
	requireInSync(t, m.Handle())
}

func TestMouse_TagClickDeselectsOnly(t *testing.T) {
	m := newWidget(t, "tag-click", testutil.Fruits())
	require.NoError(t, m.Handle().Sync.Select(context.Background(), "a"))
	require.NoError(t, m.Handle().Sync.Select(context.Background(), "b"))

	m = click(t, m, "tag-click:tag:0")

	h := m.Handle()
	require.Equal(t, []string{"b"}, h.Sync.Selected())
	require.Equal(t, []string{"b"}, h.Tags.Values())
	checked, err := h.Checklist.Checked("a")
	require.NoError(t, err)
	require.False(t, checked, "row is unchecked once, not toggled back")
	requireInSync(t, h)
}

func TestMouse_ActionButtons(t *testing.T) {
	m := newWidget(t, "buttons", testutil.Basket())

	m = click(t, m, SelectAllZoneID("buttons"))
	require.Equal(t, 6, m.Handle().Tags.Len())

	m = click(t, m, DeselectAllZoneID("buttons"))
	require.Zero(t, m.Handle().Tags.Len())

	m = click(t, m, AddZoneID("buttons"))
	require.True(t, m.FormOpen())
}

func TestMouse_FormSubmit(t *testing.T) {
	m := newWidget(t, "form-click", testutil.Fruits())
	m = click(t, m, AddZoneID("form-click"))
	m = typeText(m, "Cherry")
	m = press(m, "tab")
	m = typeText(m, "c")

	m = click(t, m, createform.SubmitZoneID("form-click"))
	require.False(t, m.FormOpen())
	require.Equal(t, 3, m.Handle().Registry.Len())
}

func TestMouse_SearchFocus(t *testing.T) {
	m := newWidget(t, "search-click", testutil.Fruits())
	m = click(t, m, SearchZoneID("search-click"))
	require.Equal(t, FocusSearch, m.Focus())
}

func TestMouse_IgnoresOtherButtons(t *testing.T) {
	m := newWidget(t, "right-click", testutil.Fruits())
	z := testutil.WaitForZone(t, m.View, "right-click:row:0")

	msg := testutil.ClickIn(z)
	msg.Button = tea.MouseButtonRight
	m, _ = m.Update(msg)
	require.Empty(t, m.Handle().Sync.Selected())
}

func TestLookupError_ShownInStatus(t *testing.T) {
	m := newWidget(t, "drift", testutil.Fruits())
	// An option with no row: the views have drifted apart.
	m.Handle().Registry.Append("z", "Zed")

	m = press(m, "a")
	require.Contains(t, m.Status(), `row "z": not found`)
	require.Contains(t, zone.Scan(m.View()), `row "z": not found`)

	// The next successful gesture clears it.
	m = press(m, "space")
	require.Empty(t, m.Status())
}

func TestFocus_TabCycle(t *testing.T) {
	m := newWidget(t, "tabs", testutil.Fruits())

	order := []Focus{FocusTags, FocusSearch, FocusActions, FocusList}
	for _, want := range order {
		m = press(m, "tab")
		require.Equal(t, want, m.Focus())
	}
}

func TestView_Layout(t *testing.T) {
	m := newWidget(t, "layout", testutil.Fruits())
	require.NoError(t, m.Handle().Sync.Select(context.Background(), "b"))

	view := zone.Scan(m.View())
	for _, want := range []string{"Fruits", "Search...", "Select All", "Deselect All", "Add Option", "Options", "Selected", "[x] Banana", "Banana ×"} {
		require.Contains(t, view, want)
	}
	require.Less(t, strings.Index(view, "Select All"), strings.Index(view, "Options"))
	require.Less(t, strings.Index(view, "Options"), strings.Index(view, "Selected ("))
}

func TestView_Counts(t *testing.T) {
	m, err := New(context.Background(), Config{ID: "counts", ShowCounts: true}, testutil.Basket())
	require.NoError(t, err)
	require.NoError(t, m.Handle().Sync.Select(context.Background(), "a"))

	require.Contains(t, zone.Scan(m.View()), "1/6 selected")
}

func TestBulk_NilHandle(t *testing.T) {
	require.ErrorIs(t, SelectAll(context.Background(), nil), ErrNilHandle)
	require.ErrorIs(t, DeselectAll(context.Background(), &Handle{}), ErrNilHandle)
}

func TestBulk_ThroughHandle(t *testing.T) {
	m := newWidget(t, "bulk", testutil.Basket())
	h := m.Handle()

	require.NoError(t, SelectAll(context.Background(), h))
	require.NoError(t, DeselectAll(context.Background(), h))
	require.Empty(t, h.Sync.Selected())
	require.Zero(t, h.Tags.Len())
}

func TestTracing_GestureSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	provider := tracing.NewProviderWithExporter(tracing.Config{}, exp)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	m, err := New(context.Background(), Config{ID: "traced", Tracer: provider.Tracer()}, testutil.Fruits())
	require.NoError(t, err)
	exp.Reset()

	press(m.SetFocused(true), "space")

	var names []string
	for _, s := range exp.GetSpans() {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{tracing.SpanSelect, tracing.SpanToggle, tracing.SpanGesture}, names)
}

func TestHelpView(t *testing.T) {
	short := HelpView(200, false)
	require.Contains(t, short, "toggle")
	require.Equal(t, 1, strings.Count(short, "\n")+1)

	full := HelpView(30, true)
	require.Contains(t, full, "select all")
	require.Greater(t, strings.Count(full, "\n"), 3, "wraps at narrow widths")
}

func TestFocus_String(t *testing.T) {
	require.Equal(t, "search", FocusSearch.String())
	require.Equal(t, "tags", FocusTags.String())
}
