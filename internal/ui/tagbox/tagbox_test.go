package tagbox

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/selectmenu/internal/testutil"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestBox_Add_InsertionOrder(t *testing.T) {
	b := New("fruits")
	require.True(t, b.Add("b", "Banana"))
	require.True(t, b.Add("a", "Apple"))

	require.Equal(t, []string{"b", "a"}, b.Values())
}

func TestBox_Add_NoDuplicates(t *testing.T) {
	b := New("fruits")
	require.True(t, b.Add("a", "Apple"))
	require.False(t, b.Add("a", "Apple"))
	require.Equal(t, 1, b.Len())
}

func TestBox_Remove(t *testing.T) {
	b := New("fruits")
	b.Add("a", "Apple")
	b.Add("b", "Banana")

	require.True(t, b.Remove("a"))
	require.False(t, b.Remove("a"), "removing twice is a no-op")
	require.Equal(t, []string{"b"}, b.Values())
	require.False(t, b.Contains("a"))
}

func TestBox_Remove_ClampsCursor(t *testing.T) {
	b := New("fruits")
	b.Add("a", "Apple")
	b.Add("b", "Banana")
	require.True(t, b.MoveCursor(1))

	b.Remove("b")
	tag, ok := b.Cursor()
	require.True(t, ok)
	require.Equal(t, "a", tag.Value)

	b.Remove("a")
	_, ok = b.Cursor()
	require.False(t, ok)
}

func TestBox_MoveCursor_Bounds(t *testing.T) {
	b := New("fruits")
	b.Add("a", "Apple")

	require.False(t, b.MoveCursor(-1))
	require.False(t, b.MoveCursor(1))
}

func TestBox_View_Empty(t *testing.T) {
	b := New("fruits")
	require.Contains(t, zone.Scan(b.View()), "(nothing selected)")
}

func TestBox_View_Chips(t *testing.T) {
	b := New("fruits")
	b.Add("a", "Apple")
	b.Add("b", "Banana")

	view := zone.Scan(b.View())
	require.Contains(t, view, "Apple ×")
	require.Contains(t, view, "Banana ×")
	require.Less(t, strings.Index(view, "Apple"), strings.Index(view, "Banana"))
}

func TestBox_View_Wraps(t *testing.T) {
	b := New("wrap")
	b.SetWidth(20)
	b.Add("a", "Apple")
	b.Add("b", "Banana")
	b.Add("c", "Cherry")

	view := zone.Scan(b.View())
	lines := strings.Split(view, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		require.LessOrEqual(t, lipgloss.Width(line), 20)
	}
}

func TestBox_View_TruncatesLabel(t *testing.T) {
	b := New("trunc")
	b.SetMaxLabelWidth(5)
	b.Add("l", "Watermelon")

	view := zone.Scan(b.View())
	require.Contains(t, view, "Wate…")
	require.NotContains(t, view, "Watermelon")
}

func TestBox_TagAt(t *testing.T) {
	b := New("tag-click")
	b.Add("a", "Apple")
	b.Add("b", "Banana")

	z := testutil.WaitForZone(t, b.View, ZoneID("tag-click", 1))
	idx, ok := b.TagAt(testutil.ClickIn(z))
	require.True(t, ok)
	require.Equal(t, 1, idx)
}
