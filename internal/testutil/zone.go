package testutil

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
)

// WaitForZone renders until the zone id is registered and returns it.
// Zone registration is asynchronous via a channel worker in bubblezone, so a
// single render is not always enough.
func WaitForZone(t *testing.T, render func() string, id string) *zone.ZoneInfo {
	t.Helper()

	var z *zone.ZoneInfo
	for retries := 0; retries < 50; retries++ {
		_ = zone.Scan(render())
		z = zone.Get(id)
		if z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(time.Millisecond)
	}
	require.FailNow(t, "zone never registered", "zone id %q", id)
	return nil
}

// WaitForScannedZone is WaitForZone for views that already call zone.Scan
// themselves, such as a top-level model. Scanning their output again would
// clear the zones the first scan registered.
func WaitForScannedZone(t *testing.T, render func() string, id string) *zone.ZoneInfo {
	t.Helper()

	var z *zone.ZoneInfo
	for retries := 0; retries < 50; retries++ {
		_ = render()
		z = zone.Get(id)
		if z != nil && !z.IsZero() {
			return z
		}
		time.Sleep(time.Millisecond)
	}
	require.FailNow(t, "zone never registered", "zone id %q", id)
	return nil
}

// ClickIn returns a left-button release inside the zone.
func ClickIn(z *zone.ZoneInfo) tea.MouseMsg {
	return tea.MouseMsg{
		X:      z.StartX + (z.EndX-z.StartX)/2,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	}
}
