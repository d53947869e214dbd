package tcellsensor

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"github.com/dshills/focuskit/internal/clipboard"
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/kernel"
	"github.com/dshills/focuskit/internal/sensor"
	"github.com/dshills/focuskit/internal/zone"
)

// rowHits lays items out one per row starting at row 0.
type rowHits struct {
	zoneID string
	items  []string
}

func (h rowHits) HitTest(x, y int) (string, string, bool) {
	if y < 0 || y >= len(h.items) {
		return "", "", false
	}
	return h.zoneID, h.items[y], false
}

func setup(t *testing.T) (*kernel.Kernel, *Adapter) {
	t.Helper()
	k, err := kernel.New(kernel.Options{Clipboard: &clipboard.Memory{}})
	require.NoError(t, err)
	t.Cleanup(func() { k.Dispose() })

	items := []string{"a", "b", "c"}
	k.Register("list", zone.Metadata{Config: zone.Preset(zone.RoleListbox), Items: items})

	s := sensor.New(k, sensor.Options{})
	t.Cleanup(s.Close)
	return k, New(s, rowHits{zoneID: "list", items: items})
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), "ArrowDown"},
		{"shift arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), "Shift+ArrowUp"},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), "Shift+Tab"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "X"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "Space"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "Alt+X"},
		{"function key", tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone), "F2"},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), "PageDown"},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), "Delete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ConvertKey(tt.ev).String())
		})
	}
}

func TestKeyEventNavigates(t *testing.T) {
	k, a := setup(t)
	k.Dispatch(command.New(command.Focus, command.FocusPayload{ZoneID: "list"}))

	consumed := a.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))

	require.True(t, consumed)
	require.Equal(t, "b", k.Focus().Zone("list").FocusedItemID)
}

func TestUnboundKeyFallsThrough(t *testing.T) {
	k, a := setup(t)
	k.Dispatch(command.New(command.Focus, command.FocusPayload{ZoneID: "list"}))

	require.False(t, a.HandleEvent(tcell.NewEventKey(tcell.KeyF9, 0, tcell.ModNone)))
}

func TestMouseClickSelects(t *testing.T) {
	k, a := setup(t)

	require.False(t, a.HandleEvent(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone)))
	require.True(t, a.HandleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone)))

	f := k.Focus()
	require.Equal(t, "list", f.ActiveZoneID)
	require.Equal(t, "c", f.Zone("list").FocusedItemID)
	require.Equal(t, []string{"c"}, f.Zone("list").Selection)
}

func TestMouseMoveWithoutButtons(t *testing.T) {
	k, a := setup(t)

	require.False(t, a.HandleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone)))
	require.Empty(t, k.Focus().ActiveZoneID)
}

func TestSecondaryButtonIgnored(t *testing.T) {
	k, a := setup(t)

	a.HandleEvent(tcell.NewEventMouse(1, 1, tcell.Button2, tcell.ModNone))
	a.HandleEvent(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	require.Empty(t, k.Focus().ActiveZoneID)
}

func TestRecoverEvent(t *testing.T) {
	k, a := setup(t)
	k.Dispatch(command.New(command.Focus, command.FocusPayload{ZoneID: "list", ItemID: "b"}))
	k.Zones().SetItems("list", []string{"a", "c"})

	require.True(t, a.HandleEvent(NewRecoverEvent()))
	require.Equal(t, "c", k.Focus().Zone("list").FocusedItemID)
	require.False(t, a.HandleEvent(NewRecoverEvent()))
}
