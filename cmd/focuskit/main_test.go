package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"
)

const testLayout = `
focus: {zone: list, item: a}
zones:
  - id: list
    role: listbox
    rect: [0, 0, 200, 60]
    items:
      - {id: a, label: Apple, rect: [0, 0, 200, 20]}
      - {id: b, label: Banana, rect: [0, 20, 200, 20]}
      - {id: c, label: Cherry, rect: [0, 40, 200, 20]}
  - id: tools
    role: toolbar
    rect: [0, 100, 200, 20]
    items:
      - {id: x, rect: [0, 100, 100, 20]}
      - {id: y, rect: [100, 100, 100, 20]}
`

func writeLayout(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// lines splits output into rows of whitespace-separated fields.
func lines(out string) [][]string {
	var rows [][]string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		rows = append(rows, strings.Fields(l))
	}
	return rows
}

func TestRoles(t *testing.T) {
	out, err := execute(t, "roles")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 17)
	require.Equal(t, "ROLE", rows[0][0])
	require.Equal(t, "group", rows[1][0])
	require.Equal(t, "disclosure", rows[16][0])
}

func TestRolesFilter(t *testing.T) {
	out, err := execute(t, "roles", "grid")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"grid", "both", "no", "no", "restore", "multiple"}, rows[1][:6])
	require.Equal(t, "gridcell", rows[1][len(rows[1])-1])

	_, err = execute(t, "roles", "slider")
	require.ErrorContains(t, err, `unknown role "slider"`)
}

func TestKeymap(t *testing.T) {
	out, err := execute(t, "keymap")
	require.NoError(t, err)
	require.Contains(t, out, "ArrowDown")
	require.Contains(t, out, "OS_NAVIGATE")
	require.Contains(t, out, "Select all")
}

func TestKeymapFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "focuskit.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
[keymap]
no_defaults = true

[[keymap.bindings]]
keys = "Ctrl+K"
command = "app.palette"
description = "Command palette"
`), 0o644))

	out, err := execute(t, "keymap", "--config", cfg)
	require.NoError(t, err)
	require.Contains(t, out, "app.palette")
	require.NotContains(t, out, "OS_NAVIGATE")
}

func TestNav(t *testing.T) {
	path := writeLayout(t, testLayout)

	out, err := execute(t, "nav", path, "down", "down", "down")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 5)
	require.Equal(t, "list/a", rows[1][2])
	require.Equal(t, []string{"1", "down", "ok", "list/b", "b"}, rows[2])
	require.Equal(t, []string{"2", "down", "ok", "list/c", "c"}, rows[3])
	require.Equal(t, "list/c", rows[4][3])
}

func TestNavUnknownDirection(t *testing.T) {
	path := writeLayout(t, testLayout)

	_, err := execute(t, "nav", path, "sideways")
	require.ErrorContains(t, err, `unknown direction "sideways"`)
}

func TestTab(t *testing.T) {
	path := writeLayout(t, testLayout)

	out, err := execute(t, "tab", path, "--count", "2")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 4)
	require.Equal(t, []string{"1", "ok", "tools/x"}, rows[2])
	require.Equal(t, []string{"2", "no-op", "tools/x"}, rows[3])
}

func TestTabBackward(t *testing.T) {
	path := writeLayout(t, testLayout)

	out, err := execute(t, "tab", path, "-n", "1", "--backward")
	require.NoError(t, err)

	rows := lines(out)
	require.Equal(t, []string{"1", "no-op", "list/a"}, rows[2])
}

func TestAttrs(t *testing.T) {
	path := writeLayout(t, testLayout)

	out, err := execute(t, "attrs", path, "list")
	require.NoError(t, err)

	rows := lines(out)
	require.Len(t, rows, 4)
	require.Equal(t, "list", rows[0][0])
	require.Contains(t, rows[0], `role="listbox"`)
	require.Equal(t, "a", rows[1][0])
	require.Contains(t, rows[1], `data-focused="true"`)
	require.Contains(t, rows[1], `role="option"`)
	require.Contains(t, rows[2], `data-focused="false"`)

	_, err = execute(t, "attrs", path, "missing")
	require.ErrorContains(t, err, `unknown zone "missing"`)
}

func TestDecodeLayoutErrors(t *testing.T) {
	_, err := DecodeLayout(strings.NewReader(`
zones:
  - id: list
    role: slider
    rect: [0, 0]
    items:
      - {id: a}
      - {id: a}
  - role: group
`))
	require.ErrorIs(t, err, errUnknownRole)
	require.ErrorIs(t, err, errBadRect)
	require.ErrorIs(t, err, errDuplicateID)
	require.ErrorIs(t, err, errEmptyZoneID)
}

func TestLayoutMetadata(t *testing.T) {
	loop := true
	z := LayoutZone{
		ID:   "menu",
		Role: "toolbar",
		Loop: &loop,
		Items: []LayoutItem{
			{ID: "bold", Label: "Bold", Disabled: true},
			{ID: "size", Value: &LayoutValue{Min: 8, Max: 72, Step: 1, Now: 12}},
		},
	}

	meta := z.Metadata()
	require.True(t, meta.Config.Loop)
	require.Equal(t, []string{"bold", "size"}, meta.Items)
	require.Equal(t, "Bold", meta.Label("bold"))
	require.True(t, meta.IsDisabled("bold"))
	require.Equal(t, 72.0, meta.Values["size"].Max)
}

func TestRunExitCode(t *testing.T) {
	require.Equal(t, 1, run([]string{"roles", "nope"}))
}

func TestNavStats(t *testing.T) {
	path := writeLayout(t, testLayout)

	out, err := execute(t, "nav", path, "down", "up", "--stats")
	require.NoError(t, err)

	var navigate []string
	for _, row := range lines(out) {
		if len(row) > 0 && row[0] == "OS_NAVIGATE" {
			navigate = row
		}
	}
	require.Equal(t, []string{"OS_NAVIGATE", "2", "0", "ok"}, navigate)
}

// scriptedScreen is a simulation screen that queues events once it is
// initialized.
type scriptedScreen struct {
	tcell.SimulationScreen
	script func(s tcell.SimulationScreen)
}

func (s *scriptedScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.script(s.SimulationScreen)
	return nil
}

func useScreen(t *testing.T, script func(s tcell.SimulationScreen)) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	prev := newScreen
	newScreen = func() (tcell.Screen, error) {
		return &scriptedScreen{SimulationScreen: sim, script: script}, nil
	}
	t.Cleanup(func() { newScreen = prev })
	return sim
}

func TestDemoKeyboard(t *testing.T) {
	path := writeLayout(t, testLayout)
	useScreen(t, func(s tcell.SimulationScreen) {
		s.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
		s.InjectKey(tcell.KeyDown, 0, tcell.ModNone)
		s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	})

	out, err := execute(t, "demo", path)
	require.NoError(t, err)
	require.Equal(t, "list/c", strings.TrimSpace(out))
}

func TestDemoMouse(t *testing.T) {
	path := writeLayout(t, testLayout)
	useScreen(t, func(s tcell.SimulationScreen) {
		// Cell (13, 5) lies inside toolbar item y.
		s.InjectMouse(13, 5, tcell.Button1, tcell.ModNone)
		s.InjectMouse(13, 5, tcell.ButtonNone, tcell.ModNone)
		s.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	})

	out, err := execute(t, "demo", path, "--stats")
	require.NoError(t, err)

	rows := lines(out)
	require.Equal(t, []string{"tools/y"}, rows[0])

	var activated bool
	for _, row := range rows {
		if len(row) > 0 && row[0] == "OS_ACTIVATE" {
			activated = true
		}
	}
	require.True(t, activated, "expected OS_ACTIVATE in stats:\n%s", out)
}

func TestDemoHitTest(t *testing.T) {
	l, err := DecodeLayout(strings.NewReader(testLayout))
	require.NoError(t, err)
	d := &demo{layout: l, vp: l.Viewport()}

	tests := []struct {
		x, y       int
		zone, item string
	}{
		{0, 0, "list", "a"},
		{3, 2, "list", "c"},
		{1, 5, "tools", "x"},
		{13, 5, "tools", "y"},
		{40, 20, "", ""},
	}
	for _, tt := range tests {
		zoneID, itemID, _ := d.HitTest(tt.x, tt.y)
		require.Equal(t, tt.zone, zoneID, "zone at (%d, %d)", tt.x, tt.y)
		require.Equal(t, tt.item, itemID, "item at (%d, %d)", tt.x, tt.y)
	}
}
