package main

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/input/keymap"
	"github.com/dshills/focuskit/internal/kernel"
	"github.com/dshills/focuskit/internal/sensor"
	"github.com/dshills/focuskit/internal/sensor/tcellsensor"
)

// Layout units covered by one terminal cell.
const (
	cellWidth  = 8
	cellHeight = 20
)

// demoQuit ends the demo. It is bound to Ctrl+Q.
const demoQuit = "demo.quit"

// newScreen opens the terminal. Tests replace it with a simulation screen.
var newScreen = tcell.NewScreen

func newDemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "demo <layout>",
		Short: "Drive a layout interactively in the terminal",
		Long: `Draw a YAML layout in the terminal and feed keyboard and mouse input
through the focus kernel. Layout units map to cells of 8x20.
Ctrl+Q or Ctrl+C quits and prints where focus ended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, l, err := app.openLayout(cmd, args[0])
			if err != nil {
				return err
			}
			defer k.Dispose()

			screen, err := newScreen()
			if err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing terminal: %w", err)
			}

			d, err := newDemo(k, l, screen)
			if err != nil {
				screen.Fini()
				return err
			}
			d.run()
			d.close()
			screen.Fini()

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), position(k)); err != nil {
				return err
			}
			return app.writeStats(cmd.OutOrStdout(), k)
		},
	}
}

// demo draws a layout on a tcell screen and feeds its events to the kernel.
type demo struct {
	k       *kernel.Kernel
	layout  *Layout
	vp      *geom.MapViewport
	screen  tcell.Screen
	sensor  *sensor.Sensor
	adapter *tcellsensor.Adapter

	status string
	quit   bool
}

func newDemo(k *kernel.Kernel, l *Layout, screen tcell.Screen) (*demo, error) {
	d := &demo{k: k, layout: l, vp: l.Viewport(), screen: screen}

	ns := handler.NewBaseNamespaceHandler("demo")
	ns.Register(demoQuit, func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		d.quit = true
		return handler.Success()
	})
	k.HandleNamespace("demo", ns)
	if err := k.Keymaps().Register(keymap.NewKeymap("demo").Add("Ctrl+Q", demoQuit)); err != nil {
		return nil, fmt.Errorf("registering demo keymap: %w", err)
	}

	d.sensor = sensor.New(k, sensor.Options{
		Host:    d,
		Gesture: k.Config().GestureConfig(),
		Logger:  k.Logger(),
	})
	d.adapter = tcellsensor.New(d.sensor, d)

	screen.EnableMouse()
	screen.HideCursor()
	return d, nil
}

// run processes events until the user quits or the screen closes.
func (d *demo) run() {
	d.draw()
	for !d.quit {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			if k := tcellsensor.ConvertKey(e); k.Rune == 'c' && k.Modifiers.HasCtrl() {
				return
			}
		}
		d.adapter.HandleEvent(ev)
		d.draw()
	}
}

func (d *demo) close() {
	d.sensor.Close()
}

// Focus implements sensor.Host. The screen is redrawn from kernel state.
func (d *demo) Focus(zoneID, itemID string) {}

// Scroll implements sensor.Host.
func (d *demo) Scroll(zoneID, itemID string) {}

// Announce implements sensor.Host by showing text on the status line.
func (d *demo) Announce(text string) {
	d.status = text
}

// HitTest implements tcellsensor.HitTester. Zones later in the layout are
// drawn on top and win.
func (d *demo) HitTest(x, y int) (zoneID, itemID string, dragHandle bool) {
	p := geom.Point{X: (float64(x) + 0.5) * cellWidth, Y: (float64(y) + 0.5) * cellHeight}
	for _, z := range slices.Backward(d.layout.Zones) {
		for _, it := range z.Items {
			if r, ok := d.vp.ItemRect(it.ID); ok && r.ContainsPoint(p) {
				return z.ID, it.ID, false
			}
		}
	}
	for _, z := range slices.Backward(d.layout.Zones) {
		if r, ok := d.vp.ZoneRect(z.ID); ok && r.ContainsPoint(p) {
			return z.ID, "", false
		}
	}
	return "", "", false
}

func (d *demo) draw() {
	d.screen.Clear()
	f := d.k.Focus()

	for _, z := range d.layout.Zones {
		meta, ok := d.k.Zone(z.ID)
		if !ok {
			continue
		}
		zs := f.Zone(z.ID)
		for _, it := range z.Items {
			r, ok := d.vp.ItemRect(it.ID)
			if !ok {
				continue
			}
			style := tcell.StyleDefault
			switch {
			case it.ID == zs.FocusedItemID && z.ID == f.ActiveZoneID:
				style = style.Reverse(true)
			case it.ID == zs.FocusedItemID:
				style = style.Underline(true)
			}
			if slices.Contains(zs.Selection, it.ID) {
				style = style.Bold(true)
			}
			if meta.IsDisabled(it.ID) {
				style = style.Dim(true)
			}
			d.text(int(r.Left/cellWidth), int(r.Top/cellHeight), max(1, int(r.Width/cellWidth)), meta.Label(it.ID), style)
		}
	}

	w, h := d.screen.Size()
	line := fmt.Sprintf("%s  %s  Ctrl+Q quits", plainPosition(d.k), d.status)
	d.text(0, h-1, w, line, tcell.StyleDefault.Dim(true))
	d.screen.Show()
}

// text writes s at column x of row y, padded or cut to width cells.
func (d *demo) text(x, y, width int, s string, style tcell.Style) {
	runes := []rune(s)
	for i := range width {
		r := ' '
		if i < len(runes) {
			r = runes[i]
		}
		d.screen.SetContent(x+i, y, r, nil, style)
	}
}

// plainPosition is position without terminal styling.
func plainPosition(k *kernel.Kernel) string {
	f := k.Focus()
	if f.ActiveZoneID == "" {
		return "-"
	}
	if item := f.Zone(f.ActiveZoneID).FocusedItemID; item != "" {
		return f.ActiveZoneID + "/" + item
	}
	return f.ActiveZoneID
}
