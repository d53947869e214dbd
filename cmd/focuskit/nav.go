package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/kernel"
)

func newNavCmd(app *App) *cobra.Command {
	var extend bool

	cmd := &cobra.Command{
		Use:   "nav <layout> <direction>...",
		Short: "Move focus through a layout with arrow keys",
		Long: `Load a YAML layout, then dispatch one navigation command per direction
(up, down, left, right, home, end) and print where focus lands.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs := make([]geom.Direction, 0, len(args)-1)
			for _, a := range args[1:] {
				d := geom.ParseDirection(strings.ToLower(a))
				if d == geom.DirNone {
					return fmt.Errorf("unknown direction %q", a)
				}
				dirs = append(dirs, d)
			}

			k, _, err := app.openLayout(cmd, args[0])
			if err != nil {
				return err
			}
			defer k.Dispose()

			t := &table{}
			t.add("STEP", "MOVE", "STATUS", "FOCUS", "SELECTION")
			t.add("0", dimStyle.Render("start"), "", position(k), selection(k))
			for i, d := range dirs {
				res := k.Dispatch(command.New(command.Navigate, command.NavigatePayload{Direction: d, Extend: extend}))
				t.add(strconv.Itoa(i+1), d.String(), status(res), position(k), selection(k))
			}
			if err := t.write(cmd.OutOrStdout()); err != nil {
				return err
			}
			return app.writeStats(cmd.OutOrStdout(), k)
		},
	}

	cmd.Flags().BoolVar(&extend, "extend", false, "Extend the selection while moving (Shift+Arrow)")
	return cmd
}

func newTabCmd(app *App) *cobra.Command {
	var (
		count    int
		backward bool
	)

	cmd := &cobra.Command{
		Use:   "tab <layout>",
		Short: "Print the Tab sequence of a layout",
		Long: `Load a YAML layout and press Tab repeatedly, printing each tab stop.
The default count visits every zone once and wraps back to the start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, l, err := app.openLayout(cmd, args[0])
			if err != nil {
				return err
			}
			defer k.Dispose()

			if count <= 0 {
				count = len(l.Zones) + 1
			}

			t := &table{}
			t.add("STEP", "STATUS", "FOCUS")
			t.add("0", dimStyle.Render("start"), position(k))
			for i := range count {
				res := k.Dispatch(command.New(command.Tab, command.TabPayload{Backward: backward}))
				t.add(strconv.Itoa(i+1), status(res), position(k))
			}
			if err := t.write(cmd.OutOrStdout()); err != nil {
				return err
			}
			return app.writeStats(cmd.OutOrStdout(), k)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of Tab presses")
	cmd.Flags().BoolVarP(&backward, "backward", "b", false, "Press Shift+Tab instead")
	return cmd
}

// position formats the focused zone and item as zone/item.
func position(k *kernel.Kernel) string {
	f := k.Focus()
	if f.ActiveZoneID == "" {
		return dimStyle.Render("-")
	}
	item := f.Zone(f.ActiveZoneID).FocusedItemID
	if item == "" {
		return f.ActiveZoneID
	}
	return focusStyle.Render(f.ActiveZoneID + "/" + item)
}

func selection(k *kernel.Kernel) string {
	f := k.Focus()
	sel := f.Zone(f.ActiveZoneID).Selection
	if len(sel) == 0 {
		return dimStyle.Render("-")
	}
	return strings.Join(sel, ",")
}

func status(res handler.Result) string {
	if res.Status == handler.StatusError && res.Error != nil {
		return fmt.Sprintf("%s: %v", res.Status, res.Error)
	}
	return res.Status.String()
}
