package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/focuskit/internal/zone"
)

func newAttrsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "attrs <layout> [zone...]",
		Short: "Print the ARIA attributes projected for each zone",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, l, err := app.openLayout(cmd, args[0])
			if err != nil {
				return err
			}
			defer k.Dispose()

			ids := args[1:]
			if len(ids) == 0 {
				for _, z := range l.Zones {
					ids = append(ids, z.ID)
				}
			}

			w := cmd.OutOrStdout()
			for _, id := range ids {
				p, ok := k.Attributes(id)
				if !ok {
					return fmt.Errorf("unknown zone %q", id)
				}
				meta, _ := k.Zone(id)
				if _, err := fmt.Fprintln(w, headerStyle.Render(id)+" "+formatAttrs(p.Zone)); err != nil {
					return err
				}
				for _, item := range meta.Items {
					if _, err := fmt.Fprintln(w, "  "+item+" "+formatAttrs(p.Items[item])); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}

// formatAttrs renders attributes as sorted key="value" pairs.
func formatAttrs(a zone.Attributes) string {
	keys := slices.Sorted(maps.Keys(a))
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", key, a[key]))
	}
	return strings.Join(parts, " ")
}
