package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/focuskit/internal/zone"
)

func newRolesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "roles [role...]",
		Short: "Print the role preset table",
		Long: `Print the behavior each ARIA role gets when a zone is registered with
zone.Preset: orientation, looping, typeahead, entry policy, selection,
Tab behavior, activation, Escape behavior and focus mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := zone.Roles
			if len(args) > 0 {
				roles = roles[:0:0]
				for _, a := range args {
					r := zone.Role(a)
					if !zone.IsKnownRole(r) {
						return fmt.Errorf("unknown role %q", a)
					}
					roles = append(roles, r)
				}
			}

			t := &table{}
			t.add("ROLE", "ORIENTATION", "LOOP", "TYPEAHEAD", "ENTRY", "SELECT", "FOLLOW", "TAB", "ACTIVATION", "ESCAPE", "AUTOFOCUS", "VIRTUAL", "SPATIAL", "ITEM ROLE")
			for _, r := range roles {
				c := zone.Preset(r)
				itemRole := c.ItemRole
				if itemRole == "" {
					itemRole = dimStyle.Render("-")
				}
				t.add(
					string(c.Role),
					c.Orientation.String(),
					yesNo(c.Loop),
					yesNo(c.Typeahead),
					c.Entry.String(),
					c.SelectMode.String(),
					yesNo(c.FollowFocus),
					c.Tab.String(),
					c.Activation.String(),
					c.Dismiss.String(),
					yesNo(c.AutoFocus),
					yesNo(c.VirtualFocus),
					yesNo(c.Spatial),
					itemRole,
				)
			}
			return t.write(cmd.OutOrStdout())
		},
	}
}
