package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/focuskit/internal/input/keymap"
)

func newKeymapCmd(app *App) *cobra.Command {
	var (
		zoneID  string
		role    string
		editing bool
	)

	cmd := &cobra.Command{
		Use:   "keymap",
		Short: "List the key bindings in scope",
		Long: `List the bindings the kernel would consider for a zone, best match first.
Bindings come from the defaults, the config file's inline bindings and its
keymap file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := app.newKernel(cmd, kernelOptions())
			if err != nil {
				return err
			}
			defer k.Dispose()

			ctx := keymap.NewLookupContext()
			ctx.ZoneID = zoneID
			ctx.Role = role
			ctx.Editing = editing

			t := &table{}
			t.add("KEYS", "COMMAND", "WHEN", "KEYMAP", "DESCRIPTION")
			for _, m := range k.Keymaps().AllBindings(ctx) {
				b := m.Binding
				if editing && !b.AllowInField {
					continue
				}
				name := ""
				if m.Keymap != nil {
					name = m.Keymap.Name
				}
				t.add(b.Keys, b.Command, orDash(b.When), name, orDash(b.Description))
			}
			return t.write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&zoneID, "zone", "", "Active zone id")
	cmd.Flags().StringVar(&role, "role", "", "Active zone role")
	cmd.Flags().BoolVar(&editing, "editing", false, "Only list bindings active while editing a field")
	return cmd
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return dimStyle.Render("-")
	}
	return s
}
