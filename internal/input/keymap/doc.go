// Package keymap provides the keybinding table used by keyboard resolution.
//
// The keymap system maps canonical key strings to kernel commands. Bindings
// are grouped into keymaps, and a keymap may be scoped to a single zone id
// or to every zone of a role. A keymap with neither is global.
//
// # Key Concepts
//
// Keymap: A named collection of bindings for a scope.
//
// Binding: Maps a key specification to a command with optional arguments
// and a condition.
//
// Registry: Central registry that manages all keymaps and provides lookup.
//
// # Binding Precedence
//
// When multiple bindings match a key, precedence is determined by:
//  1. Scope (zone > role > global)
//  2. Keymap priority, then binding priority (higher wins)
//  3. Registration order (later wins)
//
// # Key Specifications
//
// Keys use the canonical form of the key package ("ArrowDown",
// "Shift+Tab", "Ctrl+A"). The alias "Mod" expands to both Ctrl and Meta:
//
//	{Keys: "Mod+Z", Command: "OS_UNDO"}
//
// # Conditional Bindings
//
// Bindings can have conditions that must be met:
//
//	binding := Binding{
//	    Keys:    "Enter",
//	    Command: "OS_FIELD_COMMIT",
//	    When:    "editing",
//	    AllowInField: true,
//	}
//
// # Usage
//
//	registry := keymap.NewRegistry()
//	keymap.LoadDefaults(registry)
//
//	ctx := &keymap.LookupContext{ZoneID: "list", Role: "listbox"}
//	if b := registry.Lookup(ev, ctx); b != nil {
//	    cmd := b.ToCommand()
//	}
package keymap
