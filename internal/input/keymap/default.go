package keymap

import "github.com/dshills/focuskit/internal/command"

// DefaultKeymapName is the name of the built-in global keymap.
const DefaultKeymapName = "default"

// DefaultKeymap returns the built-in global keymap.
func DefaultKeymap() *Keymap {
	km := NewKeymap(DefaultKeymapName).WithSource("default")

	nav := func(keys, dir string, extend bool) {
		args := map[string]any{"direction": dir}
		if extend {
			args["extend"] = true
		}
		km.AddBinding(Binding{
			Keys:     keys,
			Command:  command.Navigate,
			Args:     args,
			Category: "Navigation",
		})
	}
	nav("ArrowUp", "up", false)
	nav("ArrowDown", "down", false)
	nav("ArrowLeft", "left", false)
	nav("ArrowRight", "right", false)
	nav("Home", "home", false)
	nav("End", "end", false)
	nav("Shift+ArrowUp", "up", true)
	nav("Shift+ArrowDown", "down", true)
	nav("Shift+ArrowLeft", "left", true)
	nav("Shift+ArrowRight", "right", true)
	nav("Shift+Home", "home", true)
	nav("Shift+End", "end", true)

	km.AddBinding(Binding{Keys: "Tab", Command: command.Tab, Category: "Navigation",
		Description: "Next tab stop"})
	km.AddBinding(Binding{Keys: "Shift+Tab", Command: command.Tab, Category: "Navigation",
		Args: map[string]any{"backward": true}, Description: "Previous tab stop"})

	km.AddBinding(Binding{Keys: "Enter", Command: command.Activate, When: "!editing",
		Category: "Action", Description: "Activate"})
	km.AddBinding(Binding{Keys: "Escape", Command: command.Escape, When: "!editing",
		Category: "Action", Description: "Dismiss"})
	km.AddBinding(Binding{Keys: "Space", Command: command.Select, Category: "Selection",
		Args: map[string]any{"toggle": true}, Description: "Toggle selection"})
	km.AddBinding(Binding{Keys: "Mod+A", Command: command.SelectionAll, Category: "Selection",
		Description: "Select all"})

	km.AddBinding(Binding{Keys: "Delete", Command: command.Delete, Category: "Edit",
		Description: "Delete"})
	km.AddBinding(Binding{Keys: "Backspace", Command: command.Delete, Category: "Edit"})
	km.AddBinding(Binding{Keys: "Mod+C", Command: command.Copy, Category: "Edit",
		Description: "Copy"})
	km.AddBinding(Binding{Keys: "Mod+X", Command: command.Cut, Category: "Edit",
		Description: "Cut"})
	km.AddBinding(Binding{Keys: "Mod+V", Command: command.Paste, Category: "Edit",
		Description: "Paste"})
	km.AddBinding(Binding{Keys: "Mod+Z", Command: command.Undo, Category: "Edit",
		Description: "Undo"})
	km.AddBinding(Binding{Keys: "Mod+Shift+Z", Command: command.Redo, Category: "Edit",
		Description: "Redo"})
	km.AddBinding(Binding{Keys: "Ctrl+Y", Command: command.Redo, Category: "Edit"})
	km.AddBinding(Binding{Keys: "Alt+ArrowUp", Command: command.MoveUp, Category: "Edit",
		Priority: 1, Description: "Move up"})
	km.AddBinding(Binding{Keys: "Alt+ArrowDown", Command: command.MoveDown, Category: "Edit",
		Priority: 1, Description: "Move down"})

	km.AddBinding(Binding{Keys: "F2", Command: command.FieldStartEdit, Category: "Field",
		Description: "Edit"})
	km.AddBinding(Binding{Keys: "Enter", Command: command.FieldCommit, When: "editing",
		AllowInField: true, Category: "Field", Description: "Commit edit"})
	km.AddBinding(Binding{Keys: "Escape", Command: command.FieldCancel, When: "editing",
		AllowInField: true, Category: "Field", Description: "Cancel edit"})

	km.AddBinding(Binding{Keys: "PageUp", Command: command.ValueChange, Category: "Value",
		Args: map[string]any{"delta": 10.0}})
	km.AddBinding(Binding{Keys: "PageDown", Command: command.ValueChange, Category: "Value",
		Args: map[string]any{"delta": -10.0}})

	return km
}

// LoadDefaults registers the built-in keymap.
func LoadDefaults(r *Registry) error {
	return r.Register(DefaultKeymap())
}
