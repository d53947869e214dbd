package input

import (
	"github.com/dshills/focuskit/internal/input/key"
	"github.com/dshills/focuskit/internal/input/keymap"
)

// Class is the coarse category of a key event.
type Class uint8

const (
	// ClassCommand keys go through keybinding resolution.
	ClassCommand Class = iota
	// ClassField keys belong to the text field being edited.
	ClassField
	// ClassPassthru keys are plain characters outside a field.
	ClassPassthru
)

// String returns a string representation of the class.
func (c Class) String() string {
	switch c {
	case ClassCommand:
		return "COMMAND"
	case ClassField:
		return "FIELD"
	case ClassPassthru:
		return "PASSTHRU"
	default:
		return "unknown"
	}
}

// Input is a sensed key event plus the context needed to resolve it.
type Input struct {
	// Event is the key pressed.
	Event key.Event

	// Composing is set while an IME composition is active.
	Composing bool

	// DefaultPrevented is set when another listener already handled the event.
	DefaultPrevented bool

	// FromInspector is set for events originating in the inspector subtree.
	FromInspector bool

	// FromCombobox is set for events originating in a combobox widget.
	FromCombobox bool

	// Editing is set when the focused item is in text-editing mode.
	Editing bool

	// ZoneID is the active zone.
	ZoneID string

	// Role is the active zone's role.
	Role string

	// ItemID is the focused item.
	ItemID string

	// ItemRole is the focused item's role ("checkbox", "switch", ...).
	ItemRole string

	// CanCheck reports that the active zone has a check capability.
	CanCheck bool

	// Typeahead reports that the active zone accepts typeahead.
	Typeahead bool

	// Conditions are extra flags for keybinding "when" clauses.
	Conditions map[string]bool
}

// LookupContext builds the keymap lookup context for this input.
func (in Input) LookupContext() *keymap.LookupContext {
	ctx := keymap.NewLookupContext()
	ctx.ZoneID = in.ZoneID
	ctx.Role = in.Role
	ctx.Editing = in.Editing
	for name, v := range in.Conditions {
		ctx.Conditions[name] = v
	}
	ctx.Conditions["editing"] = in.Editing
	ctx.Variables["zone"] = in.ZoneID
	ctx.Variables["role"] = in.Role
	ctx.Variables["itemRole"] = in.ItemRole
	return ctx
}

// Classify returns the class of a key event.
func Classify(in Input) Class {
	ev := in.Event
	if in.Editing && isFieldKey(ev) {
		return ClassField
	}
	if ev.IsChar() && !ev.IsModified() {
		return ClassPassthru
	}
	return ClassCommand
}

// isFieldKey reports whether a text field consumes ev while editing.
func isFieldKey(ev key.Event) bool {
	if ev.IsModified() {
		return false
	}
	if ev.IsChar() {
		return true
	}
	switch ev.Key {
	case key.KeySpace, key.KeyBackspace, key.KeyDelete,
		key.KeyLeft, key.KeyRight, key.KeyHome, key.KeyEnd:
		return true
	}
	return false
}

// isCheckRole reports whether an item role toggles on Space.
func isCheckRole(role string) bool {
	return role == "checkbox" || role == "switch"
}
