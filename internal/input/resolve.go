package input

import (
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/input/key"
	"github.com/dshills/focuskit/internal/input/keymap"
)

// Kind is the outcome of keyboard resolution.
type Kind uint8

const (
	// Ignore drops the event.
	Ignore Kind = iota
	// Check toggles the focused checkable item.
	Check
	// Dispatch sends a bound command to the kernel.
	Dispatch
	// Fallback leaves the event to the host.
	Fallback
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Ignore:
		return "ignore"
	case Check:
		return "check"
	case Dispatch:
		return "dispatch"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving one key event.
type Resolution struct {
	Kind Kind

	// TargetID is the item to check for Check resolutions.
	TargetID string

	// Command is set for Check and Dispatch resolutions.
	Command command.Command

	// Class is the classification of the event.
	Class Class

	// Reason names the guard for Ignore resolutions.
	Reason string
}

// Bindings finds keybindings. *keymap.Registry implements it.
type Bindings interface {
	Lookup(ev key.Event, ctx *keymap.LookupContext) *keymap.Binding
}

// Resolve maps an input to its action. bindings may be nil.
func Resolve(in Input, bindings Bindings) Resolution {
	switch {
	case in.Composing:
		return Resolution{Kind: Ignore, Reason: "composing"}
	case in.DefaultPrevented:
		return Resolution{Kind: Ignore, Reason: "prevented"}
	case in.FromInspector:
		return Resolution{Kind: Ignore, Reason: "inspector"}
	case in.FromCombobox:
		return Resolution{Kind: Ignore, Reason: "combobox"}
	}

	class := Classify(in)
	meta := command.Meta{
		Source:    command.SourceKeyboard,
		Key:       in.Event.String(),
		Code:      in.Event.Code,
		ElementID: in.ItemID,
	}

	if in.Event.IsSpace() && !in.Editing && in.ItemID != "" &&
		(isCheckRole(in.ItemRole) || in.CanCheck) {
		cmd := command.New(command.Check, command.ItemPayload{ZoneID: in.ZoneID, ItemID: in.ItemID})
		return Resolution{Kind: Check, TargetID: in.ItemID, Command: cmd.WithMeta(meta), Class: class}
	}

	if bindings != nil {
		if b := bindings.Lookup(in.Event, in.LookupContext()); b != nil {
			return Resolution{Kind: Dispatch, Command: b.ToCommand().WithMeta(meta), Class: class}
		}
	}

	if class == ClassPassthru && in.Typeahead {
		cmd := command.New(command.Typeahead, command.TypeaheadPayload{Char: in.Event.Rune})
		return Resolution{Kind: Dispatch, Command: cmd.WithMeta(meta), Class: class}
	}

	return Resolution{Kind: Fallback, Class: class}
}
