// Package command defines the command value that flows through the kernel.
//
// Every state change in the kernel is the result of dispatching a Command.
// Sensors build commands from input events, zone callbacks return commands
// for the kernel to dispatch, and application code registers handlers for
// its own command types next to the built-in OS commands declared here.
package command

// Source indicates the origin of a command.
type Source uint8

const (
	// SourceAPI indicates the command was dispatched directly by code.
	SourceAPI Source = iota
	// SourceKeyboard indicates the command originated from keyboard input.
	SourceKeyboard
	// SourcePointer indicates the command originated from pointer input.
	SourcePointer
	// SourceFocus indicates the command originated from a focus event.
	SourceFocus
	// SourceCallback indicates the command was returned by a zone callback.
	SourceCallback
	// SourceRecovery indicates the command was issued by focus recovery.
	SourceRecovery
)

// String returns a string representation of the source.
func (s Source) String() string {
	switch s {
	case SourceAPI:
		return "api"
	case SourceKeyboard:
		return "keyboard"
	case SourcePointer:
		return "pointer"
	case SourceFocus:
		return "focus"
	case SourceCallback:
		return "callback"
	case SourceRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// Meta describes where a command came from.
type Meta struct {
	// Source is the origin of the command.
	Source Source

	// Key is the canonical key string for keyboard commands (e.g. "Meta+Z").
	Key string

	// Code is the physical key code for keyboard commands (e.g. "KeyZ").
	Code string

	// ElementID is the item or element the input event targeted.
	ElementID string
}

// Command is a request to change kernel or application state.
type Command struct {
	// Type is the command identifier (e.g. "OS_NAVIGATE", "todo.delete").
	Type string

	// Payload carries command-specific arguments.
	Payload any

	// Meta describes the command's origin.
	Meta Meta

	// NoLog excludes the command from undo history even if it changes data.
	NoLog bool
}

// New creates a command with the given type and payload.
func New(typ string, payload any) Command {
	return Command{Type: typ, Payload: payload}
}

// WithMeta returns a copy of the command with meta set.
func (c Command) WithMeta(meta Meta) Command {
	c.Meta = meta
	return c
}

// WithSource returns a copy of the command with the meta source set.
func (c Command) WithSource(src Source) Command {
	c.Meta.Source = src
	return c
}

// WithoutLog returns a copy of the command that history will not record.
func (c Command) WithoutLog() Command {
	c.NoLog = true
	return c
}

// IsZero reports whether the command has no type.
func (c Command) IsZero() bool {
	return c.Type == ""
}
