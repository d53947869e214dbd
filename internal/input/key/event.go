package key

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Event represents a single key press event.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Code is the physical key code reported by the host (e.g. "KeyZ").
	// It is informational and not part of the canonical string.
	Code string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	if r == ' ' {
		return NewSpecialEvent(KeySpace, mods)
	}
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified returns true if Ctrl, Alt or Meta is pressed.
// Shift alone does not count since it changes the character itself.
func (e Event) IsModified() bool {
	return e.Modifiers&(ModCtrl|ModAlt|ModMeta) != 0
}

// IsSpecial returns true if this is a special (non-character) key.
func (e Event) IsSpecial() bool {
	return e.Key.IsSpecial()
}

// Name returns the canonical key name without modifiers. Letters are
// uppercased; other characters are returned as typed.
func (e Event) Name() string {
	if e.Key == KeyRune {
		return string(unicode.ToUpper(e.Rune))
	}
	return e.Key.String()
}

// mods returns the modifiers that appear in the canonical string. Shift is
// dropped for non-letter characters because it is already part of the rune.
func (e Event) mods() Modifier {
	if e.Key == KeyRune && !unicode.IsLetter(e.Rune) {
		return e.Modifiers.Without(ModShift)
	}
	return e.Modifiers
}

// String returns the canonical string used for keybinding lookup.
// Examples: "ArrowDown", "Shift+Tab", "Meta+Shift+Z", "Ctrl+A", "?".
func (e Event) String() string {
	parts := e.mods().parts()
	return strings.Join(append(parts, e.Name()), "+")
}

// Equals returns true if two events represent the same key press.
// Timestamps and codes are not compared.
func (e Event) Equals(other Event) bool {
	return e.String() == other.String()
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// IsEscape returns true if this is the Escape key (with no modifiers).
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsSpace returns true if this is the Space key (with no modifiers).
func (e Event) IsSpace() bool {
	return e.Key == KeySpace && e.Modifiers == ModNone
}

// WithModifier returns a copy with the specified modifier added.
func (e Event) WithModifier(mod Modifier) Event {
	e.Modifiers = e.Modifiers.With(mod)
	return e
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
