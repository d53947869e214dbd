// Package key provides key event types and parsing for keyboard resolution.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a keyboard key (named keys, function keys, or runes)
//   - Modifier: Represents modifier keys (Ctrl, Alt, Meta, Shift)
//   - Event: A single key press with modifiers, physical code and timestamp
//
// # Canonical Strings
//
// Every event has one canonical string used for keybinding lookup.
// Modifiers come first in the fixed order Ctrl, Alt, Meta, Shift, followed
// by the DOM-style key name. Letters are uppercased:
//
//	ArrowDown  Shift+Tab  Ctrl+A  Meta+Shift+Z  F2  Space
//
// Binding specifications may use the "Mod" alias, which ParseBinding expands
// to both Ctrl and Meta.
package key
