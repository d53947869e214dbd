package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "?"
//   - Named keys: "Enter", "Escape", "Tab", "Space", "ArrowUp" (or "Up")
//   - With modifiers: "Ctrl+S", "Alt+ArrowUp", "Meta+Shift+Z"
//
// Letters are case-insensitive: "Ctrl+a" and "Ctrl+A" are the same key.
// The platform alias "Mod" is not accepted here; use ParseBinding.
func Parse(spec string) (Event, error) {
	if strings.TrimSpace(spec) == "" {
		return Event{}, ErrEmptySpec
	}
	if spec == "+" {
		return NewRuneEvent('+', ModNone), nil
	}

	parts := strings.Split(spec, "+")
	// "Ctrl++" ends with an empty part for the plus key.
	if strings.HasSuffix(spec, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKey(parts[len(parts)-1], mods)
}

func parseKey(keyPart string, mods Modifier) (Event, error) {
	if keyPart != " " {
		keyPart = strings.TrimSpace(keyPart)
	}
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	return NewRuneEvent(unicode.ToUpper(runes[0]), mods), nil
}

// ParseBinding parses a binding specification, expanding the "Mod" alias
// into its Ctrl and Meta variants so one binding serves every platform.
func ParseBinding(spec string) ([]Event, error) {
	parts := strings.Split(spec, "+")
	hasMod := false
	for _, p := range parts[:len(parts)-1] {
		if strings.EqualFold(strings.TrimSpace(p), "mod") {
			hasMod = true
			break
		}
	}
	if !hasMod {
		ev, err := Parse(spec)
		if err != nil {
			return nil, err
		}
		return []Event{ev}, nil
	}

	var out []Event
	for _, name := range []string{"Ctrl", "Meta"} {
		replaced := make([]string, len(parts))
		for i, p := range parts {
			if i < len(parts)-1 && strings.EqualFold(strings.TrimSpace(p), "mod") {
				p = name
			}
			replaced[i] = p
		}
		ev, err := Parse(strings.Join(replaced, "+"))
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// Canonical parses and re-formats a key specification to its canonical form.
func Canonical(spec string) (string, error) {
	event, err := Parse(spec)
	if err != nil {
		return "", err
	}
	return event.String(), nil
}
