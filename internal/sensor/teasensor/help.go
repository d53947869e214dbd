package teasensor

import (
	"slices"
	"strings"

	bkey "github.com/charmbracelet/bubbles/key"

	"github.com/dshills/focuskit/internal/input/key"
	"github.com/dshills/focuskit/internal/input/keymap"
)

// HelpBindings returns the keymap's bindings in scope for ctx as Bubble Tea
// key bindings, best first, for use with the bubbles help view. Bindings a
// terminal cannot deliver are left out. A nil ctx lists global bindings.
func HelpBindings(r *keymap.Registry, ctx *keymap.LookupContext) []bkey.Binding {
	var out []bkey.Binding
	seen := make(map[string]bool)

	for _, m := range r.AllBindings(ctx) {
		b := m.Binding
		events, err := key.ParseBinding(b.Keys)
		if err != nil {
			continue
		}
		var keys []string
		for _, ev := range events {
			if s, ok := TeaString(ev); ok && !slices.Contains(keys, s) {
				keys = append(keys, s)
			}
		}
		if len(keys) == 0 {
			continue
		}

		id := strings.Join(keys, ",") + "\x00" + b.Command
		if seen[id] {
			continue
		}
		seen[id] = true

		desc := b.Description
		if desc == "" {
			desc = b.Command
		}
		out = append(out, bkey.NewBinding(
			bkey.WithKeys(keys...),
			bkey.WithHelp(keys[0], desc),
		))
	}
	return out
}

var teaNames = map[key.Key]string{
	key.KeyEscape:    "esc",
	key.KeyEnter:     "enter",
	key.KeyTab:       "tab",
	key.KeyBackspace: "backspace",
	key.KeyDelete:    "delete",
	key.KeyInsert:    "insert",
	key.KeyHome:      "home",
	key.KeyEnd:       "end",
	key.KeyPageUp:    "pgup",
	key.KeyPageDown:  "pgdown",
	key.KeyUp:        "up",
	key.KeyDown:      "down",
	key.KeyLeft:      "left",
	key.KeyRight:     "right",
	key.KeySpace:     " ",
	key.KeyF1:        "f1",
	key.KeyF2:        "f2",
	key.KeyF3:        "f3",
	key.KeyF4:        "f4",
	key.KeyF5:        "f5",
	key.KeyF6:        "f6",
	key.KeyF7:        "f7",
	key.KeyF8:        "f8",
	key.KeyF9:        "f9",
	key.KeyF10:       "f10",
	key.KeyF11:       "f11",
	key.KeyF12:       "f12",
}

// TeaString returns the Bubble Tea key string for ev, as produced by
// tea.KeyMsg.String. It reports false for keys a terminal does not send,
// such as Meta chords and Ctrl with non-letters.
func TeaString(ev key.Event) (string, bool) {
	mods := ev.Modifiers
	if mods.HasMeta() {
		return "", false
	}

	var name string
	if ev.Key == key.KeyRune {
		r := ev.Rune
		lower := r >= 'a' && r <= 'z'
		upper := r >= 'A' && r <= 'Z'
		switch {
		case mods.HasCtrl():
			if !lower && !upper || mods.HasShift() {
				return "", false
			}
			name = "ctrl+" + strings.ToLower(string(r))
		case lower || upper:
			if mods.HasShift() {
				name = strings.ToUpper(string(r))
			} else {
				name = strings.ToLower(string(r))
			}
		default:
			name = string(r)
		}
	} else {
		base, ok := teaNames[ev.Key]
		if !ok {
			return "", false
		}
		name = base
		switch {
		case mods.HasCtrl() && mods.HasShift():
			return "", false
		case mods.HasShift() && ev.Key == key.KeyTab:
			name = "shift+tab"
		case mods.HasShift() && (ev.Key.IsArrowKey() || ev.Key == key.KeyHome || ev.Key == key.KeyEnd):
			name = "shift+" + base
		case mods.HasCtrl() && ev.Key.IsArrowKey():
			name = "ctrl+" + base
		case mods.HasShift() || mods.HasCtrl():
			return "", false
		}
	}

	if mods.HasAlt() {
		name = "alt+" + name
	}
	return name, true
}
