package keymap

import (
	"fmt"

	"github.com/dshills/focuskit/internal/input/key"
)

// Keymap holds key bindings for a scope.
type Keymap struct {
	// Name is the keymap identifier.
	Name string `json:"name" toml:"name" yaml:"name"`

	// Zone restricts the keymap to one zone id.
	Zone string `json:"zone,omitempty" toml:"zone,omitempty" yaml:"zone,omitempty"`

	// Role restricts the keymap to zones of one role.
	Role string `json:"role,omitempty" toml:"role,omitempty" yaml:"role,omitempty"`

	// Bindings are the key-to-command mappings.
	Bindings []Binding `json:"bindings" toml:"bindings" yaml:"bindings"`

	// Priority determines precedence when multiple keymaps match.
	// Higher priority wins. Default is 0.
	Priority int `json:"priority,omitempty" toml:"priority,omitempty" yaml:"priority,omitempty"`

	// Source indicates where this keymap was defined.
	// Examples: "default", "user", "app"
	Source string `json:"source,omitempty" toml:"source,omitempty" yaml:"source,omitempty"`
}

// NewKeymap creates a new keymap with the given name.
func NewKeymap(name string) *Keymap {
	return &Keymap{
		Name:     name,
		Bindings: make([]Binding, 0),
	}
}

// ForZone scopes the keymap to a zone id.
func (k *Keymap) ForZone(zoneID string) *Keymap {
	k.Zone = zoneID
	return k
}

// ForRole scopes the keymap to a zone role.
func (k *Keymap) ForRole(role string) *Keymap {
	k.Role = role
	return k
}

// WithPriority sets the priority for this keymap.
func (k *Keymap) WithPriority(priority int) *Keymap {
	k.Priority = priority
	return k
}

// WithSource sets the source for this keymap.
func (k *Keymap) WithSource(source string) *Keymap {
	k.Source = source
	return k
}

// Add adds a binding to this keymap.
func (k *Keymap) Add(keys, cmd string) *Keymap {
	k.Bindings = append(k.Bindings, NewBinding(keys, cmd))
	return k
}

// AddBinding adds a fully configured binding to this keymap.
func (k *Keymap) AddBinding(binding Binding) *Keymap {
	k.Bindings = append(k.Bindings, binding)
	return k
}

// Validate checks that all bindings in the keymap are valid.
func (k *Keymap) Validate() error {
	_, err := k.parse()
	return err
}

func (k *Keymap) parse() ([]parsedBinding, error) {
	parsed := make([]parsedBinding, 0, len(k.Bindings))
	for i, b := range k.Bindings {
		if b.Keys == "" {
			return nil, fmt.Errorf("binding %d: empty keys", i)
		}
		if b.Command == "" {
			return nil, fmt.Errorf("binding %d (%s): empty command", i, b.Keys)
		}
		events, err := key.ParseBinding(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%s): %w", i, b.Keys, err)
		}
		parsed = append(parsed, parsedBinding{Binding: b, Events: events})
	}
	return parsed, nil
}

// Clone creates a deep copy of the keymap.
func (k *Keymap) Clone() *Keymap {
	clone := *k
	clone.Bindings = make([]Binding, len(k.Bindings))
	for i, b := range k.Bindings {
		clone.Bindings[i] = b
		if b.Args != nil {
			clone.Bindings[i].Args = make(map[string]any, len(b.Args))
			for name, v := range b.Args {
				clone.Bindings[i].Args[name] = v
			}
		}
	}
	return &clone
}
