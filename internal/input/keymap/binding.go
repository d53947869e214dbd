package keymap

import (
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/input/key"
)

// Binding represents a single key-to-command mapping.
type Binding struct {
	// Keys is the key specification that triggers this binding.
	// Formats: "ArrowDown", "Shift+Tab", "Mod+Z", "Ctrl+Y"
	Keys string `json:"keys" toml:"keys" yaml:"keys"`

	// Command is the command type to dispatch.
	// Examples: "OS_NAVIGATE", "OS_UNDO", "todo.toggle"
	Command string `json:"command" toml:"command" yaml:"command"`

	// Args are fixed arguments for the command.
	Args map[string]any `json:"args,omitempty" toml:"args,omitempty" yaml:"args,omitempty"`

	// When is a condition expression that must be true for this binding.
	// Examples: "editing", "!editing", "role == grid"
	When string `json:"when,omitempty" toml:"when,omitempty" yaml:"when,omitempty"`

	// AllowInField keeps the binding active while an item is in
	// text-editing mode. Other bindings are skipped while editing.
	AllowInField bool `json:"allowInField,omitempty" toml:"allow_in_field,omitempty" yaml:"allowInField,omitempty"`

	// Description provides documentation for the binding.
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`

	// Priority determines precedence when multiple bindings match.
	// Higher priority wins. Default is 0.
	Priority int `json:"priority,omitempty" toml:"priority,omitempty" yaml:"priority,omitempty"`

	// Category groups bindings for display purposes.
	Category string `json:"category,omitempty" toml:"category,omitempty" yaml:"category,omitempty"`
}

// NewBinding creates a new binding with the given keys and command.
func NewBinding(keys, cmd string) Binding {
	return Binding{
		Keys:    keys,
		Command: cmd,
	}
}

// WithArgs sets arguments for this binding.
func (b Binding) WithArgs(args map[string]any) Binding {
	b.Args = args
	return b
}

// WithWhen sets the condition for this binding.
func (b Binding) WithWhen(when string) Binding {
	b.When = when
	return b
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// InField marks the binding as active while editing.
func (b Binding) InField() Binding {
	b.AllowInField = true
	return b
}

// ToCommand builds the command dispatched by this binding. Arguments of
// built-in commands are converted to their typed payloads; other commands
// receive the Args map as payload.
func (b Binding) ToCommand() command.Command {
	switch b.Command {
	case command.Navigate:
		return command.New(b.Command, command.NavigatePayload{
			Direction: geom.ParseDirection(argString(b.Args, "direction")),
			Extend:    argBool(b.Args, "extend"),
		})
	case command.Tab:
		return command.New(b.Command, command.TabPayload{Backward: argBool(b.Args, "backward")})
	case command.Select:
		return command.New(b.Command, command.SelectPayload{
			Toggle: argBool(b.Args, "toggle"),
			Range:  argBool(b.Args, "range"),
		})
	case command.ValueChange:
		return command.New(b.Command, command.ValuePayload{
			Delta: argFloat(b.Args, "delta"),
			ToMin: argBool(b.Args, "toMin"),
			ToMax: argBool(b.Args, "toMax"),
		})
	}
	if len(b.Args) == 0 {
		return command.New(b.Command, nil)
	}
	return command.New(b.Command, b.Args)
}

func argString(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

func argBool(args map[string]any, name string) bool {
	v, _ := args[name].(bool)
	return v
}

func argFloat(args map[string]any, name string) float64 {
	switch v := args[name].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// parsedBinding is a binding with its expanded key events.
type parsedBinding struct {
	Binding
	Events []key.Event
}

// BindingMatch represents a matched binding with its context.
type BindingMatch struct {
	Binding Binding

	// Keymap is the keymap containing the binding.
	Keymap *Keymap

	// Score is used for sorting matches by precedence.
	Score int

	seq int
}

// calculateScore computes the precedence score for this match.
func (bm *BindingMatch) calculateScore() {
	bm.Score = bm.Keymap.Priority*100 + bm.Binding.Priority
	switch {
	case bm.Keymap.Zone != "":
		bm.Score += 10000
	case bm.Keymap.Role != "":
		bm.Score += 5000
	}
}

// BindingCategory represents a category of bindings for display.
type BindingCategory struct {
	Name     string
	Bindings []Binding
}

// GroupByCategory groups bindings by their category.
func GroupByCategory(bindings []Binding) []BindingCategory {
	categoryMap := make(map[string][]Binding)
	order := make([]string, 0)

	for _, b := range bindings {
		cat := b.Category
		if cat == "" {
			cat = "Other"
		}
		if _, exists := categoryMap[cat]; !exists {
			order = append(order, cat)
		}
		categoryMap[cat] = append(categoryMap[cat], b)
	}

	result := make([]BindingCategory, 0, len(order))
	for _, name := range order {
		result = append(result, BindingCategory{
			Name:     name,
			Bindings: categoryMap[name],
		})
	}
	return result
}
