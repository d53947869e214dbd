// Package zone implements the zone registry.
//
// A zone is a focusable container implementing one ARIA pattern. It holds
// an ordered list of item ids, a role-derived Config and optional interaction
// callbacks. The registry is an explicit object owned by a kernel; there is
// no package-level registry.
package zone

import (
	"math"
	"slices"

	"github.com/dshills/focuskit/internal/command"
)

// Cursor is passed once to an interaction callback per dispatched command.
// Selection is empty (not nil) when nothing is selected, in which case the
// callback treats FocusID as an implicit single-item target.
type Cursor struct {
	FocusID   string
	Selection []string
	Anchor    string
}

// Targets returns the ids the operation applies to: the selection, or the
// focused item when the selection is empty.
func (c Cursor) Targets() []string {
	if len(c.Selection) > 0 {
		return slices.Clone(c.Selection)
	}
	if c.FocusID == "" {
		return []string{}
	}
	return []string{c.FocusID}
}

// Callback handles an interaction command for a zone and returns follow-up
// commands for the kernel to dispatch.
type Callback func(Cursor) []command.Command

// PasteCallback receives the structured clipboard payload. It reports false
// when the zone does not accept the payload, letting paste bubble to the
// parent zone.
type PasteCallback func(cur Cursor, payload any) ([]command.Command, bool)

// ValueCallback is called with an item's updated value range.
type ValueCallback func(itemID string, v ValueRange) []command.Command

// Callbacks are the optional interaction capabilities of a zone.
// A nil field means the capability is absent.
type Callbacks struct {
	OnDelete      Callback
	OnCopy        Callback
	OnCut         Callback
	OnPaste       PasteCallback
	OnMoveUp      Callback
	OnMoveDown    Callback
	OnCheck       Callback
	OnAction      Callback
	OnUndo        Callback
	OnRedo        Callback
	OnDismiss     Callback
	OnValueChange ValueCallback
}

// For returns the cursor callback for a command type, or nil.
func (c Callbacks) For(typ string) Callback {
	switch typ {
	case command.Delete:
		return c.OnDelete
	case command.Copy:
		return c.OnCopy
	case command.Cut:
		return c.OnCut
	case command.MoveUp:
		return c.OnMoveUp
	case command.MoveDown:
		return c.OnMoveDown
	case command.Check:
		return c.OnCheck
	case command.Activate:
		return c.OnAction
	case command.Undo:
		return c.OnUndo
	case command.Redo:
		return c.OnRedo
	case command.Escape:
		return c.OnDismiss
	default:
		return nil
	}
}

// Has reports whether the zone handles a command type through a callback.
func (c Callbacks) Has(typ string) bool {
	if typ == command.Paste {
		return c.OnPaste != nil
	}
	if typ == command.ValueChange {
		return c.OnValueChange != nil
	}
	return c.For(typ) != nil
}

// ValueRange is the value of a range item such as a slider thumb.
type ValueRange struct {
	Min  float64
	Max  float64
	Step float64
	Now  float64
}

// Clamp returns v clamped to [Min, Max].
func (r ValueRange) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// Apply returns the range moved by steps steps.
func (r ValueRange) Apply(steps float64) ValueRange {
	step := r.Step
	if step <= 0 {
		step = 1
	}
	r.Now = r.Clamp(r.Now + steps*step)
	return r
}

// Metadata describes a registered zone.
type Metadata struct {
	ID       string
	ParentID string
	Config   Config

	// Items are the zone's item ids in document order.
	Items []string

	// Element is an opaque handle to the host's UI element.
	Element any

	Callbacks Callbacks

	// Disabled marks items that are skipped when SkipDisabled is set.
	Disabled map[string]bool

	// Labels are item labels used by typeahead.
	Labels map[string]string

	// Values are the ranges of value items.
	Values map[string]ValueRange

	// Parents marks items that own children (tree nodes) and so carry
	// aria-expanded.
	Parents map[string]bool
}

// Clone returns a copy whose item list does not alias m's.
func (m Metadata) Clone() Metadata {
	m.Items = slices.Clone(m.Items)
	return m
}

// IndexOf returns the index of an item, or -1.
func (m Metadata) IndexOf(id string) int {
	return slices.Index(m.Items, id)
}

// HasItem reports whether id is one of the zone's items.
func (m Metadata) HasItem(id string) bool {
	return slices.Contains(m.Items, id)
}

// IsDisabled reports whether an item is disabled.
func (m Metadata) IsDisabled(id string) bool {
	return m.Disabled[id]
}

// Label returns the typeahead label of an item, defaulting to its id.
func (m Metadata) Label(id string) string {
	if l, ok := m.Labels[id]; ok {
		return l
	}
	return id
}

// Enabled returns the items that can take focus. Disabled items are removed
// only when the zone skips them.
func (m Metadata) Enabled() []string {
	if !m.Config.SkipDisabled || len(m.Disabled) == 0 {
		return m.Items
	}
	out := make([]string, 0, len(m.Items))
	for _, id := range m.Items {
		if !m.Disabled[id] {
			out = append(out, id)
		}
	}
	return out
}
