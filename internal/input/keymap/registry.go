package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/focuskit/internal/input/key"
)

// Registry manages all keymaps and provides binding lookup.
type Registry struct {
	mu sync.RWMutex

	// keymaps holds all registered keymaps by name.
	keymaps map[string]*registered

	// index maps canonical key strings to bindings.
	index map[string][]indexEntry

	// seq orders registrations so later ones win ties.
	seq int

	// conditionEvaluator evaluates "when" conditions.
	conditionEvaluator ConditionEvaluator
}

type registered struct {
	keymap *Keymap
	parsed []parsedBinding
	seq    int
}

type indexEntry struct {
	binding *parsedBinding
	keymap  *Keymap
	seq     int
}

// ConditionEvaluator evaluates binding conditions.
type ConditionEvaluator interface {
	// Evaluate evaluates a condition expression against the current context.
	Evaluate(condition string, ctx *LookupContext) bool
}

// LookupContext provides context for binding lookup.
type LookupContext struct {
	// ZoneID is the active zone.
	ZoneID string

	// Role is the active zone's role.
	Role string

	// Editing reports that the focused item is in text-editing mode.
	Editing bool

	// Conditions holds current condition values.
	// Keys: "editing", "selectable", "hasSelection", etc.
	Conditions map[string]bool

	// Variables holds context variables.
	// Keys: "role", "zone", etc.
	Variables map[string]string
}

// NewLookupContext creates a new lookup context.
func NewLookupContext() *LookupContext {
	return &LookupContext{
		Conditions: make(map[string]bool),
		Variables:  make(map[string]string),
	}
}

// NewRegistry creates a new keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps:            make(map[string]*registered),
		index:              make(map[string][]indexEntry),
		conditionEvaluator: &DefaultConditionEvaluator{},
	}
}

// SetConditionEvaluator sets the condition evaluator.
func (r *Registry) SetConditionEvaluator(eval ConditionEvaluator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conditionEvaluator = eval
}

// Register adds a keymap to the registry.
// If a keymap with the same name already exists, it is replaced.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return fmt.Errorf("cannot register nil keymap")
	}

	parsed, err := km.parse()
	if err != nil {
		return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)

	r.seq++
	reg := &registered{keymap: km, parsed: parsed, seq: r.seq}
	r.keymaps[km.Name] = reg
	for i := range reg.parsed {
		pb := &reg.parsed[i]
		for _, ev := range pb.Events {
			s := ev.String()
			r.index[s] = append(r.index[s], indexEntry{binding: pb, keymap: km, seq: reg.seq})
		}
	}
	return nil
}

// Unregister removes a keymap from the registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

// unregisterLocked removes a keymap without acquiring the lock.
// Caller must hold the write lock.
func (r *Registry) unregisterLocked(name string) {
	reg, ok := r.keymaps[name]
	if !ok {
		return
	}
	for s, entries := range r.index {
		filtered := entries[:0]
		for _, e := range entries {
			if e.keymap != reg.keymap {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == 0 {
			delete(r.index, s)
		} else {
			r.index[s] = filtered
		}
	}
	delete(r.keymaps, name)
}

// Replace atomically swaps every keymap from source for kms. It is used to
// hot-reload a keymap file.
func (r *Registry) Replace(source string, kms []*Keymap) error {
	for _, km := range kms {
		if err := km.Validate(); err != nil {
			return fmt.Errorf("parsing keymap %q: %w", km.Name, err)
		}
	}

	r.mu.Lock()
	var stale []string
	for name, reg := range r.keymaps {
		if reg.keymap.Source == source {
			stale = append(stale, name)
		}
	}
	for _, name := range stale {
		r.unregisterLocked(name)
	}
	r.mu.Unlock()

	for _, km := range kms {
		if km.Source == "" {
			km.Source = source
		}
		if err := r.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a keymap by name.
func (r *Registry) Get(name string) *Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if reg, ok := r.keymaps[name]; ok {
		return reg.keymap
	}
	return nil
}

// Lookup finds the best matching binding for a key event.
// If ctx is nil, a default empty context is used.
func (r *Registry) Lookup(ev key.Event, ctx *LookupContext) *Binding {
	matches := r.LookupAll(ev, ctx)
	if len(matches) == 0 {
		return nil
	}
	b := matches[0].Binding
	return &b
}

// LookupAll finds all matching bindings for a key event, best first.
// If ctx is nil, a default empty context is used.
func (r *Registry) LookupAll(ev key.Event, ctx *LookupContext) []BindingMatch {
	if ctx == nil {
		ctx = NewLookupContext()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]BindingMatch, 0)
	for _, e := range r.index[ev.String()] {
		if !inScope(e.keymap, ctx) {
			continue
		}
		if ctx.Editing && !e.binding.AllowInField {
			continue
		}
		if e.binding.When != "" && !r.conditionEvaluator.Evaluate(e.binding.When, ctx) {
			continue
		}
		m := BindingMatch{Binding: e.binding.Binding, Keymap: e.keymap, seq: e.seq}
		m.calculateScore()
		matches = append(matches, m)
	}
	sortMatches(matches)
	return matches
}

func inScope(km *Keymap, ctx *LookupContext) bool {
	if km.Zone != "" && km.Zone != ctx.ZoneID {
		return false
	}
	if km.Role != "" && km.Role != ctx.Role {
		return false
	}
	return true
}

func sortMatches(matches []BindingMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].seq > matches[j].seq
	})
}

// Keymaps returns all registered keymaps in registration order.
func (r *Registry) Keymaps() []*Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]*registered, 0, len(r.keymaps))
	for _, reg := range r.keymaps {
		regs = append(regs, reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].seq < regs[j].seq })

	result := make([]*Keymap, len(regs))
	for i, reg := range regs {
		result[i] = reg.keymap
	}
	return result
}

// AllBindings returns every binding in scope for ctx, best first.
func (r *Registry) AllBindings(ctx *LookupContext) []BindingMatch {
	if ctx == nil {
		ctx = NewLookupContext()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]BindingMatch, 0)
	for _, reg := range r.keymaps {
		if !inScope(reg.keymap, ctx) {
			continue
		}
		for _, pb := range reg.parsed {
			m := BindingMatch{Binding: pb.Binding, Keymap: reg.keymap, seq: reg.seq}
			m.calculateScore()
			matches = append(matches, m)
		}
	}
	sortMatches(matches)
	return matches
}
