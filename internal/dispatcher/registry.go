package dispatcher

import (
	"sort"
	"sync"

	"github.com/dshills/focuskit/internal/dispatcher/handler"
)

// GlobalScope is the scope of handlers that apply in every zone.
const GlobalScope = ""

// Entry is a registered handler with its optional when guard.
type Entry struct {
	Handler handler.Handler
	When    handler.Guard
	Scope   string
}

// Registry manages handler registration by command type and scope.
// A scope is a zone id or GlobalScope.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]map[string][]Entry // scope -> type -> entries (sorted by priority)
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]map[string][]Entry),
	}
}

// Register adds a global handler for a command type.
func (r *Registry) Register(typ string, h handler.Handler) {
	r.RegisterScoped(GlobalScope, typ, h, nil)
}

// RegisterScoped adds a handler for a command type within a scope.
// Multiple handlers can be registered for the same type; they are sorted by
// priority, and equal priorities keep registration order.
func (r *Registry) RegisterScoped(scope, typ string, h handler.Handler, when handler.Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byType := r.handlers[scope]
	if byType == nil {
		byType = make(map[string][]Entry)
		r.handlers[scope] = byType
	}

	entries := append(byType[typ], Entry{Handler: h, When: when, Scope: scope})

	// Sort by priority (descending)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Handler.Priority() > entries[j].Handler.Priority()
	})

	byType[typ] = entries
}

// Unregister removes all global handlers for a command type.
func (r *Registry) Unregister(typ string) {
	r.UnregisterScoped(GlobalScope, typ)
}

// UnregisterScoped removes all handlers for a command type within a scope.
func (r *Registry) UnregisterScoped(scope, typ string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if byType := r.handlers[scope]; byType != nil {
		delete(byType, typ)
		if len(byType) == 0 {
			delete(r.handlers, scope)
		}
	}
}

// UnregisterScope removes every handler registered within a scope.
func (r *Registry) UnregisterScope(scope string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, scope)
}

// Get returns the highest priority global handler for a command type.
// Returns nil if no handler is registered.
func (r *Registry) Get(typ string) handler.Handler {
	e, ok := r.Lookup(typ, nil)
	if !ok {
		return nil
	}
	return e.Handler
}

// Lookup returns the highest priority entry for a command type, searching
// scopes in order and falling back to the global scope.
func (r *Registry) Lookup(typ string, scopes []string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, scope := range scopes {
		if scope == GlobalScope {
			continue
		}
		if entries := r.handlers[scope][typ]; len(entries) > 0 {
			return entries[0], true
		}
	}
	if entries := r.handlers[GlobalScope][typ]; len(entries) > 0 {
		return entries[0], true
	}
	return Entry{}, false
}

// Has returns true if a global handler is registered for the command type.
func (r *Registry) Has(typ string) bool {
	_, ok := r.Lookup(typ, nil)
	return ok
}

// List returns all command types registered in a scope.
func (r *Registry) List(scope string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers[scope]))
	for name := range r.handlers[scope] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered command types across all scopes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, byType := range r.handlers {
		n += len(byType)
	}
	return n
}

// Clear removes all registered handlers.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = make(map[string]map[string][]Entry)
}
