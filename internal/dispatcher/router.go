package dispatcher

import (
	"strings"
	"sync"

	"github.com/dshills/focuskit/internal/dispatcher/handler"
)

// Router routes commands to handlers using namespace prefixes.
// It provides O(1) lookup for namespaced commands like "todo.delete".
type Router struct {
	mu sync.RWMutex

	// Namespace handlers (e.g., "todo" handles "todo.*")
	namespaces map[string]handler.NamespaceHandler

	// Fallback handler for unmatched commands
	fallback handler.Handler
}

// NewRouter creates a new command router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// RegisterNamespace registers a handler for all commands in a namespace.
// The namespace is the prefix before the first dot (e.g., "todo" in "todo.delete").
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// SetFallback sets the fallback handler for unmatched commands.
func (r *Router) SetFallback(h handler.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// Route finds the appropriate handler for a command.
// Returns nil if no handler is found.
func (r *Router) Route(typ string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Extract namespace prefix
	namespace := extractNamespace(typ)
	if namespace != "" {
		if h, ok := r.namespaces[namespace]; ok {
			if h.CanHandle(typ) {
				return handler.NewNamespaceAdapter(h)
			}
		}
	}

	// Fallback
	return r.fallback
}

// GetNamespaceHandler returns the handler for a namespace.
// Returns nil if no handler is registered.
func (r *Router) GetNamespaceHandler(namespace string) handler.NamespaceHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namespaces[namespace]
}

// HasNamespace returns true if a handler is registered for the namespace.
func (r *Router) HasNamespace(namespace string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.namespaces[namespace]
	return ok
}

// Namespaces returns all registered namespace names.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	return names
}

// CanRoute returns true if the router can handle the command.
func (r *Router) CanRoute(typ string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	namespace := extractNamespace(typ)
	if namespace != "" {
		if h, ok := r.namespaces[namespace]; ok {
			return h.CanHandle(typ)
		}
	}

	return r.fallback != nil
}

// extractNamespace extracts the namespace from "namespace.command" format.
// Returns empty string if no namespace separator is found.
func extractNamespace(typ string) string {
	idx := strings.Index(typ, ".")
	if idx < 0 {
		return ""
	}
	return typ[:idx]
}

// ExtractCommandName extracts the command name without namespace.
// For "todo.delete", returns "delete".
// For commands without namespace, returns the full name.
func ExtractCommandName(fullName string) string {
	idx := strings.Index(fullName, ".")
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

// BuildCommandType builds a full command type from namespace and name.
// For "todo" and "delete", returns "todo.delete".
func BuildCommandType(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}
