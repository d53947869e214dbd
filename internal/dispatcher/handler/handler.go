// Package handler provides the handler interface and types for command dispatch.
package handler

import (
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
)

// Handler processes a command type.
type Handler interface {
	// Handle executes the command and returns a result.
	Handle(cmd command.Command, ctx *execctx.ExecutionContext) Result

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// CommandSet is a handler for a fixed set of command types.
type CommandSet interface {
	Handler

	// Commands returns the command types the set handles.
	Commands() []string
}

// Guard is a when predicate. A false result blocks the command before its
// handler runs.
type Guard func(cmd command.Command, ctx *execctx.ExecutionContext) bool

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc struct {
	fn   func(cmd command.Command, ctx *execctx.ExecutionContext) Result
	prio int
}

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(cmd command.Command, ctx *execctx.ExecutionContext) Result) *HandlerFunc {
	return &HandlerFunc{fn: fn}
}

// NewHandlerFuncWithPriority creates a HandlerFunc with a specified priority.
func NewHandlerFuncWithPriority(fn func(cmd command.Command, ctx *execctx.ExecutionContext) Result, priority int) *HandlerFunc {
	return &HandlerFunc{fn: fn, prio: priority}
}

// Handle implements Handler.Handle.
func (f *HandlerFunc) Handle(cmd command.Command, ctx *execctx.ExecutionContext) Result {
	if f.fn == nil {
		return Errorf("handler function is nil")
	}
	return f.fn(cmd, ctx)
}

// Priority implements Handler.Priority.
func (f *HandlerFunc) Priority() int {
	return f.prio
}

// NamespaceHandler handles all commands within a namespace.
// A namespace is the prefix before the first dot (e.g., "todo" in "todo.delete").
type NamespaceHandler interface {
	// HandleCommand handles a command within this namespace.
	HandleCommand(cmd command.Command, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the command type.
	CanHandle(typ string) bool

	// Namespace returns the namespace prefix (e.g., "todo").
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to Handler interface.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(cmd command.Command, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleCommand(cmd, ctx)
}

func (a *namespaceAdapter) Priority() int {
	return 0
}

// BaseNamespaceHandler provides a base implementation for namespace handlers.
type BaseNamespaceHandler struct {
	namespace string
	commands  map[string]func(cmd command.Command, ctx *execctx.ExecutionContext) Result
}

// NewBaseNamespaceHandler creates a new BaseNamespaceHandler.
func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		commands:  make(map[string]func(cmd command.Command, ctx *execctx.ExecutionContext) Result),
	}
}

// Register registers a handler function for a command type.
func (h *BaseNamespaceHandler) Register(typ string, fn func(cmd command.Command, ctx *execctx.ExecutionContext) Result) {
	h.commands[typ] = fn
}

// Namespace implements NamespaceHandler.Namespace.
func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

// CanHandle implements NamespaceHandler.CanHandle.
func (h *BaseNamespaceHandler) CanHandle(typ string) bool {
	_, ok := h.commands[typ]
	return ok
}

// HandleCommand implements NamespaceHandler.HandleCommand.
func (h *BaseNamespaceHandler) HandleCommand(cmd command.Command, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.commands[cmd.Type]
	if !ok {
		return Errorf("unknown command in namespace %s: %s", h.namespace, cmd.Type)
	}
	return fn(cmd, ctx)
}
