// Package dispatcher routes commands to handlers and coordinates execution.
package dispatcher

import (
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/hook"
	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/state"
)

// Dispatcher routes commands to handlers, runs middleware around them and
// owns the committed focus and application state.
type Dispatcher struct {
	mu sync.RWMutex

	// dispatchMu serializes dispatch cycles. Follow-up commands run inside
	// the cycle that produced them.
	dispatchMu sync.Mutex

	// Core components
	registry *Registry
	router   *Router
	hooks    *hook.Manager

	// Collaborators
	zones      execctx.ZoneRegistry
	viewport   geom.Viewport
	transactor Transactor
	clock      func() time.Time

	// Committed state
	focus state.Focus
	data  any

	// Configuration
	config Config
	logger *slog.Logger

	// Metrics
	metrics *Metrics

	subs     []subscription
	nextSub  int
	disposed bool
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	if config.MaxDepth <= 0 {
		config.MaxDepth = DefaultConfig().MaxDepth
	}
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		hooks:    hook.NewManager(),
		viewport: geom.NoViewport{},
		clock:    time.Now,
		focus:    state.NewFocus(),
		config:   config,
		logger:   slog.New(slog.DiscardHandler),
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetZones sets the zone registry handlers read from.
func (d *Dispatcher) SetZones(zones execctx.ZoneRegistry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.zones = zones
}

// SetViewport sets the geometry source used by navigation handlers.
func (d *Dispatcher) SetViewport(vp geom.Viewport) {
	if vp == nil {
		vp = geom.NoViewport{}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = vp
}

// SetTransactor sets the transaction owner used to group follow-up commands.
func (d *Dispatcher) SetTransactor(t Transactor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transactor = t
}

// SetLogger sets the logger. A nil logger discards output.
func (d *Dispatcher) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// SetClock sets the time source stamped onto execution contexts.
func (d *Dispatcher) SetClock(clock func() time.Time) {
	if clock == nil {
		clock = time.Now
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clock = clock
}

// Reset replaces the committed state without dispatching. It is meant for
// construction and hydration, before any dispatch has run.
func (d *Dispatcher) Reset(s Snapshot) {
	if s.Focus.Zones == nil {
		s.Focus = state.NewFocus().WithActive(s.Focus.ActiveZoneID)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.focus = s.Focus
	d.data = s.Data
}

// State returns the committed state.
func (d *Dispatcher) State() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{Focus: d.focus, Data: d.data}
}

// Subscribe registers fn to receive committed changes and returns a
// function that removes it.
func (d *Dispatcher) Subscribe(fn Subscriber) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextSub++
	id := d.nextSub
	d.subs = append(d.subs, subscription{id: id, fn: fn})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.subs = slices.DeleteFunc(d.subs, func(s subscription) bool { return s.id == id })
	}
}

// Dispatch executes a command synchronously.
//
// The cycle is: resolve handler, check its when guard, run pre-dispatch
// hooks, run the handler, run post-dispatch hooks, commit the result and
// dispatch follow-up commands. Subscribers are notified after the whole
// cycle, including follow-ups, has committed.
func (d *Dispatcher) Dispatch(cmd command.Command) handler.Result {
	result, changes := d.runCycle(cmd)
	d.notify(changes)
	return result
}

// runCycle runs one dispatch cycle under dispatchMu. The lock is released
// even when a guard, hook or handler panics.
func (d *Dispatcher) runCycle(cmd command.Command) (handler.Result, []Change) {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	var changes []Change
	result := d.dispatchInternal(cmd, 0, &changes)
	return result, changes
}

// dispatchInternal is the core dispatch logic.
func (d *Dispatcher) dispatchInternal(cmd command.Command, depth int, changes *[]Change) handler.Result {
	startTime := time.Now()

	d.mu.RLock()
	disposed, logger := d.disposed, d.logger
	d.mu.RUnlock()

	if disposed {
		return handler.Error(ErrDisposed)
	}
	if cmd.IsZero() {
		return handler.Error(ErrInvalidCommand)
	}
	if depth > d.config.MaxDepth {
		logger.Warn("follow-up depth exceeded", "command", cmd.Type, "depth", depth)
		return handler.Error(fmt.Errorf("%w: %s", ErrMaxDepth, cmd.Type))
	}

	// Build execution context
	ctx := d.buildContext(depth)

	// Find handler
	h, when := d.resolve(cmd.Type, ctx)
	if h == nil {
		result := handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, cmd.Type))
		d.record(cmd, startTime, result)
		return result
	}

	if when != nil && !when(cmd, ctx) {
		logger.Debug("command blocked", "command", cmd.Type, "zone", ctx.ActiveZoneID())
		result := handler.Blocked()
		d.record(cmd, startTime, result)
		return result
	}

	// Run pre-dispatch hooks
	if !d.hooks.RunPreDispatch(&cmd, ctx) {
		result := handler.CancelledWithMessage("cancelled by hook")
		d.record(cmd, startTime, result)
		return result
	}

	// Execute handler
	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, cmd, ctx)
	} else {
		result = h.Handle(cmd, ctx)
	}

	// Run post-dispatch hooks
	d.hooks.RunPostDispatch(&cmd, ctx, &result)

	if result.IsOK() {
		d.commit(cmd, result, changes)
		d.dispatchFollowUps(result.Dispatch, depth, changes)
	}

	d.record(cmd, startTime, result)
	return result
}

// resolve finds the handler for a command type: zone-scoped handlers of the
// active zone and its ancestors first, then global handlers, then
// namespace handlers.
func (d *Dispatcher) resolve(typ string, ctx *execctx.ExecutionContext) (handler.Handler, handler.Guard) {
	var scopes []string
	if active := ctx.ActiveZoneID(); active != "" {
		scopes = append(scopes, active)
		if ctx.Zones != nil {
			scopes = append(scopes, ctx.Zones.Ancestors(active)...)
		}
	}
	if e, ok := d.registry.Lookup(typ, scopes); ok {
		return e.Handler, e.When
	}
	if h := d.router.Route(typ); h != nil {
		return h, nil
	}
	return nil, nil
}

// commit applies a successful result to the committed state.
func (d *Dispatcher) commit(cmd command.Command, result handler.Result, changes *[]Change) {
	if !result.Changed() && len(result.Effects) == 0 {
		return
	}

	d.mu.Lock()
	prev := Snapshot{Focus: d.focus, Data: d.data}
	if result.Focus != nil {
		d.focus = *result.Focus
	}
	if result.DataSet {
		d.data = result.Data
	}
	next := Snapshot{Focus: d.focus, Data: d.data}
	d.mu.Unlock()

	*changes = append(*changes, Change{
		Prev:    prev,
		Next:    next,
		Command: cmd,
		Effects: slices.Clone(result.Effects),
	})
}

// dispatchFollowUps dispatches commands returned by a handler. More than one
// follow-up runs inside a single transaction so it forms one undo step.
func (d *Dispatcher) dispatchFollowUps(cmds []command.Command, depth int, changes *[]Change) {
	if len(cmds) == 0 {
		return
	}

	d.mu.RLock()
	tx := d.transactor
	d.mu.RUnlock()

	if len(cmds) > 1 && tx != nil {
		tx.BeginTransaction()
		defer tx.EndTransaction()
	}

	for _, next := range cmds {
		if next.Meta.Source == command.SourceAPI {
			next = next.WithSource(command.SourceCallback)
		}
		d.dispatchInternal(next, depth+1, changes)
	}
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, cmd command.Command, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.mu.RLock()
			logger := d.logger
			d.mu.RUnlock()
			logger.Warn("handler panic", "command", cmd.Type, "panic", r, "stack", string(stack[:n]))

			result = handler.Error(fmt.Errorf("%w: %s: %v", ErrPanic, cmd.Type, r))

			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Type)
			}
		}
	}()

	return h.Handle(cmd, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(depth int) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New().
		WithZones(d.zones).
		WithViewport(d.viewport).
		WithFocus(d.focus).
		WithData(d.data)
	ctx.Tolerances = d.config.Tolerances
	ctx.TypeaheadTimeout = d.config.TypeaheadTimeout
	ctx.Now = d.clock()
	ctx.Depth = depth

	return ctx
}

// record logs and counts a finished dispatch.
func (d *Dispatcher) record(cmd command.Command, start time.Time, result handler.Result) {
	elapsed := time.Since(start)

	d.mu.RLock()
	logger := d.logger
	d.mu.RUnlock()

	logger.Debug("dispatch",
		"command", cmd.Type,
		"status", result.Status.String(),
		"duration", elapsed,
	)

	if d.metrics != nil {
		d.metrics.RecordDispatch(cmd.Type, elapsed, result.Status)
	}
}

// notify delivers changes to subscribers outside every lock, so a
// subscriber may dispatch again.
func (d *Dispatcher) notify(changes []Change) {
	if len(changes) == 0 {
		return
	}

	d.mu.RLock()
	subs := slices.Clone(d.subs)
	d.mu.RUnlock()

	for _, c := range changes {
		for _, s := range subs {
			s.fn(c)
		}
	}
}

// RegisterHandler registers a global handler for a command type.
func (d *Dispatcher) RegisterHandler(typ string, h handler.Handler) {
	d.registry.Register(typ, h)
}

// RegisterHandlerFunc registers a global handler function for a command type.
func (d *Dispatcher) RegisterHandlerFunc(typ string, fn func(command.Command, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(typ, handler.NewHandlerFunc(fn))
}

// RegisterSet registers a command set globally for each of its command types.
func (d *Dispatcher) RegisterSet(set handler.CommandSet) {
	for _, typ := range set.Commands() {
		d.registry.Register(typ, set)
	}
}

// RegisterScoped registers a handler for a command type within a zone scope,
// guarded by an optional when predicate.
func (d *Dispatcher) RegisterScoped(scope, typ string, h handler.Handler, when handler.Guard) {
	d.registry.RegisterScoped(scope, typ, h, when)
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	d.router.RegisterNamespace(namespace, h)
}

// UnregisterHandler removes the global handlers for a command type.
func (d *Dispatcher) UnregisterHandler(typ string) {
	d.registry.Unregister(typ)
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Router returns the command router.
func (d *Dispatcher) Router() *Router {
	return d.router
}

// Hooks returns the middleware manager.
func (d *Dispatcher) Hooks() *hook.Manager {
	return d.hooks
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Dispose stops accepting dispatches and drops subscribers.
func (d *Dispatcher) Dispose() {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.disposed = true
	d.subs = nil
	d.registry.Clear()
	d.hooks.Clear()
}
