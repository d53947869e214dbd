// Package execctx provides the execution context for command handlers.
package execctx

import (
	"fmt"
	"time"

	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/nav"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// ZoneRegistry abstracts the zone registry for handlers.
// *zone.Registry implements it.
type ZoneRegistry interface {
	nav.Tree

	Has(id string) bool
	Register(id string, meta zone.Metadata)
	Unregister(id string) bool
	SetItems(id string, items []string) bool
	FindItem(itemID string) (string, bool)
}

// ExecutionContext provides context for command execution.
// It holds the state a handler reads; handlers never mutate it and return
// the new state in their Result instead.
type ExecutionContext struct {
	// Zones provides access to the zone registry.
	Zones ZoneRegistry

	// Viewport provides item and zone geometry.
	Viewport geom.Viewport

	// Focus is the focus state before the command.
	Focus state.Focus

	// Data is the application data before the command.
	Data any

	// Tolerances are the navigation pixel tolerances.
	Tolerances nav.Tolerances

	// TypeaheadTimeout is how long typed characters accumulate.
	TypeaheadTimeout time.Duration

	// Now is the dispatch time.
	Now time.Time

	// Depth is the follow-up nesting depth (0 for a top-level dispatch).
	Depth int

	// Values holds middleware-injected values for downstream middleware.
	Values map[string]any
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Viewport:   geom.NoViewport{},
		Focus:      state.NewFocus(),
		Tolerances: nav.DefaultTolerances(),
		Now:        time.Now(),
		Values:     make(map[string]any),
	}
}

// WithZones returns the context with the zone registry set.
func (ctx *ExecutionContext) WithZones(zones ZoneRegistry) *ExecutionContext {
	ctx.Zones = zones
	return ctx
}

// WithViewport returns the context with the viewport set.
func (ctx *ExecutionContext) WithViewport(vp geom.Viewport) *ExecutionContext {
	if vp == nil {
		vp = geom.NoViewport{}
	}
	ctx.Viewport = vp
	return ctx
}

// WithFocus returns the context with the focus state set.
func (ctx *ExecutionContext) WithFocus(f state.Focus) *ExecutionContext {
	ctx.Focus = f
	return ctx
}

// WithData returns the context with the application data set.
func (ctx *ExecutionContext) WithData(data any) *ExecutionContext {
	ctx.Data = data
	return ctx
}

// ActiveZoneID returns the active zone id.
func (ctx *ExecutionContext) ActiveZoneID() string {
	return ctx.Focus.ActiveZoneID
}

// TargetZone resolves a zone id, defaulting to the active zone.
func (ctx *ExecutionContext) TargetZone(id string) (string, zone.Metadata, error) {
	if ctx.Zones == nil {
		return "", zone.Metadata{}, ErrMissingZones
	}
	if id == "" {
		id = ctx.Focus.ActiveZoneID
	}
	if id == "" {
		return "", zone.Metadata{}, ErrNoActiveZone
	}
	meta, ok := ctx.Zones.Get(id)
	if !ok {
		return id, zone.Metadata{}, fmt.Errorf("%w: %s", ErrUnknownZone, id)
	}
	return id, meta, nil
}

// ZoneState returns the state of a zone.
func (ctx *ExecutionContext) ZoneState(id string) state.ZoneState {
	return ctx.Focus.Zone(id)
}

// Cursor returns the lazily resolved cursor of a zone.
func (ctx *ExecutionContext) Cursor(id string, meta zone.Metadata) zone.Cursor {
	return zone.CursorFor(meta, ctx.Focus.Zone(id))
}

// SetValue sets a context value.
func (ctx *ExecutionContext) SetValue(key string, value any) {
	if ctx.Values == nil {
		ctx.Values = make(map[string]any)
	}
	ctx.Values[key] = value
}

// GetValue retrieves a context value.
func (ctx *ExecutionContext) GetValue(key string) (any, bool) {
	if ctx.Values == nil {
		return nil, false
	}
	v, ok := ctx.Values[key]
	return v, ok
}

// GetValueString retrieves a string value.
func (ctx *ExecutionContext) GetValueString(key string) string {
	if v, ok := ctx.GetValue(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetValueBool retrieves a bool value.
func (ctx *ExecutionContext) GetValueBool(key string) bool {
	if v, ok := ctx.GetValue(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Validate checks that the context has all required components.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Zones == nil {
		return ErrMissingZones
	}
	return nil
}
