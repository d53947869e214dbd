package focus

import (
	"slices"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/nav"
	"github.com/dshills/focuskit/internal/resolve"
	"github.com/dshills/focuskit/internal/zone"
)

// Handler handles focus commands.
type Handler struct{}

// New creates a new focus handler.
func New() *Handler {
	return &Handler{}
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{command.Focus, command.SyncFocus, command.Recover, command.Tab, command.Escape}
}

// Priority implements handler.Handler.
func (h *Handler) Priority() int { return 0 }

// CanHandle returns true if this handler can process the command.
func (h *Handler) CanHandle(typ string) bool {
	return slices.Contains(h.Commands(), typ)
}

// Handle implements handler.Handler.
func (h *Handler) Handle(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	switch cmd.Type {
	case command.Focus:
		return h.focus(cmd, ctx, true)
	case command.SyncFocus:
		return h.focus(cmd, ctx, false)
	case command.Recover:
		return h.recover(ctx)
	case command.Tab:
		return h.tab(cmd, ctx)
	case command.Escape:
		return h.escape(ctx)
	default:
		return handler.Errorf("unknown focus command: %s", cmd.Type)
	}
}

// focus moves focus to the payload target. effects is false for focus the
// host already moved.
func (h *Handler) focus(cmd command.Command, ctx *execctx.ExecutionContext, effects bool) handler.Result {
	p, _ := cmd.Payload.(command.FocusPayload)

	zoneID := p.ZoneID
	if zoneID == "" && p.ItemID != "" && ctx.Zones != nil {
		if id, ok := ctx.Zones.FindItem(p.ItemID); ok {
			zoneID = id
		}
	}
	id, meta, err := ctx.TargetZone(zoneID)
	if err != nil {
		return handler.NoOp()
	}

	zs := ctx.ZoneState(id)
	item := p.ItemID
	if item == "" {
		item = zone.EntryItem(meta, zs)
	}
	if item != "" && !slices.Contains(meta.Enabled(), item) {
		return handler.NoOp()
	}

	f := ctx.Focus.WithZone(id, Moved(zs, meta, item).WithoutSticky()).WithActive(id)
	if f.Equal(ctx.Focus) {
		return handler.NoOp()
	}
	if !effects {
		return handler.Success().WithFocus(f)
	}
	return Apply(handler.Success(), f, Effects(id, meta, item))
}

// recover re-resolves a stale focus. When the active zone is gone focus
// moves to the first stop of the global tab sequence.
func (h *Handler) recover(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Zones == nil {
		return handler.NoOp()
	}

	active := ctx.ActiveZoneID()
	if meta, ok := ctx.Zones.Get(active); ok {
		zs := ctx.ZoneState(active)
		item := zone.FocusedItem(meta, zs)
		if item == "" {
			item = zone.EntryItem(meta, zs)
		}
		if item != "" {
			if item == zs.FocusedItemID {
				return handler.NoOp()
			}
			f, effects := MoveTo(ctx, active, meta, item)
			return Apply(handler.Success(), f, effects)
		}
	}

	for _, stop := range nav.GlobalSequence(ctx.Zones, ctx.Viewport) {
		meta, ok := ctx.Zones.Get(stop.ZoneID)
		if !ok {
			continue
		}
		f, effects := MoveTo(ctx, stop.ZoneID, meta, stop.ItemID)
		return Apply(handler.Success(), f, effects)
	}

	if active != "" {
		return handler.Success().WithFocus(ctx.Focus.WithActive(""))
	}
	return handler.NoOp()
}

// tab moves to the next tab stop. It is a no-op when the move leaves the
// sequence, letting the host move focus out of the kernel's zones.
func (h *Handler) tab(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Zones == nil {
		return handler.NoOp()
	}
	p, _ := cmd.Payload.(command.TabPayload)

	active := ctx.ActiveZoneID()
	item := ""
	if meta, ok := ctx.Zones.Get(active); ok {
		item = zone.FocusedItem(meta, ctx.ZoneState(active))
	}

	stop, ok := nav.Tab(ctx.Zones, ctx.Viewport, ctx.Focus, active, item, p.Backward)
	if !ok {
		return handler.NoOpWithMessage("tab left the sequence")
	}
	meta, ok := ctx.Zones.Get(stop.ZoneID)
	if !ok {
		return handler.NoOp()
	}

	f, effects := MoveTo(ctx, stop.ZoneID, meta, stop.ItemID)
	f = f.WithZone(stop.ZoneID, f.Zone(stop.ZoneID).WithoutSticky())
	return Apply(handler.Success(), f, effects)
}

// escape applies the active zone's dismiss behavior.
func (h *Handler) escape(ctx *execctx.ExecutionContext) handler.Result {
	id, meta, err := ctx.TargetZone("")
	if err != nil {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)

	switch meta.Config.Dismiss {
	case zone.DismissDeselect:
		if len(resolve.Selection(zs.Selection, meta.Items)) == 0 {
			return handler.NoOp()
		}
		return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithSelection(nil, "")))

	case zone.DismissClose:
		res := handler.Success()
		handled := false
		if cb := meta.Callbacks.OnDismiss; cb != nil {
			res = res.WithDispatch(cb(ctx.Cursor(id, meta))...)
			handled = true
		}
		parent := ctx.Zones.Parent(id)
		if pm, ok := ctx.Zones.Get(parent); ok {
			pzs := ctx.ZoneState(parent)
			item := pzs.LastFocusedID
			if !slices.Contains(pm.Enabled(), item) {
				item = zone.EntryItem(pm, pzs)
			}
			f, effects := MoveTo(ctx, parent, pm, item)
			res = Apply(res, f, effects)
			handled = true
		}
		if !handled {
			return handler.NoOp()
		}
		return res

	default:
		return handler.NoOp()
	}
}
