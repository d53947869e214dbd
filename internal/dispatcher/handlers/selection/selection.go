package selection

import (
	"slices"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/focus"
	"github.com/dshills/focuskit/internal/resolve"
	sel "github.com/dshills/focuskit/internal/selection"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// Handler handles selection commands.
type Handler struct{}

// New creates a new selection handler.
func New() *Handler {
	return &Handler{}
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{
		command.SelectionSet, command.SelectionAdd, command.SelectionRemove,
		command.SelectionToggle, command.SelectionClear, command.SelectionRange,
		command.SelectionAll, command.Select,
	}
}

// Priority implements handler.Handler.
func (h *Handler) Priority() int { return 0 }

// CanHandle returns true if this handler can process the command.
func (h *Handler) CanHandle(typ string) bool {
	return slices.Contains(h.Commands(), typ)
}

// Handle implements handler.Handler.
func (h *Handler) Handle(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	if cmd.Type == command.Select {
		p, _ := cmd.Payload.(command.SelectPayload)
		return h.selectItem(p, ctx)
	}

	// Explicit selection commands apply to any zone. The select mode
	// only gates gestures and constrains the result.
	p, _ := cmd.Payload.(command.SelectionPayload)
	id, meta, err := ctx.TargetZone(p.ZoneID)
	if err != nil {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)
	cur := Current(meta, zs)

	var next sel.Set
	switch cmd.Type {
	case command.SelectionSet:
		next = cur.Replace(p.IDs)
	case command.SelectionAdd:
		next = cur
		for _, item := range p.IDs {
			next = next.Add(item)
		}
	case command.SelectionRemove:
		next = cur
		for _, item := range p.IDs {
			next = next.Remove(item)
		}
	case command.SelectionToggle:
		next = cur
		for _, item := range p.IDs {
			next = next.Toggle(item)
		}
	case command.SelectionClear:
		next = cur.Clear()
	case command.SelectionRange:
		if len(p.IDs) == 0 {
			return handler.NoOp()
		}
		next = cur.Range(meta.Items, p.IDs[len(p.IDs)-1])
	case command.SelectionAll:
		if meta.Config.SelectMode != zone.SelectMultiple {
			return handler.NoOp()
		}
		next = cur.All(meta.Items)
	default:
		return handler.Errorf("unknown selection command: %s", cmd.Type)
	}

	return commit(ctx, id, zs, Constrain(next, meta))
}

// selectItem applies a click or Space selection and focuses the item.
func (h *Handler) selectItem(p command.SelectPayload, ctx *execctx.ExecutionContext) handler.Result {
	zoneID := ""
	if p.ItemID != "" && ctx.Zones != nil {
		if owner, ok := ctx.Zones.FindItem(p.ItemID); ok {
			zoneID = owner
		}
	}
	id, meta, err := ctx.TargetZone(zoneID)
	if err != nil || !meta.Config.Selectable() {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)

	item := p.ItemID
	if item == "" {
		item = zone.FocusedItem(meta, zs)
	}
	if item == "" || !meta.HasItem(item) {
		return handler.NoOp()
	}

	cur := Current(meta, zs)
	multiple := meta.Config.SelectMode == zone.SelectMultiple

	var next sel.Set
	switch {
	case multiple && p.Range:
		next = cur.Range(meta.Items, item)
	case multiple && p.Toggle:
		next = cur.Toggle(item)
	case p.Toggle && cur.Contains(item):
		next = cur.Clear()
	default:
		next = cur.Replace([]string{item})
	}
	next = Constrain(next, meta)

	moved := zs
	var effects []handler.Effect
	if zone.FocusedItem(meta, zs) != item || ctx.ActiveZoneID() != id {
		moved = focus.Moved(zs, meta, item)
		effects = focus.Effects(id, meta, item)
	}
	moved = moved.WithSelection(next.IDs, next.Anchor)

	f := ctx.Focus.WithZone(id, moved).WithActive(id)
	if f.Equal(ctx.Focus) {
		return handler.NoOp()
	}
	return focus.Apply(handler.Success(), f, effects)
}

// Current returns the zone's selection resolved against its live items.
func Current(meta zone.Metadata, zs state.ZoneState) sel.Set {
	ids := resolve.Selection(zs.Selection, meta.Items)
	return sel.Of(ids, resolve.Anchor(zs.SelectionAnchor, ids))
}

// Constrain drops ids that are not items of the zone and reduces the set to
// one id in a single-select zone, keeping the anchor when it is selected.
func Constrain(s sel.Set, meta zone.Metadata) sel.Set {
	s = s.Restrict(meta.Items)
	if meta.Config.SelectMode != zone.SelectSingle || s.Len() <= 1 {
		return s
	}
	keep := s.Anchor
	if keep == "" {
		keep = s.IDs[len(s.IDs)-1]
	}
	return sel.Set{}.Replace([]string{keep})
}

func commit(ctx *execctx.ExecutionContext, id string, zs state.ZoneState, next sel.Set) handler.Result {
	if slices.Equal(next.IDs, zs.Selection) && next.Anchor == zs.SelectionAnchor {
		return handler.NoOp()
	}
	return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithSelection(next.IDs, next.Anchor)))
}
