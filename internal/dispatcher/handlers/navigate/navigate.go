package navigate

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/focus"
	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/nav"
	"github.com/dshills/focuskit/internal/resolve"
	"github.com/dshills/focuskit/internal/selection"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// Handler handles navigation commands.
type Handler struct{}

// New creates a new navigation handler.
func New() *Handler {
	return &Handler{}
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{command.Navigate, command.Typeahead, command.Expand, command.Collapse}
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
	case command.Navigate:
		p, _ := cmd.Payload.(command.NavigatePayload)
		return h.navigate(p, ctx)
	case command.Typeahead:
		p, _ := cmd.Payload.(command.TypeaheadPayload)
		return h.typeahead(p, ctx)
	case command.Expand, command.Collapse:
		p, _ := cmd.Payload.(command.ItemPayload)
		return h.setExpanded(p, cmd.Type == command.Expand, ctx)
	default:
		return handler.Errorf("unknown navigation command: %s", cmd.Type)
	}
}

func (h *Handler) navigate(p command.NavigatePayload, ctx *execctx.ExecutionContext) handler.Result {
	id, meta, err := ctx.TargetZone("")
	if err != nil || p.Direction == geom.DirNone {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)
	current := zone.FocusedItem(meta, zs)
	cfg := meta.Config

	if res, ok := h.treeArrow(p.Direction, id, meta, zs, current, ctx); ok {
		return res
	}

	var res nav.Result
	if cfg.Spatial {
		opts := nav.SpatialOptions{Tolerances: ctx.Tolerances}
		switch {
		case p.Direction.IsVertical() && zs.HasStickyX:
			opts.Sticky, opts.HasSticky = zs.StickyX, true
		case p.Direction.IsHorizontal() && zs.HasStickyY:
			opts.Sticky, opts.HasSticky = zs.StickyY, true
		}
		res = nav.Spatial(meta.Enabled(), ctx.Viewport, current, p.Direction, opts)
	} else {
		res = nav.Roving(meta.Enabled(), current, p.Direction, nav.RovingOptions{
			Orientation: cfg.Orientation,
			Loop:        cfg.Loop,
			Entry:       zone.EntryItem(meta, zs),
		})
	}

	if res.Blocked && cfg.Seamless && ctx.Zones != nil {
		if target, item, ok := nav.Seamless(ctx.Zones, ctx.Viewport, id, current, p.Direction, ctx.Tolerances); ok {
			if tm, ok := ctx.Zones.Get(target); ok {
				f, effects := focus.MoveTo(ctx, target, tm, item)
				return focus.Apply(handler.Success(), f, effects)
			}
		}
	}

	if res.ID == "" || res.ID == current {
		return handler.NoOp()
	}

	next := withSticky(focus.Moved(zs, meta, res.ID), p.Direction, res)
	if p.Extend && cfg.SelectMode == zone.SelectMultiple {
		next = extend(next, meta, zs, current, res.ID)
	}

	f := ctx.Focus.WithZone(id, next).WithActive(id)
	return focus.Apply(handler.Success(), f, focus.Effects(id, meta, res.ID))
}

// withSticky records the cross-axis coordinate of a spatial move and drops
// the coordinate of the other axis.
func withSticky(zs state.ZoneState, dir geom.Direction, res nav.Result) state.ZoneState {
	switch {
	case !res.HasCross || dir == geom.DirHome || dir == geom.DirEnd:
		return zs.WithoutSticky()
	case dir.IsVertical():
		zs = zs.WithStickyX(res.Cross)
		zs.StickyY, zs.HasStickyY = 0, false
	default:
		zs = zs.WithStickyY(res.Cross)
		zs.StickyX, zs.HasStickyX = 0, false
	}
	return zs
}

// extend selects the range from the anchor to the new item. Without an
// anchor the range starts at the item focus left.
func extend(next state.ZoneState, meta zone.Metadata, prev state.ZoneState, from, to string) state.ZoneState {
	sel := resolve.Selection(prev.Selection, meta.Items)
	set := selection.Of(sel, resolve.Anchor(prev.SelectionAnchor, sel))
	if set.Anchor == "" {
		set = selection.Set{IDs: sel, Anchor: from}
	}
	set = set.Range(meta.Items, to)
	return next.WithSelection(set.IDs, set.Anchor)
}

// treeArrow handles Left and Right on a tree item that owns children:
// Right expands a collapsed item and Left collapses an expanded one.
func (h *Handler) treeArrow(dir geom.Direction, id string, meta zone.Metadata, zs state.ZoneState, current string, ctx *execctx.ExecutionContext) (handler.Result, bool) {
	if meta.Config.Role != zone.RoleTree || current == "" || !meta.Parents[current] {
		return handler.Result{}, false
	}
	expanded := zs.IsExpanded(current)
	switch {
	case dir == geom.DirRight && !expanded:
		return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithExpanded(current, true))), true
	case dir == geom.DirLeft && expanded:
		return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithExpanded(current, false))), true
	}
	return handler.Result{}, false
}

// typeahead appends a character to the zone's buffer and focuses the next
// item whose label starts with it. The buffer restarts after the typeahead
// timeout; a run of one repeated character cycles through items starting
// with that character.
func (h *Handler) typeahead(p command.TypeaheadPayload, ctx *execctx.ExecutionContext) handler.Result {
	id, meta, err := ctx.TargetZone("")
	if err != nil || !meta.Config.Typeahead || p.Char == 0 || p.Char == utf8.RuneError {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)

	buf := zs.TypeaheadBuffer
	if buf != "" && ctx.TypeaheadTimeout > 0 && ctx.Now.Sub(zs.TypeaheadAt) > ctx.TypeaheadTimeout {
		buf = ""
	}
	buf += string(p.Char)

	prefix := buf
	if strings.Count(buf, string(p.Char)) == utf8.RuneCountInString(buf) {
		prefix = string(p.Char)
	}

	current := zone.FocusedItem(meta, zs)
	target, ok := nav.Typeahead(meta.Enabled(), meta.Label, current, prefix)
	if !ok {
		return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithTypeahead(buf, ctx.Now)))
	}

	next := focus.Moved(zs, meta, target).WithTypeahead(buf, ctx.Now)
	f := ctx.Focus.WithZone(id, next).WithActive(id)
	if target == current {
		return handler.Success().WithFocus(f)
	}
	return focus.Apply(handler.Success(), f, focus.Effects(id, meta, target))
}

// setExpanded expands or collapses an item, defaulting to the focused item.
func (h *Handler) setExpanded(p command.ItemPayload, expanded bool, ctx *execctx.ExecutionContext) handler.Result {
	id, meta, err := ctx.TargetZone(p.ZoneID)
	if err != nil || !meta.Config.Expandable {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)
	item := p.ItemID
	if item == "" {
		item = zone.FocusedItem(meta, zs)
	}
	if item == "" || !meta.HasItem(item) || zs.IsExpanded(item) == expanded {
		return handler.NoOp()
	}
	return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithExpanded(item, expanded)))
}
