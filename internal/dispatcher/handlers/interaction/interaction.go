package interaction

import (
	"slices"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/zone"
)

// Handler handles interaction commands.
type Handler struct{}

// New creates a new interaction handler.
func New() *Handler {
	return &Handler{}
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{command.Delete, command.MoveUp, command.MoveDown, command.Check, command.Activate}
}

// Priority implements handler.Handler.
func (h *Handler) Priority() int { return 0 }

// CanHandle returns true if this handler can process the command.
func (h *Handler) CanHandle(typ string) bool {
	return slices.Contains(h.Commands(), typ)
}

// Handle implements handler.Handler.
func (h *Handler) Handle(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	if !h.CanHandle(cmd.Type) {
		return handler.Errorf("unknown interaction command: %s", cmd.Type)
	}
	p, _ := cmd.Payload.(command.ItemPayload)

	id, meta, err := ctx.TargetZone(p.ZoneID)
	if err != nil {
		return handler.NoOp()
	}
	cur := ctx.Cursor(id, meta)
	if p.ItemID != "" {
		if !meta.HasItem(p.ItemID) {
			return handler.NoOp()
		}
		cur.FocusID = p.ItemID
	}

	cb := meta.Callbacks.For(cmd.Type)
	if cb == nil {
		if cmd.Type == command.Activate {
			return h.toggle(ctx, id, meta, cur.FocusID)
		}
		return handler.NoOp()
	}
	return Invoke(cb, cur)
}

// Invoke calls a zone callback once and returns its commands as follow-ups.
func Invoke(cb zone.Callback, cur zone.Cursor) handler.Result {
	return handler.Success().WithDispatch(cb(cur)...)
}

// toggle flips the expansion of an expandable item.
func (h *Handler) toggle(ctx *execctx.ExecutionContext, id string, meta zone.Metadata, item string) handler.Result {
	cfg := meta.Config
	if !cfg.Expandable || item == "" {
		return handler.NoOp()
	}
	if cfg.Role == zone.RoleTree || cfg.Role == zone.RoleTreegrid {
		if !meta.Parents[item] {
			return handler.NoOp()
		}
	}
	zs := ctx.ZoneState(id)
	return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithExpanded(item, !zs.IsExpanded(item))))
}
