package field

import (
	"slices"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/zone"
)

// Handler handles field editing and value commands.
type Handler struct{}

// New creates a new field handler.
func New() *Handler {
	return &Handler{}
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{command.FieldStartEdit, command.FieldCommit, command.FieldCancel, command.ValueChange}
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
	case command.FieldStartEdit:
		p, _ := cmd.Payload.(command.ItemPayload)
		return h.startEdit(p, ctx)
	case command.FieldCommit, command.FieldCancel:
		p, _ := cmd.Payload.(command.ItemPayload)
		return h.endEdit(p, ctx)
	case command.ValueChange:
		p, _ := cmd.Payload.(command.ValuePayload)
		return h.changeValue(p, ctx)
	default:
		return handler.Errorf("unknown field command: %s", cmd.Type)
	}
}

func (h *Handler) startEdit(p command.ItemPayload, ctx *execctx.ExecutionContext) handler.Result {
	id, meta, err := ctx.TargetZone(p.ZoneID)
	if err != nil {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)
	item := p.ItemID
	if item == "" {
		item = zone.FocusedItem(meta, zs)
	}
	if item == "" || !meta.HasItem(item) || zs.EditingItemID == item {
		return handler.NoOp()
	}
	return handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithEditing(item)))
}

// endEdit leaves editing mode and returns host focus to the edited item.
func (h *Handler) endEdit(p command.ItemPayload, ctx *execctx.ExecutionContext) handler.Result {
	id, meta, err := ctx.TargetZone(p.ZoneID)
	if err != nil {
		return handler.NoOp()
	}
	zs := ctx.ZoneState(id)
	if !zs.IsEditing() {
		return handler.NoOp()
	}
	item := zs.EditingItemID
	res := handler.Success().WithFocus(ctx.Focus.WithZone(id, zs.WithEditing("")))
	if meta.HasItem(item) && !meta.Config.VirtualFocus {
		res = res.WithEffect(handler.FocusEffect(id, item))
	}
	return res
}
