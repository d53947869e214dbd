package zones

import (
	"fmt"
	"slices"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/focus"
	"github.com/dshills/focuskit/internal/zone"
)

// RegisterPayload is the payload of OS_ZONE_REGISTER.
type RegisterPayload struct {
	ID   string
	Meta zone.Metadata
}

// UnregisterPayload is the payload of OS_ZONE_UNREGISTER.
type UnregisterPayload struct {
	ID string
}

// ItemsPayload is the payload of OS_ZONE_ITEMS.
type ItemsPayload struct {
	ID    string
	Items []string
}

// Handler handles zone lifecycle commands.
type Handler struct{}

// New creates a new zone lifecycle handler.
func New() *Handler {
	return &Handler{}
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{command.ZoneRegister, command.ZoneUnregister, command.ZoneItems}
}

// Priority implements handler.Handler.
func (h *Handler) Priority() int { return 0 }

// CanHandle returns true if this handler can process the command.
func (h *Handler) CanHandle(typ string) bool {
	return slices.Contains(h.Commands(), typ)
}

// Handle implements handler.Handler.
func (h *Handler) Handle(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	switch cmd.Type {
	case command.ZoneRegister:
		p, _ := cmd.Payload.(RegisterPayload)
		return h.register(p, ctx)
	case command.ZoneUnregister:
		p, _ := cmd.Payload.(UnregisterPayload)
		return h.unregister(p, ctx)
	case command.ZoneItems:
		p, _ := cmd.Payload.(ItemsPayload)
		return h.setItems(p, ctx)
	default:
		return handler.Errorf("unknown zone command: %s", cmd.Type)
	}
}

func (h *Handler) register(p RegisterPayload, ctx *execctx.ExecutionContext) handler.Result {
	if p.ID == "" {
		return handler.Error(zone.ErrEmptyID)
	}
	if cyclic(ctx.Zones, p.ID, p.Meta.ParentID) {
		return handler.Error(fmt.Errorf("%w: %q", zone.ErrCycle, p.ID))
	}
	ctx.Zones.Register(p.ID, p.Meta)

	meta, ok := ctx.Zones.Get(p.ID)
	if !ok || !meta.Config.AutoFocus {
		return handler.Success()
	}
	item := zone.EntryItem(meta, ctx.ZoneState(p.ID))
	f, effects := focus.MoveTo(ctx, p.ID, meta, item)
	return focus.Apply(handler.Success(), f, effects)
}

// unregister removes the zone. When it was active, focus returns to the
// parent zone, or recovers when there is none.
func (h *Handler) unregister(p UnregisterPayload, ctx *execctx.ExecutionContext) handler.Result {
	parent := ctx.Zones.Parent(p.ID)
	if !ctx.Zones.Unregister(p.ID) {
		return handler.NoOp()
	}

	res := handler.Success().WithFocus(ctx.Focus.Without(p.ID))
	if ctx.ActiveZoneID() != p.ID {
		return res
	}
	if parent != "" {
		return res.WithDispatch(command.New(command.Focus, command.FocusPayload{ZoneID: parent}).
			WithSource(command.SourceRecovery))
	}
	return res.WithDispatch(command.New(command.Recover, nil).WithSource(command.SourceRecovery))
}

// setItems replaces the items. Removing the focused item of the active zone
// schedules focus recovery.
func (h *Handler) setItems(p ItemsPayload, ctx *execctx.ExecutionContext) handler.Result {
	before, ok := ctx.Zones.Get(p.ID)
	if !ok {
		return handler.NoOp()
	}
	if slices.Equal(before.Items, p.Items) {
		return handler.NoOp()
	}
	ctx.Zones.SetItems(p.ID, p.Items)

	res := handler.Success()
	focused := ctx.ZoneState(p.ID).FocusedItemID
	if p.ID == ctx.ActiveZoneID() && focused != "" && !slices.Contains(p.Items, focused) {
		res = res.WithDispatch(command.New(command.Recover, nil).WithSource(command.SourceRecovery))
	}
	return res
}

// cyclic reports whether parent chains back to id.
func cyclic(zones execctx.ZoneRegistry, id, parent string) bool {
	for p := parent; p != ""; {
		if p == id {
			return true
		}
		meta, ok := zones.Get(p)
		if !ok {
			return false
		}
		p = meta.ParentID
	}
	return false
}
