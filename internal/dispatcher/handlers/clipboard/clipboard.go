package clipboard

import (
	"log/slog"
	"slices"

	"github.com/dshills/focuskit/internal/clipboard"
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
)

// Result messages and values.
const (
	MessageRejected = "rejected"
	MessageEmpty    = "clipboard empty"

	// AcceptedKey holds the id of the zone that accepted a paste.
	AcceptedKey = "accepted_zone"
)

// Handler handles clipboard commands.
type Handler struct {
	store  *clipboard.Store
	system clipboard.System
	logger *slog.Logger
}

// New creates a clipboard handler. A nil system keeps text in the
// structured store only.
func New(store *clipboard.Store, system clipboard.System, logger *slog.Logger) *Handler {
	if store == nil {
		store = clipboard.NewStore()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{store: store, system: system, logger: logger}
}

// Store returns the structured clipboard.
func (h *Handler) Store() *clipboard.Store {
	return h.store
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{command.Copy, command.Cut, command.Paste, command.ClipboardWrite}
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
	case command.Copy, command.Cut:
		return h.copy(cmd, ctx)
	case command.Paste:
		return h.paste(ctx)
	case command.ClipboardWrite:
		p, _ := cmd.Payload.(command.ClipboardPayload)
		return h.write(p)
	default:
		return handler.Errorf("unknown clipboard command: %s", cmd.Type)
	}
}

func (h *Handler) copy(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	id, meta, err := ctx.TargetZone("")
	if err != nil {
		return handler.NoOp()
	}
	cb := meta.Callbacks.For(cmd.Type)
	if cb == nil {
		return handler.NoOp()
	}
	return handler.Success().WithDispatch(cb(ctx.Cursor(id, meta))...)
}

// write stores the payload and copies its text to the system clipboard.
// System clipboard failures are logged and otherwise ignored.
func (h *Handler) write(p command.ClipboardPayload) handler.Result {
	h.store.Set(p)
	if p.Text != "" && h.system != nil {
		if err := h.system.WriteText(p.Text); err != nil {
			h.logger.Warn("clipboard write failed", "kind", p.Kind, "error", err)
		}
	}
	return handler.Success().WithEffect(handler.Effect{Kind: handler.EffectClipboard, Text: p.Text})
}

// paste bubbles the clipboard payload from the active zone up through its
// ancestors until a zone accepts it.
func (h *Handler) paste(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Zones == nil {
		return handler.NoOp()
	}
	payload, ok := h.store.Get()
	if !ok && h.system != nil {
		text, err := h.system.ReadText()
		if err != nil {
			h.logger.Warn("clipboard read failed", "error", err)
		}
		payload, ok = command.ClipboardPayload{Text: text}, text != ""
	}
	if !ok {
		return handler.NoOpWithMessage(MessageEmpty)
	}

	var follow []command.Command
	accepted, ok := clipboard.Bubble(ctx.Zones, ctx.ActiveZoneID(), func(zoneID string) bool {
		meta, found := ctx.Zones.Get(zoneID)
		if !found || meta.Callbacks.OnPaste == nil {
			return false
		}
		cmds, took := meta.Callbacks.OnPaste(ctx.Cursor(zoneID, meta), payload)
		if took {
			follow = cmds
		}
		return took
	})
	if !ok {
		return handler.NoOpWithMessage(MessageRejected)
	}
	return handler.Success().WithDispatch(follow...).WithValue(AcceptedKey, accepted)
}
