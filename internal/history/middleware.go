package history

import (
	"errors"
	"log/slog"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/hook"
	"github.com/dshills/focuskit/internal/state"
)

// Context value keys written by the pre-dispatch hook.
const (
	SnapshotKey = "history.snapshot"
	FocusKey    = "history.focus"
)

// Middleware records history around each dispatch.
// It implements hook.PreDispatchHook and hook.PostDispatchHook.
type Middleware struct {
	history *History
	logger  *slog.Logger
}

// NewMiddleware creates the history middleware for h.
func NewMiddleware(h *History, logger *slog.Logger) *Middleware {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Middleware{history: h, logger: logger}
}

// Name implements hook.Hook.
func (m *Middleware) Name() string { return "history" }

// Priority implements hook.Hook.
func (m *Middleware) Priority() int { return hook.PriorityHistory }

// PreDispatch captures the data snapshot and the focused item before the
// handler runs.
func (m *Middleware) PreDispatch(cmd *command.Command, ctx *execctx.ExecutionContext) bool {
	active := ctx.ActiveZoneID()
	ctx.SetValue(SnapshotKey, ctx.Data)
	ctx.SetValue(FocusKey, Point{
		Data:   ctx.Data,
		ZoneID: active,
		ItemID: ctx.ZoneState(active).FocusedItemID,
	})
	return true
}

// PostDispatch records an entry for a successful data-changing command.
func (m *Middleware) PostDispatch(cmd *command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
	if !ShouldRecord(*cmd, ctx, *result) {
		return
	}

	before, _ := ctx.GetValue(FocusKey)
	p, _ := before.(Point)
	snapshot, _ := ctx.GetValue(SnapshotKey)

	m.history.Push(Entry{
		Command:       command.Command{Type: cmd.Type, Payload: cmd.Payload},
		Timestamp:     ctx.Now,
		Snapshot:      snapshot,
		ZoneID:        p.ZoneID,
		FocusedItemID: p.ItemID,
	})
	m.logger.Debug("history recorded", "command", cmd.Type, "depth", len(m.history.Past()))
}

// ShouldRecord reports whether a dispatch produces a history entry.
func ShouldRecord(cmd command.Command, ctx *execctx.ExecutionContext, result handler.Result) bool {
	switch {
	case command.IsPassthrough(cmd.Type), command.IsSelfManaged(cmd.Type):
		return false
	case cmd.NoLog:
		return false
	case !result.IsOK() || !result.DataSet:
		return false
	}
	prev, ok := ctx.GetValue(SnapshotKey)
	if !ok {
		prev = ctx.Data
	}
	return !state.SameData(prev, result.Data)
}

// Handler implements OS_UNDO and OS_REDO.
//
// A zone that registers OnUndo or OnRedo handles the command itself: its
// callback runs once with the zone cursor and its commands are dispatched.
// Otherwise the handler restores the recorded data and focus.
type Handler struct {
	history *History
}

// NewHandler creates the undo/redo handler for h.
func NewHandler(h *History) *Handler {
	return &Handler{history: h}
}

// Commands implements handler.CommandSet.
func (h *Handler) Commands() []string {
	return []string{command.Undo, command.Redo}
}

// Priority implements handler.Handler.
func (h *Handler) Priority() int { return 0 }

// Handle implements handler.Handler.
func (h *Handler) Handle(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
	if res, ok := h.zoneCallback(cmd, ctx); ok {
		return res
	}

	var (
		p   Point
		err error
	)
	switch cmd.Type {
	case command.Undo:
		active := ctx.ActiveZoneID()
		p, err = h.history.Undo(Point{
			Data:   ctx.Data,
			ZoneID: active,
			ItemID: ctx.ZoneState(active).FocusedItemID,
		})
	case command.Redo:
		p, err = h.history.Redo()
	default:
		return handler.Errorf("unknown history command: %s", cmd.Type)
	}

	if errors.Is(err, ErrNothingToUndo) || errors.Is(err, ErrNothingToRedo) {
		return handler.NoOpWithMessage(err.Error())
	}
	if err != nil {
		return handler.Error(err)
	}

	result := handler.Success().WithData(p.Data)
	if f, ok := restoreFocus(ctx, p); ok {
		result = result.WithFocus(f).WithEffect(handler.FocusEffect(p.ZoneID, p.ItemID))
	}
	return result
}

// zoneCallback runs the active zone's undo/redo capability.
func (h *Handler) zoneCallback(cmd command.Command, ctx *execctx.ExecutionContext) (handler.Result, bool) {
	id, meta, err := ctx.TargetZone("")
	if err != nil {
		return handler.Result{}, false
	}
	cb := meta.Callbacks.For(cmd.Type)
	if cb == nil {
		return handler.Result{}, false
	}
	return handler.Success().WithDispatch(cb(ctx.Cursor(id, meta))...), true
}

// restoreFocus moves focus back to a recorded position when its zone is
// still registered.
func restoreFocus(ctx *execctx.ExecutionContext, p Point) (state.Focus, bool) {
	if p.ZoneID == "" || ctx.Zones == nil {
		return state.Focus{}, false
	}
	meta, ok := ctx.Zones.Get(p.ZoneID)
	if !ok {
		return state.Focus{}, false
	}
	zs := ctx.ZoneState(p.ZoneID)
	idx := meta.IndexOf(p.ItemID)
	if idx < 0 {
		idx = zs.FocusIndex
	}
	return ctx.Focus.WithZone(p.ZoneID, zs.WithFocus(p.ItemID, idx)).WithActive(p.ZoneID), true
}
