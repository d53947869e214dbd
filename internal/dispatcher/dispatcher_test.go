package dispatcher_test

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/hook"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

func setData(v any) *handler.HandlerFunc {
	return handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithData(v)
	})
}

func TestNewWithDefaults(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	if d == nil {
		t.Fatal("expected non-nil dispatcher")
	}
	if d.Metrics() != nil {
		t.Error("expected metrics to be disabled by default")
	}
	if !d.Config().RecoverFromPanic {
		t.Error("expected panic recovery by default")
	}
}

func TestDispatchCommitsData(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("todo.add", setData("added"))

	result := d.Dispatch(command.New("todo.add", nil))

	if !result.IsOK() {
		t.Fatalf("expected OK, got %s", result.Status)
	}
	if d.State().Data != "added" {
		t.Errorf("expected data 'added', got %v", d.State().Data)
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(command.New("missing", nil))

	if result.Status != handler.StatusError {
		t.Fatalf("expected error, got %s", result.Status)
	}
	if !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Error)
	}
}

func TestDispatchInvalidCommand(t *testing.T) {
	d := dispatcher.NewWithDefaults()

	result := d.Dispatch(command.Command{})
	if !errors.Is(result.Error, dispatcher.ErrInvalidCommand) {
		t.Errorf("expected ErrInvalidCommand, got %v", result.Error)
	}
}

func TestDispatchWhenGuardBlocks(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	ran := false
	h := handler.NewHandlerFunc(func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		ran = true
		return handler.Success().WithData(1)
	})
	d.RegisterScoped(dispatcher.GlobalScope, "todo.clear", h, func(cmd command.Command, ctx *execctx.ExecutionContext) bool {
		return ctx.Data != nil
	})

	result := d.Dispatch(command.New("todo.clear", nil))

	if result.Status != handler.StatusBlocked {
		t.Errorf("expected blocked, got %s", result.Status)
	}
	if ran {
		t.Error("expected handler not to run")
	}
	if d.State().Data != nil {
		t.Error("expected no state change")
	}
}

func TestDispatchScopedHandlerPrecedence(t *testing.T) {
	zones := zone.NewRegistry()
	zones.Register("page", zone.Metadata{Config: zone.Preset(zone.RoleGroup)})
	zones.Register("board", zone.Metadata{ParentID: "page", Config: zone.Preset(zone.RoleGrid)})
	zones.Register("other", zone.Metadata{Config: zone.Preset(zone.RoleListbox)})

	d := dispatcher.NewWithDefaults()
	d.SetZones(zones)
	d.RegisterHandler("open", setData("global"))
	d.RegisterScoped("page", "open", setData("page"), nil)

	tests := []struct {
		active string
		want   string
	}{
		{"board", "page"},
		{"page", "page"},
		{"other", "global"},
		{"", "global"},
	}

	for _, tt := range tests {
		t.Run(tt.active, func(t *testing.T) {
			d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithActive(tt.active)})
			d.Dispatch(command.New("open", nil))
			if d.State().Data != tt.want {
				t.Errorf("expected %q, got %v", tt.want, d.State().Data)
			}
		})
	}
}

func TestDispatchNamespaceRouting(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	ns := handler.NewBaseNamespaceHandler("todo")
	ns.Register("todo.toggle", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithData("toggled")
	})
	d.RegisterNamespace("todo", ns)

	if result := d.Dispatch(command.New("todo.toggle", nil)); !result.IsOK() {
		t.Fatalf("expected OK, got %s", result.Status)
	}
	if d.State().Data != "toggled" {
		t.Errorf("expected 'toggled', got %v", d.State().Data)
	}
	if result := d.Dispatch(command.New("todo.unknown", nil)); !errors.Is(result.Error, dispatcher.ErrNoHandler) {
		t.Errorf("expected ErrNoHandler for unknown namespaced command, got %v", result.Error)
	}
}

func TestDispatchPanicRecovery(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterHandlerFunc("boom", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		panic("kaboom")
	})

	result := d.Dispatch(command.New("boom", nil))

	if !errors.Is(result.Error, dispatcher.ErrPanic) {
		t.Errorf("expected ErrPanic, got %v", result.Error)
	}
	if d.Metrics().TotalPanics() != 1 {
		t.Errorf("expected 1 panic, got %d", d.Metrics().TotalPanics())
	}
}

func TestDispatchReleasesLockAfterPanic(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("x", setData("ok"))
	d.Hooks().RegisterPre(hook.NewPreDispatchFunc("explode", 0, func(cmd *command.Command, ctx *execctx.ExecutionContext) bool {
		if cmd.Payload == "panic" {
			panic("hook failed")
		}
		return true
	}))

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected the hook panic to propagate")
			}
		}()
		d.Dispatch(command.New("x", "panic"))
	}()

	done := make(chan handler.Result, 1)
	go func() { done <- d.Dispatch(command.New("x", nil)) }()

	select {
	case result := <-done:
		if !result.IsOK() {
			t.Errorf("expected OK after recovered panic, got %s", result.Status)
		}
	case <-time.After(time.Second):
		t.Fatal("second Dispatch blocked after a panicking hook")
	}
}

func TestDispatchHookOrderAndCancel(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	var order []string
	d.RegisterHandlerFunc("x", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		order = append(order, "handler:"+ctx.GetValueString("injected"))
		return handler.Success()
	})
	d.Hooks().RegisterPre(hook.NewPreDispatchFunc("before", 0, func(cmd *command.Command, ctx *execctx.ExecutionContext) bool {
		order = append(order, "before")
		ctx.SetValue("injected", "yes")
		return cmd.Payload != "cancel"
	}))
	d.Hooks().RegisterPost(hook.NewPostDispatchFunc("after", 0, func(cmd *command.Command, ctx *execctx.ExecutionContext, result *handler.Result) {
		order = append(order, "after")
	}))

	d.Dispatch(command.New("x", nil))
	want := []string{"before", "handler:yes", "after"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("expected %v, got %v", want, order)
		}
	}

	order = nil
	result := d.Dispatch(command.New("x", "cancel"))
	if result.Status != handler.StatusCancelled {
		t.Errorf("expected cancelled, got %s", result.Status)
	}
	if len(order) != 1 {
		t.Errorf("expected only the pre hook to run, got %v", order)
	}
}

type recordingTx struct {
	begins, ends int
}

func (r *recordingTx) BeginTransaction() { r.begins++ }
func (r *recordingTx) EndTransaction()   { r.ends++ }

func TestDispatchFollowUps(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	tx := &recordingTx{}
	d.SetTransactor(tx)

	var sources []command.Source
	d.RegisterHandlerFunc("append", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		sources = append(sources, cmd.Meta.Source)
		prev, _ := ctx.Data.(string)
		return handler.Success().WithData(prev + cmd.Payload.(string))
	})
	d.RegisterHandlerFunc("batch", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithDispatch(
			command.New("append", "a"),
			command.New("append", "b"),
		)
	})

	d.Dispatch(command.New("batch", nil))

	if d.State().Data != "ab" {
		t.Errorf("expected 'ab', got %v", d.State().Data)
	}
	if tx.begins != 1 || tx.ends != 1 {
		t.Errorf("expected one transaction, got %d/%d", tx.begins, tx.ends)
	}
	for _, s := range sources {
		if s != command.SourceCallback {
			t.Errorf("expected callback source, got %s", s)
		}
	}
}

func TestDispatchSingleFollowUpNoTransaction(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	tx := &recordingTx{}
	d.SetTransactor(tx)
	d.RegisterHandler("set", setData(1))
	d.RegisterHandlerFunc("one", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithDispatch(command.New("set", nil))
	})

	d.Dispatch(command.New("one", nil))
	if tx.begins != 0 {
		t.Errorf("expected no transaction, got %d", tx.begins)
	}
}

func TestDispatchMaxDepth(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMaxDepth(3))
	calls := 0
	d.RegisterHandlerFunc("loop", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		calls++
		return handler.Success().WithDispatch(command.New("loop", nil))
	})

	d.Dispatch(command.New("loop", nil))
	if calls != 4 {
		t.Errorf("expected 4 calls (depth 0..3), got %d", calls)
	}
}

func TestSubscribe(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("set", setData("v"))
	d.RegisterHandlerFunc("noop", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.NoOp()
	})

	var changes []dispatcher.Change
	unsubscribe := d.Subscribe(func(c dispatcher.Change) {
		changes = append(changes, c)
	})

	d.Dispatch(command.New("noop", nil))
	d.Dispatch(command.New("set", nil))

	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	c := changes[0]
	if c.Command.Type != "set" || c.Prev.Data != nil || c.Next.Data != "v" {
		t.Errorf("unexpected change %+v", c)
	}
	if !c.DataChanged() || c.FocusChanged() {
		t.Error("expected a data-only change")
	}

	unsubscribe()
	d.Dispatch(command.New("set", nil))
	if len(changes) != 1 {
		t.Errorf("expected no delivery after unsubscribe, got %d", len(changes))
	}
}

func TestSubscriberMayDispatch(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("first", setData(1))
	d.RegisterHandler("second", setData(2))

	d.Subscribe(func(c dispatcher.Change) {
		if c.Command.Type == "first" {
			d.Dispatch(command.New("second", nil))
		}
	})

	d.Dispatch(command.New("first", nil))
	if d.State().Data != 2 {
		t.Errorf("expected 2, got %v", d.State().Data)
	}
}

func TestDispatchFocusCommit(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandlerFunc("focus", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		f := ctx.Focus.WithZone("list", ctx.ZoneState("list").WithFocus("b", 1)).WithActive("list")
		return handler.Success().WithFocus(f)
	})

	d.Dispatch(command.New("focus", nil))

	got := d.State().Focus
	if got.ActiveZoneID != "list" || got.Zone("list").FocusedItemID != "b" {
		t.Errorf("unexpected focus %+v", got)
	}
}

func TestDispose(t *testing.T) {
	d := dispatcher.NewWithDefaults()
	d.RegisterHandler("set", setData(1))
	d.Dispose()

	result := d.Dispatch(command.New("set", nil))
	if !errors.Is(result.Error, dispatcher.ErrDisposed) {
		t.Errorf("expected ErrDisposed, got %v", result.Error)
	}
}

func TestMetricsRecordBlocked(t *testing.T) {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.RegisterScoped(dispatcher.GlobalScope, "never", setData(1), func(command.Command, *execctx.ExecutionContext) bool {
		return false
	})
	d.RegisterHandler("ok", setData(1))

	d.Dispatch(command.New("never", nil))
	d.Dispatch(command.New("ok", nil))

	m := d.Metrics()
	if m.TotalDispatches() != 2 {
		t.Errorf("expected 2 dispatches, got %d", m.TotalDispatches())
	}
	if m.TotalBlocked() != 1 {
		t.Errorf("expected 1 blocked, got %d", m.TotalBlocked())
	}
	if stats := m.CommandStats("ok"); stats == nil || stats.DispatchCount != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}
