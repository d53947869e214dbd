package history

import (
	"fmt"
	"testing"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// todos is immutable test data: every change returns a new slice.
type todos []string

func add(list todos, item string) todos {
	out := make(todos, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

func newKernel(t *testing.T) (*dispatcher.Dispatcher, *History) {
	t.Helper()

	zones := zone.NewRegistry()
	zones.Register("list", zone.Metadata{Config: zone.Preset(zone.RoleListbox), Items: []string{"a", "b", "c"}})

	d := dispatcher.NewWithDefaults()
	d.SetZones(zones)
	h := New(DefaultLimit)
	d.SetTransactor(h)
	d.Hooks().Register(NewMiddleware(h, nil))
	d.RegisterSet(NewHandler(h))

	d.RegisterHandlerFunc("todo.add", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		list, _ := ctx.Data.(todos)
		return handler.Success().WithData(add(list, cmd.Payload.(string)))
	})
	d.RegisterHandlerFunc("todo.same", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithData(ctx.Data)
	})
	d.RegisterHandlerFunc("todo.batch", func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		return handler.Success().WithDispatch(
			command.New("todo.add", "x"),
			command.New("todo.add", "y"),
		)
	})
	d.RegisterHandlerFunc(command.Navigate, func(cmd command.Command, ctx *execctx.ExecutionContext) handler.Result {
		f := ctx.Focus.WithZone("list", ctx.ZoneState("list").WithFocus("b", 1)).WithActive("list")
		return handler.Success().WithFocus(f)
	})

	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithActive("list"), Data: todos{}})
	return d, h
}

func data(d *dispatcher.Dispatcher) todos {
	v, _ := d.State().Data.(todos)
	return v
}

func TestDispatchRecordsEntry(t *testing.T) {
	d, h := newKernel(t)

	d.Dispatch(command.New("todo.add", "milk"))

	if got := len(h.Past()); got != 1 {
		t.Fatalf("len(Past()) = %d, want 1", got)
	}
	e := h.Past()[0]
	if e.Command.Type != "todo.add" || len(e.Snapshot.(todos)) != 0 {
		t.Errorf("Past()[0] = %+v", e)
	}
	if e.GroupID != "" {
		t.Errorf("GroupID = %q, want empty", e.GroupID)
	}
}

func TestSkipRules(t *testing.T) {
	tests := []struct {
		name string
		cmd  command.Command
	}{
		{"passthrough", command.New(command.Navigate, command.NavigatePayload{})},
		{"no log", command.New("todo.add", "x").WithoutLog()},
		{"same data", command.New("todo.same", nil)},
		{"unknown command", command.New("todo.unknown", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, h := newKernel(t)
			d.Dispatch(tt.cmd)
			if got := len(h.Past()); got != 0 {
				t.Errorf("len(Past()) = %d, want 0", got)
			}
		})
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	d, h := newKernel(t)

	d.Dispatch(command.New("todo.add", "milk"))
	d.Dispatch(command.New("todo.add", "eggs"))
	after := data(d)

	res := d.Dispatch(command.New(command.Undo, nil))
	if !res.IsOK() {
		t.Fatalf("Undo status = %s, want ok", res.Status)
	}
	if got := data(d); len(got) != 1 || got[0] != "milk" {
		t.Errorf("data after undo = %v, want [milk]", got)
	}
	if len(h.Past()) != 1 || len(h.Future()) != 1 {
		t.Errorf("past/future = %d/%d, want 1/1", len(h.Past()), len(h.Future()))
	}

	d.Dispatch(command.New(command.Redo, nil))
	if got := data(d); fmt.Sprint(got) != fmt.Sprint(after) {
		t.Errorf("data after redo = %v, want %v", got, after)
	}
	if len(h.Past()) != 2 || len(h.Future()) != 0 {
		t.Errorf("past/future = %d/%d, want 2/0", len(h.Past()), len(h.Future()))
	}
}

func TestNewCommandClearsFuture(t *testing.T) {
	d, h := newKernel(t)

	d.Dispatch(command.New("todo.add", "a"))
	d.Dispatch(command.New(command.Undo, nil))
	if !h.CanRedo() {
		t.Fatal("CanRedo() = false after undo")
	}

	d.Dispatch(command.New("todo.add", "b"))
	if h.CanRedo() {
		t.Error("CanRedo() = true after a new command")
	}
}

func TestUndoNothing(t *testing.T) {
	d, _ := newKernel(t)

	res := d.Dispatch(command.New(command.Undo, nil))
	if res.Status != handler.StatusNoOp {
		t.Errorf("Undo status = %s, want no-op", res.Status)
	}
	res = d.Dispatch(command.New(command.Redo, nil))
	if res.Status != handler.StatusNoOp {
		t.Errorf("Redo status = %s, want no-op", res.Status)
	}
}

func TestUndoRestoresFocus(t *testing.T) {
	d, _ := newKernel(t)

	d.Dispatch(command.New(command.Navigate, nil)) // focus b
	d.Dispatch(command.New("todo.add", "milk"))

	// Move focus elsewhere, then undo.
	d.Reset(dispatcher.Snapshot{Focus: d.State().Focus.WithZone("list", state.ZoneState{}.WithFocus("c", 2)), Data: d.State().Data})
	d.Dispatch(command.New(command.Undo, nil))

	if got := d.State().Focus.Zone("list").FocusedItemID; got != "b" {
		t.Errorf("focused after undo = %q, want b", got)
	}
}

func TestFollowUpsUndoAsOneStep(t *testing.T) {
	d, h := newKernel(t)

	d.Dispatch(command.New("todo.add", "first"))
	d.Dispatch(command.New("todo.batch", nil))

	past := h.Past()
	if len(past) != 3 {
		t.Fatalf("len(Past()) = %d, want 3", len(past))
	}
	if past[1].GroupID == "" || past[1].GroupID != past[2].GroupID {
		t.Errorf("batch entries group = %q, %q; want one shared id", past[1].GroupID, past[2].GroupID)
	}

	d.Dispatch(command.New(command.Undo, nil))
	if got := data(d); len(got) != 1 || got[0] != "first" {
		t.Errorf("data after undo = %v, want [first]", got)
	}

	d.Dispatch(command.New(command.Redo, nil))
	if got := data(d); len(got) != 3 {
		t.Errorf("data after redo = %v, want 3 items", got)
	}
}

func TestZoneUndoCallbackTakesPrecedence(t *testing.T) {
	zones := zone.NewRegistry()
	calls := 0
	zones.Register("editor", zone.Metadata{
		Config: zone.Preset(zone.RoleGroup),
		Items:  []string{"a"},
		Callbacks: zone.Callbacks{
			OnUndo: func(cur zone.Cursor) []command.Command {
				calls++
				return nil
			},
		},
	})

	d := dispatcher.NewWithDefaults()
	d.SetZones(zones)
	h := New(DefaultLimit)
	d.RegisterSet(NewHandler(h))
	h.Push(Entry{Command: command.New("x", nil), Snapshot: "old"})
	d.Reset(dispatcher.Snapshot{Focus: state.NewFocus().WithActive("editor"), Data: "new"})

	d.Dispatch(command.New(command.Undo, nil))

	if calls != 1 {
		t.Errorf("OnUndo calls = %d, want 1", calls)
	}
	if d.State().Data != "new" {
		t.Errorf("data = %v, want unchanged", d.State().Data)
	}
}

func TestLimitEvictsOldest(t *testing.T) {
	h := New(3)
	for i := range 5 {
		h.Push(Entry{Command: command.New(fmt.Sprint(i), nil)})
	}

	past := h.Past()
	if len(past) != 3 {
		t.Fatalf("len(Past()) = %d, want 3", len(past))
	}
	if past[0].Command.Type != "2" {
		t.Errorf("oldest = %q, want 2", past[0].Command.Type)
	}

	h.SetLimit(2)
	if len(h.Past()) != 2 || h.Limit() != 2 {
		t.Errorf("after SetLimit: len = %d, limit = %d", len(h.Past()), h.Limit())
	}
}

func TestLimitEvictsWholeTransactions(t *testing.T) {
	h := New(3)
	h.Transaction(func() {
		h.Push(Entry{Command: command.New("g", nil)})
		h.Push(Entry{Command: command.New("g", nil)})
	})
	h.Push(Entry{Command: command.New("a", nil)})
	h.Push(Entry{Command: command.New("b", nil)})

	past := h.Past()
	if len(past) != 2 {
		t.Fatalf("len(Past()) = %d, want 2", len(past))
	}
	for _, e := range past {
		if e.GroupID != "" {
			t.Errorf("Past() kept part of a transaction: %+v", e)
		}
	}

	h.Transaction(func() {
		for range 3 {
			h.Push(Entry{Command: command.New("t", nil)})
		}
	})
	h.SetLimit(2)
	past = h.Past()
	if len(past) != 3 {
		t.Fatalf("len(Past()) = %d, want the newest transaction kept whole", len(past))
	}
	if _, err := h.Undo(Point{}); err != nil {
		t.Fatal(err)
	}
	if h.CanUndo() {
		t.Errorf("CanUndo() = true, want the transaction to be the only step")
	}
}

func TestDefaultLimit(t *testing.T) {
	d, h := newKernel(t)
	for i := range DefaultLimit + 5 {
		d.Dispatch(command.New("todo.add", fmt.Sprint(i)))
	}
	if got := len(h.Past()); got != DefaultLimit {
		t.Errorf("len(Past()) = %d, want %d", got, DefaultLimit)
	}
}

func TestNestedTransactions(t *testing.T) {
	h := New(0)
	ids := 0
	h.newID = func() string {
		ids++
		return fmt.Sprintf("g%d", ids)
	}

	h.BeginTransaction()
	h.Push(Entry{})
	h.Transaction(func() {
		h.Push(Entry{})
	})
	if !h.InTransaction() {
		t.Error("InTransaction() = false inside outer transaction")
	}
	h.EndTransaction()
	h.EndTransaction() // unbalanced end is ignored
	h.Push(Entry{})

	past := h.Past()
	want := []string{"g1", "g1", ""}
	for i, e := range past {
		if e.GroupID != want[i] {
			t.Errorf("Past()[%d].GroupID = %q, want %q", i, e.GroupID, want[i])
		}
	}

	if _, err := h.Undo(Point{}); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Undo(Point{}); err != nil {
		t.Fatal(err)
	}
	if len(h.Past()) != 0 || len(h.Future()) != 3 {
		t.Errorf("past/future = %d/%d, want 0/3", len(h.Past()), len(h.Future()))
	}

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("Clear() left history")
	}
}
