package gesture

import (
	"testing"
	"time"

	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/input/key"
)

func down(x, y float64, item string, handle bool) Event {
	return Event{Type: PointerDown, Pos: geom.Point{X: x, Y: y}, ItemID: item, ZoneID: "list", OnDragHandle: handle}
}

func move(x, y float64) Event {
	return Event{Type: PointerMove, Pos: geom.Point{X: x, Y: y}}
}

func up(x, y float64) Event {
	return Event{Type: PointerUp, Pos: geom.Point{X: x, Y: y}}
}

func TestStepTransitions(t *testing.T) {
	pending := State{Phase: PhasePending, ItemID: "a", ZoneID: "list"}
	pendingHandle := State{Phase: PhasePending, ItemID: "a", ZoneID: "list", HasDragHandle: true}
	dragging := State{Phase: PhaseDrag, ItemID: "a", ZoneID: "list", HasDragHandle: true}

	tests := []struct {
		name      string
		state     State
		ev        Event
		wantPhase Phase
		wantOut   OutcomeKind
	}{
		{"secondary button ignored", State{}, Event{Type: PointerDown, Button: ButtonSecondary, ItemID: "a"}, PhaseIdle, OutcomeNone},
		{"no target", State{}, Event{Type: PointerDown}, PhaseIdle, OutcomeNone},
		{"press item", State{}, down(0, 0, "a", false), PhasePending, OutcomeNone},
		{"press zone only", State{}, Event{Type: PointerDown, ZoneID: "list"}, PhasePending, OutcomeNone},
		{"jitter without handle", pending, move(20, 20), PhasePending, OutcomeNone},
		{"small move with handle", pendingHandle, move(5, 5), PhasePending, OutcomeNone},
		{"drag with handle", pendingHandle, move(6, 0), PhaseDrag, OutcomeNone},
		{"drag vertical", pendingHandle, move(0, -6), PhaseDrag, OutcomeNone},
		{"drag idempotent", dragging, move(100, 100), PhaseDrag, OutcomeNone},
		{"move while idle", State{}, move(100, 100), PhaseIdle, OutcomeNone},
		{"click", pending, up(1, 1), PhaseIdle, OutcomeClick},
		{"drag end", dragging, up(50, 0), PhaseIdle, OutcomeDragEnd},
		{"up while idle", State{}, up(0, 0), PhaseIdle, OutcomeNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, out := Step(tt.state, tt.ev, DefaultDragThreshold)
			if next.Phase != tt.wantPhase {
				t.Errorf("Step() phase = %v, want %v", next.Phase, tt.wantPhase)
			}
			if out.Kind != tt.wantOut {
				t.Errorf("Step() outcome = %v, want %v", out.Kind, tt.wantOut)
			}
		})
	}
}

func TestStepRecordsPress(t *testing.T) {
	ev := down(10, 20, "b", true)
	ev.Modifiers = key.ModShift
	s, _ := Step(State{}, ev, 0)

	want := State{
		Phase:         PhasePending,
		Start:         geom.Point{X: 10, Y: 20},
		ItemID:        "b",
		ZoneID:        "list",
		HasDragHandle: true,
		Modifiers:     key.ModShift,
	}
	if s != want {
		t.Errorf("Step() = %+v, want %+v", s, want)
	}

	_, out := Step(s, up(11, 20), 0)
	if out.ItemID != "b" || out.ZoneID != "list" || out.Modifiers != key.ModShift {
		t.Errorf("Step() outcome = %+v", out)
	}
}

func TestRecognizerClickCount(t *testing.T) {
	r := NewRecognizer(DefaultConfig())
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	click := func(item string, x float64, at time.Time) Outcome {
		d := down(x, 0, item, false)
		d.Timestamp = at
		r.Handle(d)
		u := up(x, 0)
		u.Timestamp = at
		return r.Handle(u)
	}

	if got := click("a", 0, t0).Count; got != 1 {
		t.Errorf("first click Count = %d, want 1", got)
	}
	if got := click("a", 1, t0.Add(100*time.Millisecond)).Count; got != 2 {
		t.Errorf("second click Count = %d, want 2", got)
	}
	if got := click("b", 1, t0.Add(200*time.Millisecond)).Count; got != 1 {
		t.Errorf("click on other item Count = %d, want 1", got)
	}
	if got := click("b", 1, t0.Add(time.Second)).Count; got != 1 {
		t.Errorf("late click Count = %d, want 1", got)
	}
}

func TestRecognizerDragResetsClicks(t *testing.T) {
	r := NewRecognizer(DefaultConfig())
	r.Handle(down(0, 0, "a", true))
	r.Handle(move(10, 0))
	if r.State().Phase != PhaseDrag {
		t.Fatalf("Phase = %v, want DRAG", r.State().Phase)
	}
	out := r.Handle(up(10, 0))
	if out.Kind != OutcomeDragEnd || out.Start != (geom.Point{}) || out.End != (geom.Point{X: 10}) {
		t.Errorf("Handle() = %+v, want DRAG_END from origin", out)
	}

	r.Handle(down(0, 0, "a", false))
	r.Reset()
	if r.State().Phase != PhaseIdle {
		t.Errorf("Phase after Reset = %v, want IDLE", r.State().Phase)
	}
}
