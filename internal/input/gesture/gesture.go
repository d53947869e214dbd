// Package gesture recognizes clicks and drags from raw pointer events.
//
// Step is a pure transition function over State. Recognizer wraps it with
// click counting for hosts that feed it a live event stream.
package gesture

import (
	"math"
	"time"

	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/input/key"
)

// DefaultDragThreshold is the movement, in pixels along either axis, that a
// pending press must exceed to become a drag.
const DefaultDragThreshold = 5

// Phase is the recognizer phase.
type Phase uint8

const (
	// PhaseIdle is the initial and terminal phase.
	PhaseIdle Phase = iota
	// PhasePending means a press is down but has not become a drag.
	PhasePending
	// PhaseDrag means a drag is in progress.
	PhaseDrag
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhasePending:
		return "PENDING"
	case PhaseDrag:
		return "DRAG"
	default:
		return "unknown"
	}
}

// Button is a pointer button using DOM numbering.
type Button uint8

const (
	// ButtonPrimary is the main (left) button.
	ButtonPrimary Button = iota
	// ButtonAuxiliary is the middle button.
	ButtonAuxiliary
	// ButtonSecondary is the right button.
	ButtonSecondary
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonAuxiliary:
		return "auxiliary"
	case ButtonSecondary:
		return "secondary"
	default:
		return "other"
	}
}

// EventType is the kind of pointer event.
type EventType uint8

const (
	// PointerDown is a button press.
	PointerDown EventType = iota
	// PointerMove is pointer movement.
	PointerMove
	// PointerUp is a button release.
	PointerUp
)

// Event is a raw pointer event.
type Event struct {
	Type   EventType
	Button Button
	Pos    geom.Point

	// ItemID and ZoneID are the hit-tested targets of a press.
	ItemID string
	ZoneID string

	// OnDragHandle reports that the press hit a drag handle.
	OnDragHandle bool

	// Modifiers are the keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// State is the recognizer state.
type State struct {
	Phase         Phase
	Start         geom.Point
	ItemID        string
	ZoneID        string
	HasDragHandle bool
	Modifiers     key.Modifier
}

// OutcomeKind is the kind of a recognized gesture.
type OutcomeKind uint8

const (
	// OutcomeNone means nothing was recognized.
	OutcomeNone OutcomeKind = iota
	// OutcomeClick is a press and release without a drag.
	OutcomeClick
	// OutcomeDragEnd is the release that ends a drag.
	OutcomeDragEnd
)

// String returns a string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeClick:
		return "CLICK"
	case OutcomeDragEnd:
		return "DRAG_END"
	default:
		return "NONE"
	}
}

// Outcome is the result of a transition.
type Outcome struct {
	Kind      OutcomeKind
	ItemID    string
	ZoneID    string
	Modifiers key.Modifier

	// Start and End are the press and release positions.
	Start geom.Point
	End   geom.Point

	// Count is the consecutive click count. Only Recognizer sets it.
	Count int
}

// Step applies one pointer event to s. threshold is the drag threshold in
// pixels; a value <= 0 uses DefaultDragThreshold.
func Step(s State, ev Event, threshold float64) (State, Outcome) {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}

	switch ev.Type {
	case PointerDown:
		if ev.Button != ButtonPrimary {
			return s, Outcome{}
		}
		if ev.ItemID == "" && ev.ZoneID == "" {
			return State{}, Outcome{}
		}
		return State{
			Phase:         PhasePending,
			Start:         ev.Pos,
			ItemID:        ev.ItemID,
			ZoneID:        ev.ZoneID,
			HasDragHandle: ev.OnDragHandle,
			Modifiers:     ev.Modifiers,
		}, Outcome{}

	case PointerMove:
		if s.Phase != PhasePending || !s.HasDragHandle {
			return s, Outcome{}
		}
		if exceeds(s.Start, ev.Pos, threshold) {
			s.Phase = PhaseDrag
		}
		return s, Outcome{}

	case PointerUp:
		out := Outcome{
			ItemID:    s.ItemID,
			ZoneID:    s.ZoneID,
			Modifiers: s.Modifiers,
			Start:     s.Start,
			End:       ev.Pos,
		}
		switch s.Phase {
		case PhasePending:
			out.Kind = OutcomeClick
		case PhaseDrag:
			out.Kind = OutcomeDragEnd
		default:
			return State{}, Outcome{}
		}
		return State{}, out
	}
	return s, Outcome{}
}

func exceeds(from, to geom.Point, threshold float64) bool {
	return math.Abs(to.X-from.X) > threshold || math.Abs(to.Y-from.Y) > threshold
}
