// Package tcellsensor feeds tcell terminal events to a sensor.
package tcellsensor

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/input"
	"github.com/dshills/focuskit/internal/input/gesture"
	"github.com/dshills/focuskit/internal/input/key"
	"github.com/dshills/focuskit/internal/sensor"
)

// HitTester maps a terminal cell to the zone and item drawn there.
type HitTester interface {
	HitTest(x, y int) (zoneID, itemID string, dragHandle bool)
}

// RecoverEvent asks the adapter to check for stale focus after the host
// rebuilt part of the screen.
type RecoverEvent struct {
	tcell.EventTime
}

// NewRecoverEvent creates a recovery event stamped with the current time.
func NewRecoverEvent() *RecoverEvent {
	ev := &RecoverEvent{}
	ev.SetEventNow()
	return ev
}

// ScheduleRecovery posts a RecoverEvent to the screen's event queue.
func ScheduleRecovery(screen tcell.Screen) error {
	return screen.PostEvent(NewRecoverEvent())
}

// Adapter converts tcell events for one sensor.
type Adapter struct {
	sensor  *sensor.Sensor
	hits    HitTester
	buttons tcell.ButtonMask
}

// New creates an adapter. hits may be nil when the host has no mouse
// support.
func New(s *sensor.Sensor, hits HitTester) *Adapter {
	return &Adapter{sensor: s, hits: hits}
}

// HandleEvent processes one tcell event and reports whether the kernel
// consumed it.
func (a *Adapter) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		res, _ := a.sensor.Key(sensor.KeyEvent{Event: ConvertKey(e)})
		return res.Kind == input.Check || res.Kind == input.Dispatch

	case *tcell.EventMouse:
		return a.handleMouse(e)

	case *tcell.EventFocus:
		if e.Focused {
			return a.sensor.Mutated()
		}
		return false

	case *RecoverEvent:
		return a.sensor.Mutated()

	default:
		return false
	}
}

const pointerButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// handleMouse turns button state changes into pointer down, up and move
// events. tcell reports the held buttons, not transitions.
func (a *Adapter) handleMouse(e *tcell.EventMouse) bool {
	x, y := e.Position()
	held := e.Buttons() & pointerButtons
	pressed := held &^ a.buttons
	released := a.buttons &^ held
	a.buttons = held

	base := gesture.Event{
		Pos:       geom.Point{X: float64(x), Y: float64(y)},
		Modifiers: convertMod(e.Modifiers()),
		Timestamp: e.When(),
	}

	var events []gesture.Event
	if released != 0 {
		up := base
		up.Type = gesture.PointerUp
		up.Button = convertButton(released)
		events = append(events, up)
	}
	if pressed != 0 {
		down := base
		down.Type = gesture.PointerDown
		down.Button = convertButton(pressed)
		if a.hits != nil {
			down.ZoneID, down.ItemID, down.OnDragHandle = a.hits.HitTest(x, y)
		}
		events = append(events, down)
	}
	if len(events) == 0 {
		move := base
		move.Type = gesture.PointerMove
		events = append(events, move)
	}

	consumed := false
	for _, ev := range events {
		if out := a.sensor.Pointer(ev); out.Kind != gesture.OutcomeNone {
			consumed = true
		}
	}
	return consumed
}

// ConvertKey converts a tcell key event to a key event.
func ConvertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())

	switch k := e.Key(); k {
	case tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods)
	case tcell.KeyBacktab:
		return key.NewSpecialEvent(key.KeyTab, mods.With(key.ModShift))
	case tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, mods)
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods)
	case tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, mods)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods)
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods)
	case tcell.KeyInsert:
		return key.NewSpecialEvent(key.KeyInsert, mods)
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods)
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods)
	case tcell.KeyPgUp:
		return key.NewSpecialEvent(key.KeyPageUp, mods)
	case tcell.KeyPgDn:
		return key.NewSpecialEvent(key.KeyPageDown, mods)
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods)
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods)
	case tcell.KeyLeft:
		return key.NewSpecialEvent(key.KeyLeft, mods)
	case tcell.KeyRight:
		return key.NewSpecialEvent(key.KeyRight, mods)
	case tcell.KeyCtrlSpace:
		return key.NewSpecialEvent(key.KeySpace, mods.With(key.ModCtrl))
	default:
		if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
			return key.NewSpecialEvent(key.KeyF1+key.Key(k-tcell.KeyF1), mods)
		}
		// Control letters share codes with Tab, Enter and Backspace, so
		// they are matched by range after the named keys.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return key.NewRuneEvent('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))
		}
		return key.Event{Modifiers: mods, Timestamp: e.When()}
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		result = result.With(key.ModMeta)
	}
	return result
}

func convertButton(b tcell.ButtonMask) gesture.Button {
	switch {
	case b&tcell.Button1 != 0:
		return gesture.ButtonPrimary
	case b&tcell.Button3 != 0:
		return gesture.ButtonAuxiliary
	default:
		return gesture.ButtonSecondary
	}
}
