// Package teasensor feeds Bubble Tea messages to a sensor.
//
// A model owns one Adapter and offers it each message before its own
// handling:
//
//	func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
//		if m.focus.Update(msg) {
//			return m, nil
//		}
//		...
//	}
package teasensor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

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

// RecoverMsg asks the adapter to check for stale focus.
type RecoverMsg struct{}

// ScheduleRecovery returns a command that delivers a RecoverMsg. Return it
// from Update after rebuilding the view's zones.
func ScheduleRecovery() tea.Cmd {
	return func() tea.Msg { return RecoverMsg{} }
}

// Adapter converts Bubble Tea messages for one sensor.
type Adapter struct {
	sensor *sensor.Sensor
	hits   HitTester
	now    func() time.Time
}

// New creates an adapter. hits may be nil when mouse reporting is off.
func New(s *sensor.Sensor, hits HitTester) *Adapter {
	return &Adapter{sensor: s, hits: hits, now: time.Now}
}

// Update processes one message and reports whether the kernel consumed it.
func (a *Adapter) Update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Paste {
			return false
		}
		res, _ := a.sensor.Key(sensor.KeyEvent{Event: ConvertKey(msg)})
		return res.Kind == input.Check || res.Kind == input.Dispatch

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case tea.FocusMsg:
		return a.sensor.Mutated()

	case RecoverMsg:
		return a.sensor.Mutated()

	default:
		return false
	}
}

func (a *Adapter) handleMouse(msg tea.MouseMsg) bool {
	ev := gesture.Event{
		Pos:       geom.Point{X: float64(msg.X), Y: float64(msg.Y)},
		Modifiers: mouseMods(msg),
		Timestamp: a.now(),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		button, ok := convertButton(msg.Button)
		if !ok {
			return false
		}
		ev.Type = gesture.PointerDown
		ev.Button = button
		if a.hits != nil {
			ev.ZoneID, ev.ItemID, ev.OnDragHandle = a.hits.HitTest(msg.X, msg.Y)
		}
	case tea.MouseActionRelease:
		ev.Type = gesture.PointerUp
	default:
		ev.Type = gesture.PointerMove
	}

	return a.sensor.Pointer(ev).Kind != gesture.OutcomeNone
}

func mouseMods(msg tea.MouseMsg) key.Modifier {
	var m key.Modifier
	if msg.Shift {
		m = m.With(key.ModShift)
	}
	if msg.Ctrl {
		m = m.With(key.ModCtrl)
	}
	if msg.Alt {
		m = m.With(key.ModAlt)
	}
	return m
}

func convertButton(b tea.MouseButton) (gesture.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return gesture.ButtonPrimary, true
	case tea.MouseButtonMiddle:
		return gesture.ButtonAuxiliary, true
	case tea.MouseButtonRight:
		return gesture.ButtonSecondary, true
	default:
		return 0, false
	}
}

// ConvertKey converts a Bubble Tea key message to a key event. Keys with
// no equivalent return an event with key.KeyNone.
func ConvertKey(msg tea.KeyMsg) key.Event {
	var mods key.Modifier
	if msg.Alt {
		mods = mods.With(key.ModAlt)
	}
	special := func(k key.Key, extra ...key.Modifier) key.Event {
		m := mods
		for _, x := range extra {
			m = m.With(x)
		}
		return key.NewSpecialEvent(k, m)
	}

	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return key.Event{Modifiers: mods}
		}
		r := msg.Runes[0]
		if r >= 'A' && r <= 'Z' {
			mods = mods.With(key.ModShift)
		}
		return key.NewRuneEvent(r, mods)
	case tea.KeySpace:
		return special(key.KeySpace)
	case tea.KeyEnter:
		return special(key.KeyEnter)
	case tea.KeyTab:
		return special(key.KeyTab)
	case tea.KeyShiftTab:
		return special(key.KeyTab, key.ModShift)
	case tea.KeyEsc:
		return special(key.KeyEscape)
	case tea.KeyBackspace:
		return special(key.KeyBackspace)
	case tea.KeyDelete:
		return special(key.KeyDelete)
	case tea.KeyInsert:
		return special(key.KeyInsert)
	case tea.KeyHome:
		return special(key.KeyHome)
	case tea.KeyEnd:
		return special(key.KeyEnd)
	case tea.KeyShiftHome:
		return special(key.KeyHome, key.ModShift)
	case tea.KeyShiftEnd:
		return special(key.KeyEnd, key.ModShift)
	case tea.KeyPgUp:
		return special(key.KeyPageUp)
	case tea.KeyPgDown:
		return special(key.KeyPageDown)
	case tea.KeyUp:
		return special(key.KeyUp)
	case tea.KeyDown:
		return special(key.KeyDown)
	case tea.KeyLeft:
		return special(key.KeyLeft)
	case tea.KeyRight:
		return special(key.KeyRight)
	case tea.KeyShiftUp:
		return special(key.KeyUp, key.ModShift)
	case tea.KeyShiftDown:
		return special(key.KeyDown, key.ModShift)
	case tea.KeyShiftLeft:
		return special(key.KeyLeft, key.ModShift)
	case tea.KeyShiftRight:
		return special(key.KeyRight, key.ModShift)
	case tea.KeyCtrlUp:
		return special(key.KeyUp, key.ModCtrl)
	case tea.KeyCtrlDown:
		return special(key.KeyDown, key.ModCtrl)
	case tea.KeyCtrlLeft:
		return special(key.KeyLeft, key.ModCtrl)
	case tea.KeyCtrlRight:
		return special(key.KeyRight, key.ModCtrl)
	case tea.KeyF1:
		return special(key.KeyF1)
	case tea.KeyF2:
		return special(key.KeyF2)
	case tea.KeyF3:
		return special(key.KeyF3)
	case tea.KeyF4:
		return special(key.KeyF4)
	case tea.KeyF5:
		return special(key.KeyF5)
	case tea.KeyF6:
		return special(key.KeyF6)
	case tea.KeyF7:
		return special(key.KeyF7)
	case tea.KeyF8:
		return special(key.KeyF8)
	case tea.KeyF9:
		return special(key.KeyF9)
	case tea.KeyF10:
		return special(key.KeyF10)
	case tea.KeyF11:
		return special(key.KeyF11)
	case tea.KeyF12:
		return special(key.KeyF12)
	}

	// Control letters share codes with Tab and Enter, which are matched
	// above.
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return key.NewRuneEvent('a'+rune(msg.Type-tea.KeyCtrlA), mods.With(key.ModCtrl))
	}
	return key.Event{Modifiers: mods}
}
