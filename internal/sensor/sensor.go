package sensor

import (
	"log/slog"
	"sync"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/input"
	"github.com/dshills/focuskit/internal/input/gesture"
	"github.com/dshills/focuskit/internal/input/key"
	"github.com/dshills/focuskit/internal/zone"
)

// Kernel is the part of a kernel a sensor drives. *kernel.Kernel
// implements it.
type Kernel interface {
	Dispatch(cmd command.Command) handler.Result
	State() dispatcher.Snapshot
	Zone(id string) (zone.Metadata, bool)
	Bindings() input.Bindings
	Subscribe(fn dispatcher.Subscriber) func()
}

// Host applies kernel effects to the UI.
type Host interface {
	// Focus moves host focus to an item, or to the zone container when
	// itemID is empty.
	Focus(zoneID, itemID string)

	// Scroll brings an item into view.
	Scroll(zoneID, itemID string)

	// Announce speaks text through a live region.
	Announce(text string)
}

// Options configures a Sensor.
type Options struct {
	// Host receives effects. Nil drops them.
	Host Host

	// Gesture configures the pointer recognizer.
	Gesture gesture.Config

	// Logger receives guard and dispatch logs. Nil discards.
	Logger *slog.Logger
}

// KeyEvent is a sensed key press.
type KeyEvent struct {
	Event key.Event

	Composing        bool
	DefaultPrevented bool
	FromInspector    bool
	FromCombobox     bool

	// Conditions are extra flags for keybinding "when" clauses.
	Conditions map[string]bool
}

// Sensor feeds host events to a kernel.
type Sensor struct {
	kernel  Kernel
	host    Host
	logger  *slog.Logger
	pointer *gesture.Recognizer
	guard   Guard

	mu          sync.Mutex
	unsubscribe func()
}

// New creates a sensor for k and starts applying its effects to the host.
func New(k Kernel, opts Options) *Sensor {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Gesture == (gesture.Config{}) {
		opts.Gesture = gesture.DefaultConfig()
	}
	s := &Sensor{
		kernel:  k,
		host:    opts.Host,
		logger:  opts.Logger,
		pointer: gesture.NewRecognizer(opts.Gesture),
	}
	s.unsubscribe = k.Subscribe(s.apply)
	return s
}

// Guard returns the focus re-entrance guard.
func (s *Sensor) Guard() *Guard {
	return &s.guard
}

// Key resolves a key press and dispatches the bound command. The
// resolution tells the host whether the event was consumed: Fallback and
// Ignore leave it to the host.
func (s *Sensor) Key(ev KeyEvent) (input.Resolution, handler.Result) {
	in := s.input(ev)
	res := input.Resolve(in, s.kernel.Bindings())

	switch res.Kind {
	case input.Check, input.Dispatch:
		return res, s.kernel.Dispatch(res.Command)
	case input.Ignore:
		s.logger.Debug("key ignored", "key", ev.Event.String(), "reason", res.Reason)
	}
	return res, handler.NoOp()
}

// input builds the resolution input from the active zone.
func (s *Sensor) input(ev KeyEvent) input.Input {
	in := input.Input{
		Event:            ev.Event,
		Composing:        ev.Composing,
		DefaultPrevented: ev.DefaultPrevented,
		FromInspector:    ev.FromInspector,
		FromCombobox:     ev.FromCombobox,
		Conditions:       ev.Conditions,
	}

	f := s.kernel.State().Focus
	meta, ok := s.kernel.Zone(f.ActiveZoneID)
	if !ok {
		return in
	}
	zs := f.Zone(f.ActiveZoneID)
	in.ZoneID = f.ActiveZoneID
	in.Role = string(meta.Config.Role)
	in.ItemID = zone.FocusedItem(meta, zs)
	in.ItemRole = meta.Config.ItemRole
	in.CanCheck = meta.Callbacks.OnCheck != nil
	in.Typeahead = meta.Config.Typeahead
	in.Editing = zs.IsEditing()
	return in
}

// Pointer feeds a pointer event to the gesture recognizer and dispatches
// the recognized click.
//
// A click on a selectable zone's item selects it, with Ctrl or Meta
// toggling and Shift extending a range. A click on any other item focuses
// and activates it. A second click within the double-click window
// activates, and a third click is ignored. A click on a zone outside its items focuses the zone. Drag
// ends are returned to the host.
func (s *Sensor) Pointer(ev gesture.Event) gesture.Outcome {
	out := s.pointer.Handle(ev)
	if out.Kind != gesture.OutcomeClick {
		return out
	}

	if out.ItemID == "" {
		s.dispatch(command.New(command.Focus, command.FocusPayload{ZoneID: out.ZoneID}), command.SourcePointer)
		return out
	}

	item := command.ItemPayload{ZoneID: out.ZoneID, ItemID: out.ItemID}
	switch {
	case out.Count == 2:
		s.dispatch(command.New(command.Activate, item), command.SourcePointer)
		return out
	case out.Count > 2:
		return out
	}

	meta, ok := s.kernel.Zone(out.ZoneID)
	if ok && meta.Config.Selectable() {
		s.dispatch(command.New(command.Select, command.SelectPayload{
			ItemID: out.ItemID,
			Toggle: out.Modifiers.HasCtrl() || out.Modifiers.HasMeta(),
			Range:  out.Modifiers.HasShift(),
		}), command.SourcePointer)
		return out
	}

	s.dispatch(command.New(command.Focus, command.FocusPayload{ZoneID: out.ZoneID, ItemID: out.ItemID}), command.SourcePointer)
	s.dispatch(command.New(command.Activate, item), command.SourcePointer)
	return out
}

// FocusIn reports that host focus moved to an item. Notifications caused
// by the sensor applying a focus effect are dropped.
func (s *Sensor) FocusIn(zoneID, itemID string) handler.Result {
	if s.guard.Suppress(zoneID, itemID) {
		s.logger.Debug("focus-in suppressed", "zone", zoneID, "item", itemID)
		return handler.NoOp()
	}
	return s.dispatch(command.New(command.SyncFocus, command.FocusPayload{ZoneID: zoneID, ItemID: itemID}), command.SourceFocus)
}

// Mutated reports that the host removed or replaced elements. When the
// focused zone or item no longer exists, focus recovery is dispatched and
// Mutated returns true.
func (s *Sensor) Mutated() bool {
	f := s.kernel.State().Focus
	if f.ActiveZoneID == "" {
		return false
	}
	meta, ok := s.kernel.Zone(f.ActiveZoneID)
	if ok {
		focused := f.Zone(f.ActiveZoneID).FocusedItemID
		if focused == "" || meta.HasItem(focused) {
			return false
		}
	}
	s.dispatch(command.New(command.Recover, nil), command.SourceRecovery)
	return true
}

// Close stops applying effects.
func (s *Sensor) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Sensor) dispatch(cmd command.Command, src command.Source) handler.Result {
	return s.kernel.Dispatch(cmd.WithSource(src))
}

// apply hands a committed dispatch's effects to the host.
func (s *Sensor) apply(c dispatcher.Change) {
	if s.host == nil {
		return
	}
	for _, e := range c.Effects {
		switch e.Kind {
		case handler.EffectFocus:
			s.guard.Run(e.ZoneID, e.ItemID, func() {
				s.host.Focus(e.ZoneID, e.ItemID)
			})
		case handler.EffectScroll:
			s.host.Scroll(e.ZoneID, e.ItemID)
		case handler.EffectAnnounce:
			s.host.Announce(e.Text)
		case handler.EffectClipboard:
			// Written by the clipboard handler.
		}
	}
}
