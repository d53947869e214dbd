package gesture

import (
	"sync"
	"time"
)

// Config configures a Recognizer.
type Config struct {
	// DragThreshold is the movement in pixels that starts a drag.
	DragThreshold float64

	// DoubleClickTime is the maximum time between clicks for a double-click.
	DoubleClickTime time.Duration

	// DoubleClickDistance is the maximum distance between clicks for a double-click.
	DoubleClickDistance float64
}

// DefaultConfig returns the default recognizer configuration.
func DefaultConfig() Config {
	return Config{
		DragThreshold:       DefaultDragThreshold,
		DoubleClickTime:     400 * time.Millisecond,
		DoubleClickDistance: 4,
	}
}

// Recognizer feeds a live pointer stream through Step and counts clicks.
type Recognizer struct {
	mu     sync.Mutex
	config Config
	state  State
	click  *clickTracker
}

// NewRecognizer creates a recognizer with the given configuration.
func NewRecognizer(config Config) *Recognizer {
	return &Recognizer{
		config: config,
		click:  newClickTracker(config.DoubleClickTime, config.DoubleClickDistance),
	}
}

// Handle applies a pointer event and returns the recognized outcome.
func (r *Recognizer) Handle(ev Event) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, out := Step(r.state, ev, r.config.DragThreshold)
	r.state = next

	switch out.Kind {
	case OutcomeClick:
		out.Count = r.click.recordClick(out.End, out.ItemID, ev.Timestamp)
	case OutcomeDragEnd:
		r.click.reset()
	}
	return out
}

// State returns the current recognizer state.
func (r *Recognizer) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Reset returns the recognizer to idle and forgets click history.
func (r *Recognizer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = State{}
	r.click.reset()
}
