package dispatcher

import (
	"time"

	"github.com/dshills/focuskit/internal/nav"
)

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool

	// MaxDepth limits how deeply follow-up commands may nest.
	MaxDepth int

	// Tolerances are the navigation pixel tolerances handed to handlers.
	Tolerances nav.Tolerances

	// TypeaheadTimeout is how long typed characters accumulate.
	TypeaheadTimeout time.Duration
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
		MaxDepth:         16,
		Tolerances:       nav.DefaultTolerances(),
		TypeaheadTimeout: 500 * time.Millisecond,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithMaxDepth returns a copy of the config with the follow-up depth limit set.
func (c Config) WithMaxDepth(depth int) Config {
	c.MaxDepth = depth
	return c
}

// WithTolerances returns a copy of the config with navigation tolerances set.
func (c Config) WithTolerances(tol nav.Tolerances) Config {
	c.Tolerances = tol
	return c
}

// WithTypeaheadTimeout returns a copy of the config with the typeahead timeout set.
func (c Config) WithTypeaheadTimeout(d time.Duration) Config {
	c.TypeaheadTimeout = d
	return c
}
