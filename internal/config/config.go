package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/history"
	"github.com/dshills/focuskit/internal/input/gesture"
	"github.com/dshills/focuskit/internal/input/keymap"
	"github.com/dshills/focuskit/internal/nav"
	"github.com/dshills/focuskit/internal/persist"
)

// InlineKeymap is the name of the keymap built from inline bindings.
const InlineKeymap = "config"

// Config is the kernel configuration.
type Config struct {
	History     HistoryConfig     `toml:"history" yaml:"history"`
	Gesture     GestureConfig     `toml:"gesture" yaml:"gesture"`
	Navigation  NavigationConfig  `toml:"navigation" yaml:"navigation"`
	Persistence PersistenceConfig `toml:"persistence" yaml:"persistence"`
	Keymap      KeymapConfig      `toml:"keymap" yaml:"keymap"`
	Log         LogConfig         `toml:"log" yaml:"log"`
	Dispatch    DispatchConfig    `toml:"dispatch" yaml:"dispatch"`
}

// HistoryConfig configures undo/redo.
type HistoryConfig struct {
	// Limit is the maximum number of undo entries.
	Limit int `toml:"limit" yaml:"limit"`
}

// GestureConfig configures pointer gesture recognition.
type GestureConfig struct {
	// DragThreshold is the movement in pixels that turns a press into a drag.
	DragThreshold float64 `toml:"drag_threshold" yaml:"drag_threshold"`

	// DoubleClickMS is the maximum time between clicks of a double click.
	DoubleClickMS int `toml:"double_click_ms" yaml:"double_click_ms"`

	// DoubleClickDistance is the maximum pointer travel between clicks.
	DoubleClickDistance float64 `toml:"double_click_distance" yaml:"double_click_distance"`
}

// NavigationConfig configures spatial navigation and typeahead.
type NavigationConfig struct {
	EdgeEntryTolerance float64 `toml:"edge_entry_tolerance" yaml:"edge_entry_tolerance"`
	AxisTieTolerance   float64 `toml:"axis_tie_tolerance" yaml:"axis_tie_tolerance"`
	SideTolerance      float64 `toml:"side_tolerance" yaml:"side_tolerance"`
	TypeaheadTimeoutMS int     `toml:"typeahead_timeout_ms" yaml:"typeahead_timeout_ms"`
}

// PersistenceConfig configures state persistence. An empty Key disables it.
type PersistenceConfig struct {
	Key        string `toml:"key" yaml:"key"`
	DebounceMS int    `toml:"debounce_ms" yaml:"debounce_ms"`

	// Path is the SQLite file. Empty keeps state in memory.
	Path string `toml:"path" yaml:"path"`
}

// KeymapConfig configures keybindings.
type KeymapConfig struct {
	// File is a keymap file loaded on start and watched for changes.
	File string `toml:"file" yaml:"file"`

	// Bindings are global bindings declared inline.
	Bindings []keymap.Binding `toml:"bindings" yaml:"bindings"`

	// NoDefaults skips the built-in bindings.
	NoDefaults bool `toml:"no_defaults" yaml:"no_defaults"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level" yaml:"level"`
}

// DispatchConfig configures the command kernel.
type DispatchConfig struct {
	// RecoverPanics turns handler panics into error results.
	RecoverPanics bool `toml:"recover_panics" yaml:"recover_panics"`

	// MaxDepth limits nested follow-up commands.
	MaxDepth int `toml:"max_depth" yaml:"max_depth"`

	// Metrics enables dispatch statistics.
	Metrics bool `toml:"metrics" yaml:"metrics"`

	// SlowMS logs a warning for dispatches slower than this. Zero disables.
	SlowMS int `toml:"slow_ms" yaml:"slow_ms"`

	// Deny lists command types that are cancelled before their handler runs.
	Deny []string `toml:"deny" yaml:"deny"`
}

// Default returns the default configuration.
func Default() Config {
	tol := nav.DefaultTolerances()
	g := gesture.DefaultConfig()
	d := dispatcher.DefaultConfig()
	return Config{
		History: HistoryConfig{Limit: history.DefaultLimit},
		Gesture: GestureConfig{
			DragThreshold:       g.DragThreshold,
			DoubleClickMS:       int(g.DoubleClickTime / time.Millisecond),
			DoubleClickDistance: g.DoubleClickDistance,
		},
		Navigation: NavigationConfig{
			EdgeEntryTolerance: tol.EdgeEntry,
			AxisTieTolerance:   tol.AxisTie,
			SideTolerance:      tol.Side,
			TypeaheadTimeoutMS: int(d.TypeaheadTimeout / time.Millisecond),
		},
		Persistence: PersistenceConfig{
			DebounceMS: int(persist.DefaultDebounce / time.Millisecond),
		},
		Log: LogConfig{Level: "info"},
		Dispatch: DispatchConfig{
			RecoverPanics: d.RecoverFromPanic,
			MaxDepth:      d.MaxDepth,
		},
	}
}

// Validate checks every section and returns all problems joined.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.History.Limit <= 0 {
		fail("history.limit must be positive, got %d", c.History.Limit)
	}
	if c.Gesture.DragThreshold < 0 {
		fail("gesture.drag_threshold must not be negative, got %g", c.Gesture.DragThreshold)
	}
	if c.Gesture.DoubleClickMS <= 0 {
		fail("gesture.double_click_ms must be positive, got %d", c.Gesture.DoubleClickMS)
	}
	if c.Gesture.DoubleClickDistance < 0 {
		fail("gesture.double_click_distance must not be negative, got %g", c.Gesture.DoubleClickDistance)
	}
	if c.Navigation.EdgeEntryTolerance < 0 {
		fail("navigation.edge_entry_tolerance must not be negative, got %g", c.Navigation.EdgeEntryTolerance)
	}
	if c.Navigation.AxisTieTolerance < 0 {
		fail("navigation.axis_tie_tolerance must not be negative, got %g", c.Navigation.AxisTieTolerance)
	}
	if c.Navigation.SideTolerance < 0 {
		fail("navigation.side_tolerance must not be negative, got %g", c.Navigation.SideTolerance)
	}
	if c.Navigation.TypeaheadTimeoutMS <= 0 {
		fail("navigation.typeahead_timeout_ms must be positive, got %d", c.Navigation.TypeaheadTimeoutMS)
	}
	if c.Persistence.DebounceMS < 0 {
		fail("persistence.debounce_ms must not be negative, got %d", c.Persistence.DebounceMS)
	}
	if c.Persistence.Path != "" && c.Persistence.Key == "" {
		fail("persistence.path requires persistence.key")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if c.Dispatch.MaxDepth <= 0 {
		fail("dispatch.max_depth must be positive, got %d", c.Dispatch.MaxDepth)
	}
	if c.Dispatch.SlowMS < 0 {
		fail("dispatch.slow_ms must not be negative, got %d", c.Dispatch.SlowMS)
	}
	for i, typ := range c.Dispatch.Deny {
		if strings.TrimSpace(typ) == "" {
			fail("dispatch.deny[%d] is empty", i)
		}
	}
	if len(c.Keymap.Bindings) > 0 {
		if err := c.InlineKeymap().Validate(); err != nil {
			fail("keymap.bindings: %v", err)
		}
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level. An empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: log.level %q", ErrInvalid, name)
	}
}

// LogLevel returns the configured slog level, or info when invalid.
func (c Config) LogLevel() slog.Level {
	l, _ := ParseLevel(c.Log.Level)
	return l
}

// Tolerances returns the navigation tolerances.
func (c Config) Tolerances() nav.Tolerances {
	return nav.Tolerances{
		EdgeEntry: c.Navigation.EdgeEntryTolerance,
		AxisTie:   c.Navigation.AxisTieTolerance,
		Side:      c.Navigation.SideTolerance,
	}
}

// TypeaheadTimeout returns the typeahead accumulation window.
func (c Config) TypeaheadTimeout() time.Duration {
	return time.Duration(c.Navigation.TypeaheadTimeoutMS) * time.Millisecond
}

// GestureConfig returns the pointer recognizer configuration.
func (c Config) GestureConfig() gesture.Config {
	return gesture.Config{
		DragThreshold:       c.Gesture.DragThreshold,
		DoubleClickTime:     time.Duration(c.Gesture.DoubleClickMS) * time.Millisecond,
		DoubleClickDistance: c.Gesture.DoubleClickDistance,
	}
}

// Debounce returns the persistence debounce window.
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Persistence.DebounceMS) * time.Millisecond
}

// SlowDispatch returns the slow dispatch threshold, or zero when disabled.
func (c Config) SlowDispatch() time.Duration {
	return time.Duration(c.Dispatch.SlowMS) * time.Millisecond
}

// DispatcherConfig returns the command kernel configuration.
func (c Config) DispatcherConfig() dispatcher.Config {
	d := dispatcher.DefaultConfig()
	d.RecoverFromPanic = c.Dispatch.RecoverPanics
	d.MaxDepth = c.Dispatch.MaxDepth
	d.EnableMetrics = c.Dispatch.Metrics
	d.Tolerances = c.Tolerances()
	d.TypeaheadTimeout = c.TypeaheadTimeout()
	return d
}

// InlineKeymap returns the inline bindings as a global keymap.
func (c Config) InlineKeymap() *keymap.Keymap {
	km := keymap.NewKeymap(InlineKeymap).WithSource(InlineKeymap)
	for _, b := range c.Keymap.Bindings {
		km.AddBinding(b)
	}
	return km
}
