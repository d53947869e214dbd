package kernel

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"time"

	"github.com/dshills/focuskit/internal/clipboard"
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	cliphandler "github.com/dshills/focuskit/internal/dispatcher/handlers/clipboard"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/field"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/focus"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/interaction"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/navigate"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/selection"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/zones"
	"github.com/dshills/focuskit/internal/dispatcher/hook"
	"github.com/dshills/focuskit/internal/history"
	"github.com/dshills/focuskit/internal/input/keymap"
	"github.com/dshills/focuskit/internal/persist"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// restoreTimeout bounds the initial persisted-state read.
const restoreTimeout = 5 * time.Second

// bootstrapper creates kernel components in dependency order and releases
// the ones already created when a later step fails.
type bootstrapper struct {
	k         *Kernel
	opts      Options
	initOrder []string
}

func newBootstrapper(k *Kernel, opts Options) *bootstrapper {
	return &bootstrapper{
		k:         k,
		opts:      opts,
		initOrder: make([]string, 0, 4),
	}
}

func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initZones,
		b.initDispatcher,
		b.initKeymaps,
		b.initState,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

func (b *bootstrapper) initZones() error {
	b.k.zones = zone.NewRegistry()
	b.initOrder = append(b.initOrder, "zones")
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	cfg := b.k.cfg
	d := dispatcher.New(cfg.DispatcherConfig())
	d.SetLogger(b.k.logger)
	d.SetZones(b.k.zones)
	if b.opts.Viewport != nil {
		d.SetViewport(b.opts.Viewport)
	}
	if b.opts.Clock != nil {
		d.SetClock(b.opts.Clock)
	}

	h := history.New(cfg.History.Limit)
	d.SetTransactor(h)
	d.Hooks().Register(history.NewMiddleware(h, b.k.logger))
	b.registerHooks(d)

	system := b.opts.Clipboard
	if system == nil {
		system = clipboard.OS{}
	}
	clip := cliphandler.New(nil, system, b.k.logger)

	d.RegisterSet(focus.New())
	d.RegisterSet(navigate.New())
	d.RegisterSet(selection.New())
	d.RegisterSet(interaction.New())
	d.RegisterSet(field.New())
	d.RegisterSet(clip)
	d.RegisterSet(zones.New())
	d.RegisterSet(history.NewHandler(h))

	b.k.dispatcher = d
	b.k.history = h
	b.k.clipboard = clip.Store()
	b.initOrder = append(b.initOrder, "dispatcher")
	return nil
}

// registerHooks installs the configured dispatch hooks.
func (b *bootstrapper) registerHooks(d *dispatcher.Dispatcher) {
	cfg, logger := b.k.cfg, b.k.logger

	if cfg.LogLevel() <= slog.LevelDebug {
		d.Hooks().Register(hook.NewAuditHook(logger))
	}

	if slow := cfg.SlowDispatch(); slow > 0 {
		d.Hooks().Register(hook.NewTimingHook(func(typ string, elapsed time.Duration) {
			if elapsed >= slow {
				logger.Warn("slow dispatch", "command", typ, "duration", elapsed, "threshold", slow)
			}
		}))
	}

	if deny := cfg.Dispatch.Deny; len(deny) > 0 {
		d.Hooks().RegisterPre(hook.NewFilterHook("deny", hook.PriorityValidation,
			func(cmd *command.Command, _ *execctx.ExecutionContext) (bool, string) {
				if slices.Contains(deny, cmd.Type) {
					return false, "denied by dispatch.deny"
				}
				return true, ""
			}))
	}
}

func (b *bootstrapper) initKeymaps() error {
	cfg := b.k.cfg
	r := keymap.NewRegistry()
	if !cfg.Keymap.NoDefaults {
		if err := keymap.LoadDefaults(r); err != nil {
			return &InitError{Component: "keymaps", Err: err}
		}
	}
	if len(cfg.Keymap.Bindings) > 0 {
		if err := r.Register(cfg.InlineKeymap()); err != nil {
			return &InitError{Component: "keymaps", Err: err}
		}
	}
	if cfg.Keymap.File != "" {
		if err := r.LoadInto(cfg.Keymap.File); err != nil {
			return &InitError{Component: "keymaps", Err: err}
		}
	}
	b.k.keymaps = r
	b.initOrder = append(b.initOrder, "keymaps")
	return nil
}

// initState seeds the dispatcher with the initial snapshot, restoring the
// persisted document when persistence is configured.
func (b *bootstrapper) initState() error {
	cfg := b.k.cfg.Persistence
	if cfg.Key == "" {
		b.k.dispatcher.Reset(dispatcher.Snapshot{Focus: state.NewFocus(), Data: b.opts.Data})
		return nil
	}

	store := b.opts.Store
	switch {
	case store != nil:
	case cfg.Path != "":
		ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
		s, err := persist.OpenSQLite(ctx, cfg.Path)
		cancel()
		if err != nil {
			return &InitError{Component: "persistence", Err: err}
		}
		store = s
		b.k.ownsStore = true
	default:
		store = persist.NewMemoryStore()
		b.k.ownsStore = true
	}
	b.k.store = store
	b.initOrder = append(b.initOrder, "persistence")

	p, err := persist.New(store, persist.Options{
		Key:      cfg.Key,
		Debounce: b.k.cfg.Debounce(),
		Logger:   b.k.logger,
	})
	if err != nil {
		return &InitError{Component: "persistence", Err: err}
	}
	b.k.persister = p

	data, f := b.restore(p)
	b.k.dispatcher.Reset(dispatcher.Snapshot{Focus: f, Data: data})
	b.k.unsubscribe = b.k.dispatcher.Subscribe(b.k.schedulePersist)
	return nil
}

// restore reads the persisted document. App data falls back to
// Options.Data when nothing was saved or it cannot be decoded.
func (b *bootstrapper) restore(p *persist.Persister) (any, state.Focus) {
	defaults, err := json.Marshal(b.opts.Data)
	if err != nil {
		b.k.logger.Warn("persist encode defaults failed", "error", err)
		defaults = []byte("null")
	}

	ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
	defer cancel()
	raw, f, found := persist.Restore(ctx, p, json.RawMessage(defaults), state.NewFocus())
	if !found {
		return b.opts.Data, f
	}

	decode := b.opts.Decode
	if decode == nil {
		decode = DecodeAs[any]()
	}
	data, err := decode(raw)
	if err != nil {
		b.k.logger.Warn("persist decode failed", "key", p.Key(), "error", err)
		return b.opts.Data, f
	}
	b.k.logger.Debug("state restored", "key", p.Key())
	return data, f
}

// cleanup releases components in reverse creation order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "zones":
		b.k.zones.Dispose()
		b.k.zones = nil
	case "dispatcher":
		b.k.dispatcher.Dispose()
		b.k.dispatcher = nil
	case "keymaps":
		b.k.keymaps = nil
	case "persistence":
		if b.k.ownsStore && b.k.store != nil {
			_ = b.k.store.Close()
		}
		b.k.store = nil
	}
}

// DecodeAs returns a decoder producing restored app data as a T.
func DecodeAs[T any]() func(json.RawMessage) (any, error) {
	return func(raw json.RawMessage) (any, error) {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
