package kernel

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/focuskit/internal/clipboard"
	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/config"
	"github.com/dshills/focuskit/internal/dispatcher"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/dispatcher/handlers/zones"
	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/history"
	"github.com/dshills/focuskit/internal/input"
	"github.com/dshills/focuskit/internal/input/keymap"
	"github.com/dshills/focuskit/internal/persist"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// Options configures a kernel.
type Options struct {
	// Config is the kernel configuration. Nil uses config.Default().
	Config *config.Config

	// Logger receives dispatch and persistence logs. Nil discards.
	Logger *slog.Logger

	// Viewport supplies item and zone rectangles for spatial navigation.
	Viewport geom.Viewport

	// Data is the initial application data.
	Data any

	// Decode converts restored app data to the application's type.
	// Nil decodes into generic JSON values. See DecodeAs.
	Decode func(json.RawMessage) (any, error)

	// Clipboard is the system clipboard. Nil uses the OS clipboard.
	Clipboard clipboard.System

	// Store backs persistence when config.Persistence.Key is set. Nil opens
	// config.Persistence.Path as SQLite, or keeps state in memory when no
	// path is set. A provided store is not closed by Dispose.
	Store persist.Store

	// Clock overrides the dispatch clock.
	Clock func() time.Time
}

// Kernel is one focus kernel instance.
type Kernel struct {
	cfg    config.Config
	logger *slog.Logger

	zones      *zone.Registry
	dispatcher *dispatcher.Dispatcher
	history    *history.History
	keymaps    *keymap.Registry
	clipboard  *clipboard.Store

	store       persist.Store
	ownsStore   bool
	persister   *persist.Persister
	unsubscribe func()

	disposeOnce sync.Once
	disposeErr  error
}

// New creates a kernel.
func New(opts Options) (*Kernel, error) {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	k := &Kernel{cfg: cfg, logger: opts.Logger}
	if err := newBootstrapper(k, opts).bootstrap(); err != nil {
		return nil, err
	}
	k.logger.Debug("kernel ready", "persistence", cfg.Persistence.Key, "keymaps", len(k.keymaps.Keymaps()))
	return k, nil
}

// Dispatch runs a command through the dispatcher.
func (k *Kernel) Dispatch(cmd command.Command) handler.Result {
	return k.dispatcher.Dispatch(cmd)
}

// Handle registers an application command handler.
func (k *Kernel) Handle(typ string, fn func(command.Command, *execctx.ExecutionContext) handler.Result) {
	k.dispatcher.RegisterHandlerFunc(typ, fn)
}

// HandleSet registers a handler for every command in its set.
func (k *Kernel) HandleSet(set handler.CommandSet) {
	k.dispatcher.RegisterSet(set)
}

// HandleScoped registers a handler that runs only while zone scope or one
// of its descendants is active and when accepts the context. A nil when
// always accepts.
func (k *Kernel) HandleScoped(scope, typ string, h handler.Handler, when handler.Guard) {
	k.dispatcher.RegisterScoped(scope, typ, h, when)
}

// HandleNamespace routes every command prefixed "ns." that h can handle
// to h. Global and zone-scoped handlers take precedence.
func (k *Kernel) HandleNamespace(ns string, h handler.NamespaceHandler) {
	k.dispatcher.RegisterNamespace(ns, h)
}

// Register registers or replaces a zone.
func (k *Kernel) Register(id string, meta zone.Metadata) handler.Result {
	return k.Dispatch(command.New(command.ZoneRegister, zones.RegisterPayload{ID: id, Meta: meta}))
}

// Unregister removes a zone. Focus in the zone moves to its parent.
func (k *Kernel) Unregister(id string) handler.Result {
	return k.Dispatch(command.New(command.ZoneUnregister, zones.UnregisterPayload{ID: id}))
}

// UnregisterScope removes a zone and all of its descendants, innermost
// first, along with handlers scoped to them.
func (k *Kernel) UnregisterScope(id string) {
	for _, child := range k.zones.Children(id) {
		k.UnregisterScope(child)
	}
	k.Unregister(id)
	k.dispatcher.Registry().UnregisterScope(id)
}

// SetItems replaces a zone's item ids.
func (k *Kernel) SetItems(id string, items []string) handler.Result {
	return k.Dispatch(command.New(command.ZoneItems, zones.ItemsPayload{ID: id, Items: items}))
}

// State returns the committed focus state and app data.
func (k *Kernel) State() dispatcher.Snapshot {
	return k.dispatcher.State()
}

// Focus returns the committed focus state.
func (k *Kernel) Focus() state.Focus {
	return k.dispatcher.State().Focus
}

// Data returns the committed app data.
func (k *Kernel) Data() any {
	return k.dispatcher.State().Data
}

// Zone returns a zone's metadata.
func (k *Kernel) Zone(id string) (zone.Metadata, bool) {
	return k.zones.Get(id)
}

// Zones returns the zone registry.
func (k *Kernel) Zones() *zone.Registry {
	return k.zones
}

// Attributes projects a zone's current state to accessibility attributes.
func (k *Kernel) Attributes(zoneID string) (zone.Projection, bool) {
	meta, ok := k.zones.Get(zoneID)
	if !ok {
		return zone.Projection{}, false
	}
	f := k.Focus()
	return zone.Project(meta, f.Zone(zoneID), f.ActiveZoneID == zoneID), true
}

// Subscribe registers fn to run after every committed dispatch. It returns
// a function that removes the subscription.
func (k *Kernel) Subscribe(fn dispatcher.Subscriber) func() {
	return k.dispatcher.Subscribe(fn)
}

// SetViewport replaces the geometry source used by spatial navigation.
func (k *Kernel) SetViewport(vp geom.Viewport) {
	k.dispatcher.SetViewport(vp)
}

// Bindings returns the keymap lookup used by keyboard resolution.
func (k *Kernel) Bindings() input.Bindings {
	return k.keymaps
}

// Keymaps returns the keymap registry.
func (k *Kernel) Keymaps() *keymap.Registry {
	return k.keymaps
}

// ReloadKeymap replaces every keymap loaded from source.
func (k *Kernel) ReloadKeymap(source string, kms []*keymap.Keymap) error {
	if err := k.keymaps.Replace(source, kms); err != nil {
		return err
	}
	k.logger.Info("keymap replaced", "source", source, "keymaps", len(kms))
	return nil
}

// WatchKeymap reloads the configured keymap file whenever it changes. It
// blocks until ctx is done.
func (k *Kernel) WatchKeymap(ctx context.Context) error {
	path := k.cfg.Keymap.File
	if path == "" {
		return ErrNoKeymapFile
	}
	return config.Watch(ctx, path, k.logger, func(kms []*keymap.Keymap) {
		if err := k.ReloadKeymap(path, kms); err != nil {
			k.logger.Warn("keymap replace failed", "source", path, "error", err)
		}
	})
}

// History returns the undo/redo history.
func (k *Kernel) History() *history.History {
	return k.history
}

// Clipboard returns the structured clipboard.
func (k *Kernel) Clipboard() *clipboard.Store {
	return k.clipboard
}

// Persister returns the persister, or nil when persistence is off.
func (k *Kernel) Persister() *persist.Persister {
	return k.persister
}

// Metrics returns dispatch metrics. They are empty unless
// dispatch.metrics is enabled.
func (k *Kernel) Metrics() *dispatcher.Metrics {
	return k.dispatcher.Metrics()
}

// Config returns the kernel configuration.
func (k *Kernel) Config() config.Config {
	return k.cfg
}

// Logger returns the kernel logger.
func (k *Kernel) Logger() *slog.Logger {
	return k.logger
}

// schedulePersist queues a write when data or focus changed.
func (k *Kernel) schedulePersist(c dispatcher.Change) {
	if state.SameData(c.Prev.Data, c.Next.Data) && c.Prev.Focus.Equal(c.Next.Focus) {
		return
	}
	k.persister.Schedule(c.Next.Data, c.Next.Focus)
}

// Dispose flushes pending persistence and releases the kernel. Later
// dispatches fail with dispatcher.ErrDisposed. Dispose is idempotent.
func (k *Kernel) Dispose() error {
	k.disposeOnce.Do(func() {
		if k.unsubscribe != nil {
			k.unsubscribe()
		}
		if k.persister != nil {
			k.persister.Close()
		}
		if k.ownsStore && k.store != nil {
			k.disposeErr = k.store.Close()
		}
		k.zones.Dispose()
		k.dispatcher.Dispose()
		k.logger.Debug("kernel disposed")
	})
	return k.disposeErr
}
