package persist

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/focuskit/internal/state"
)

// Defaults for Options.
const (
	DefaultDebounce     = 300 * time.Millisecond
	DefaultWriteTimeout = 5 * time.Second
)

// Document is the persisted form of kernel state.
type Document[T any] struct {
	Data T  `json:"data"`
	UI   UI `json:"ui"`
}

// UI is the persisted interface state.
type UI struct {
	Focus state.Focus `json:"focus"`
}

// Options configures a Persister.
type Options struct {
	// Key is the store key the document is saved under. Required.
	Key string

	// Debounce is the quiet period before a write. Zero means
	// DefaultDebounce.
	Debounce time.Duration

	// WriteTimeout bounds each store write. Zero means DefaultWriteTimeout.
	WriteTimeout time.Duration

	// Logger receives write and load failures. Nil discards.
	Logger *slog.Logger
}

// Persister writes kernel state to a Store after a debounce window.
type Persister struct {
	store   Store
	key     string
	timeout time.Duration
	logger  *slog.Logger

	debouncer *Debouncer

	mu      sync.Mutex
	pending []byte
	closed  bool
}

// New creates a persister writing to store.
func New(store Store, opts Options) (*Persister, error) {
	if opts.Key == "" {
		return nil, ErrEmptyKey
	}
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	p := &Persister{
		store:   store,
		key:     opts.Key,
		timeout: opts.WriteTimeout,
		logger:  opts.Logger,
	}
	p.debouncer = NewDebouncer(opts.Debounce, p.write)
	return p, nil
}

// Key returns the store key.
func (p *Persister) Key() string {
	return p.key
}

// Schedule encodes data and focus now and writes them after the debounce
// window. A later Schedule within the window replaces this one.
func (p *Persister) Schedule(data any, f state.Focus) {
	b, err := json.Marshal(Document[any]{Data: data, UI: UI{Focus: f}})
	if err != nil {
		p.logger.Warn("persist encode failed", "key", p.key, "error", err)
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.pending = b
	p.mu.Unlock()

	p.debouncer.Call()
}

func (p *Persister) write() {
	p.mu.Lock()
	b := p.pending
	p.pending = nil
	p.mu.Unlock()

	if b == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.store.Save(ctx, p.key, b); err != nil {
		p.logger.Warn("persist write failed", "key", p.key, "error", err)
		return
	}
	p.logger.Debug("persisted", "key", p.key, "bytes", len(b))
}

// Pending reports whether a write is scheduled.
func (p *Persister) Pending() bool {
	return p.debouncer.IsPending()
}

// Flush writes a scheduled document now.
func (p *Persister) Flush() {
	p.debouncer.Flush()
}

// Cancel drops a scheduled write.
func (p *Persister) Cancel() {
	p.debouncer.Cancel()

	p.mu.Lock()
	p.pending = nil
	p.mu.Unlock()
}

// Close flushes a scheduled write and stops accepting new ones. The store
// is not closed.
func (p *Persister) Close() {
	p.Flush()

	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
}

// Clear removes the persisted document.
func (p *Persister) Clear(ctx context.Context) error {
	p.Cancel()
	return p.store.Delete(ctx, p.key)
}

// Load returns the raw persisted document. Failures are logged and reported
// as absent.
func (p *Persister) Load(ctx context.Context) ([]byte, bool) {
	b, ok, err := p.store.Load(ctx, p.key)
	if err != nil {
		p.logger.Warn("persist load failed", "key", p.key, "error", err)
		return nil, false
	}
	return b, ok
}

// Restore loads the persisted document and merges it onto the defaults.
// found is false when no readable document exists, in which case the
// defaults are returned.
func Restore[T any](ctx context.Context, p *Persister, data T, f state.Focus) (T, state.Focus, bool) {
	b, ok := p.Load(ctx)
	if !ok {
		return data, f, false
	}
	doc, err := Hydrate(Document[T]{Data: data, UI: UI{Focus: f}}, b)
	if err != nil {
		p.logger.Warn("persist hydrate failed", "key", p.key, "error", err)
		return data, f, false
	}
	if doc.UI.Focus.Zones == nil {
		doc.UI.Focus.Zones = f.Zones
	}
	return doc.Data, doc.UI.Focus, true
}
