package zone

import (
	"fmt"
	"slices"
	"sync"
)

// Registry maps zone ids to zone metadata.
//
// Registration is idempotent per id: registering an existing id replaces its
// metadata and keeps its original registration order. Lookups of missing
// zones report false and never fail.
type Registry struct {
	mu       sync.RWMutex
	zones    map[string]Metadata
	order    []string
	disposed bool
}

// NewRegistry creates an empty zone registry.
func NewRegistry() *Registry {
	return &Registry{
		zones: make(map[string]Metadata),
	}
}

// Register adds or replaces a zone.
//
// Register panics when id is empty or when meta.ParentID would make the
// zone its own ancestor. Both are programming errors. Registering on a
// disposed registry is ignored.
func (r *Registry) Register(id string, meta Metadata) {
	if id == "" {
		panic(ErrEmptyID)
	}
	meta = meta.Clone()
	meta.ID = id

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return
	}
	for p := meta.ParentID; p != ""; p = r.zones[p].ParentID {
		if p == id {
			panic(fmt.Errorf("%w: %q", ErrCycle, id))
		}
		if _, ok := r.zones[p]; !ok {
			break
		}
	}
	if _, exists := r.zones[id]; !exists {
		r.order = append(r.order, id)
	}
	r.zones[id] = meta
}

// Unregister removes a zone. It reports whether the zone existed.
// Child zones keep their ParentID and become roots until it is registered again.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.zones[id]; !ok {
		return false
	}
	delete(r.zones, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// Get returns a zone's metadata.
func (r *Registry) Get(id string) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.zones[id]
	return m, ok
}

// Has reports whether a zone is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.zones[id]
	return ok
}

// Keys returns zone ids in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered zones.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.zones)
}

// SetItems replaces a zone's item list. It reports false for unknown zones.
func (r *Registry) SetItems(id string, items []string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.zones[id]
	if !ok {
		return false
	}
	m.Items = slices.Clone(items)
	r.zones[id] = m
	return true
}

// Parent returns a zone's registered parent id. Parents that are not
// registered are reported as "".
func (r *Registry) Parent(id string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p := r.zones[id].ParentID
	if _, ok := r.zones[p]; !ok {
		return ""
	}
	return p
}

// Children returns the registered children of parent in registration order.
// An empty parent returns the root zones.
func (r *Registry) Children(parent string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for _, id := range r.order {
		p := r.zones[id].ParentID
		if _, ok := r.zones[p]; !ok {
			p = ""
		}
		if p == parent {
			out = append(out, id)
		}
	}
	return out
}

// Ancestors returns id's registered ancestors, nearest first.
func (r *Registry) Ancestors(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for p := r.zones[id].ParentID; p != ""; p = r.zones[p].ParentID {
		if _, ok := r.zones[p]; !ok {
			break
		}
		out = append(out, p)
	}
	return out
}

// Root returns the top-level ancestor of id, or id itself.
func (r *Registry) Root(id string) string {
	anc := r.Ancestors(id)
	if len(anc) == 0 {
		return id
	}
	return anc[len(anc)-1]
}

// FindItem returns the zone owning an item. When several zones list the
// item, the most recently registered one wins.
func (r *Registry) FindItem(itemID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.order) - 1; i >= 0; i-- {
		if slices.Contains(r.zones[r.order[i]].Items, itemID) {
			return r.order[i], true
		}
	}
	return "", false
}

// Snapshot returns a copy of all metadata in registration order.
func (r *Registry) Snapshot() []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Metadata, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.zones[id])
	}
	return out
}

// Dispose removes every zone and stops accepting registrations.
func (r *Registry) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.zones = make(map[string]Metadata)
	r.order = nil
	r.disposed = true
}

// Disposed reports whether Dispose has been called.
func (r *Registry) Disposed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disposed
}
