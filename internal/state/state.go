// Package state holds the kernel's focus state.
//
// State values are never mutated in place. Every With* method returns a new
// value that shares unchanged structure with its receiver, which keeps
// snapshots taken by history and subscribers stable.
package state

import (
	"maps"
	"slices"
	"time"
)

// ZoneState is the per-zone focus, selection and editing state.
type ZoneState struct {
	// FocusedItemID is the stored focus target. It may be stale and is
	// resolved against the zone's items when read.
	FocusedItemID string

	// FocusIndex is the index FocusedItemID had when it was focused. It is
	// the fallback hint when the item is later removed.
	FocusIndex int

	// LastFocusedID is the restore anchor used by the "restore" entry policy.
	LastFocusedID string

	// Selection is the ordered set of selected item ids.
	Selection []string

	// SelectionAnchor is empty or a member of Selection.
	SelectionAnchor string

	// Expanded lists expanded item ids.
	Expanded []string

	// EditingItemID is the item in text-editing mode, if any.
	EditingItemID string

	// StickyX and StickyY hold the cross-axis coordinate for straight-line
	// spatial navigation.
	StickyX    float64
	StickyY    float64
	HasStickyX bool
	HasStickyY bool

	// TypeaheadBuffer accumulates typed characters for typeahead.
	// TypeaheadAt is when the last character was typed.
	TypeaheadBuffer string
	TypeaheadAt     time.Time
}

// WithFocus returns a copy focused on id at index.
// A non-empty id also becomes the restore anchor.
func (z ZoneState) WithFocus(id string, index int) ZoneState {
	z.FocusedItemID = id
	z.FocusIndex = index
	if id != "" {
		z.LastFocusedID = id
	}
	return z
}

// WithSelection returns a copy with the selection and anchor replaced.
func (z ZoneState) WithSelection(ids []string, anchor string) ZoneState {
	z.Selection = slices.Clone(ids)
	if z.Selection == nil {
		z.Selection = []string{}
	}
	z.SelectionAnchor = anchor
	return z
}

// IsSelected reports whether id is in the stored selection.
func (z ZoneState) IsSelected(id string) bool {
	return slices.Contains(z.Selection, id)
}

// IsExpanded reports whether id is expanded.
func (z ZoneState) IsExpanded(id string) bool {
	return slices.Contains(z.Expanded, id)
}

// WithExpanded returns a copy with id expanded or collapsed.
func (z ZoneState) WithExpanded(id string, expanded bool) ZoneState {
	idx := slices.Index(z.Expanded, id)
	switch {
	case expanded && idx < 0:
		z.Expanded = append(slices.Clone(z.Expanded), id)
	case !expanded && idx >= 0:
		z.Expanded = slices.Delete(slices.Clone(z.Expanded), idx, idx+1)
	}
	return z
}

// WithEditing returns a copy with the editing item set. An empty id leaves
// editing mode.
func (z ZoneState) WithEditing(id string) ZoneState {
	z.EditingItemID = id
	return z
}

// IsEditing reports whether an item is being edited.
func (z ZoneState) IsEditing() bool {
	return z.EditingItemID != ""
}

// WithStickyX returns a copy remembering x for vertical moves.
func (z ZoneState) WithStickyX(x float64) ZoneState {
	z.StickyX, z.HasStickyX = x, true
	return z
}

// WithStickyY returns a copy remembering y for horizontal moves.
func (z ZoneState) WithStickyY(y float64) ZoneState {
	z.StickyY, z.HasStickyY = y, true
	return z
}

// WithoutSticky returns a copy with both sticky coordinates cleared.
func (z ZoneState) WithoutSticky() ZoneState {
	z.StickyX, z.StickyY = 0, 0
	z.HasStickyX, z.HasStickyY = false, false
	return z
}

// WithTypeahead returns a copy with the typeahead buffer replaced and
// stamped with at.
func (z ZoneState) WithTypeahead(buf string, at time.Time) ZoneState {
	z.TypeaheadBuffer = buf
	z.TypeaheadAt = at
	return z
}

// Equal reports whether two zone states hold the same values.
func (z ZoneState) Equal(other ZoneState) bool {
	return z.FocusedItemID == other.FocusedItemID &&
		z.FocusIndex == other.FocusIndex &&
		z.LastFocusedID == other.LastFocusedID &&
		slices.Equal(z.Selection, other.Selection) &&
		z.SelectionAnchor == other.SelectionAnchor &&
		slices.Equal(z.Expanded, other.Expanded) &&
		z.EditingItemID == other.EditingItemID &&
		z.StickyX == other.StickyX && z.StickyY == other.StickyY &&
		z.HasStickyX == other.HasStickyX && z.HasStickyY == other.HasStickyY &&
		z.TypeaheadBuffer == other.TypeaheadBuffer &&
		z.TypeaheadAt.Equal(other.TypeaheadAt)
}

// Focus is the global focus state: the active zone plus every zone's state.
type Focus struct {
	ActiveZoneID string
	Zones        map[string]ZoneState
}

// NewFocus creates an empty focus state.
func NewFocus() Focus {
	return Focus{Zones: make(map[string]ZoneState)}
}

// Zone returns the state of a zone. Unknown zones return the zero state.
func (f Focus) Zone(id string) ZoneState {
	return f.Zones[id]
}

// HasZone reports whether state exists for a zone.
func (f Focus) HasZone(id string) bool {
	_, ok := f.Zones[id]
	return ok
}

// Active returns the active zone's state.
func (f Focus) Active() ZoneState {
	return f.Zones[f.ActiveZoneID]
}

// WithZone returns a copy with one zone's state replaced.
func (f Focus) WithZone(id string, zs ZoneState) Focus {
	zones := make(map[string]ZoneState, len(f.Zones)+1)
	maps.Copy(zones, f.Zones)
	zones[id] = zs
	f.Zones = zones
	return f
}

// WithActive returns a copy with the active zone set.
func (f Focus) WithActive(id string) Focus {
	f.ActiveZoneID = id
	return f
}

// Without returns a copy with a zone's state removed. Removing the active
// zone clears ActiveZoneID.
func (f Focus) Without(id string) Focus {
	if _, ok := f.Zones[id]; !ok {
		return f
	}
	zones := maps.Clone(f.Zones)
	delete(zones, id)
	f.Zones = zones
	if f.ActiveZoneID == id {
		f.ActiveZoneID = ""
	}
	return f
}

// Equal reports whether two focus states hold the same values.
func (f Focus) Equal(other Focus) bool {
	if f.ActiveZoneID != other.ActiveZoneID || len(f.Zones) != len(other.Zones) {
		return false
	}
	for id, zs := range f.Zones {
		o, ok := other.Zones[id]
		if !ok || !zs.Equal(o) {
			return false
		}
	}
	return true
}
