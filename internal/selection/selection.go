// Package selection implements the per-zone selection set and anchor.
//
// A Set is an immutable value. Every operation returns a new Set and leaves
// the receiver untouched, so callers can compare old and new values.
package selection

import "slices"

// Set is an ordered selection with an optional anchor.
// The anchor is either empty or a member of IDs.
type Set struct {
	IDs    []string
	Anchor string
}

// Of creates a set from a selection and anchor, dropping an anchor that is
// not part of the selection.
func Of(ids []string, anchor string) Set {
	s := Set{IDs: dedupe(ids), Anchor: anchor}
	if !slices.Contains(s.IDs, anchor) {
		s.Anchor = ""
	}
	return s
}

// Len returns the number of selected ids.
func (s Set) Len() int { return len(s.IDs) }

// IsEmpty reports whether nothing is selected.
func (s Set) IsEmpty() bool { return len(s.IDs) == 0 }

// Contains reports whether id is selected.
func (s Set) Contains(id string) bool {
	return slices.Contains(s.IDs, id)
}

// Replace replaces the selection. The anchor moves to the last id, or is
// cleared when ids is empty.
func (s Set) Replace(ids []string) Set {
	out := Set{IDs: dedupe(ids)}
	if len(out.IDs) > 0 {
		out.Anchor = out.IDs[len(out.IDs)-1]
	}
	return out
}

// Add selects id and moves the anchor to it. Adding an id that is already
// selected only moves the anchor.
func (s Set) Add(id string) Set {
	if id == "" {
		return s
	}
	out := Set{IDs: slices.Clone(s.IDs), Anchor: id}
	if !slices.Contains(out.IDs, id) {
		out.IDs = append(out.IDs, id)
	}
	return out
}

// Remove deselects id. The anchor is cleared only if it was id.
func (s Set) Remove(id string) Set {
	idx := slices.Index(s.IDs, id)
	if idx < 0 {
		return s
	}
	out := Set{IDs: slices.Delete(slices.Clone(s.IDs), idx, idx+1), Anchor: s.Anchor}
	if out.Anchor == id {
		out.Anchor = ""
	}
	return out
}

// Toggle adds id if absent or removes it if present.
func (s Set) Toggle(id string) Set {
	if s.Contains(id) {
		return s.Remove(id)
	}
	return s.Add(id)
}

// Clear deselects everything.
func (s Set) Clear() Set {
	return Set{IDs: []string{}}
}

// Range selects the contiguous span of items between the anchor and to.
// The anchor is kept. Without an anchor, to becomes the anchor and the only
// selected id. Ids missing from items leave the set unchanged.
func (s Set) Range(items []string, to string) Set {
	toIdx := slices.Index(items, to)
	if toIdx < 0 {
		return s
	}
	anchorIdx := slices.Index(items, s.Anchor)
	if anchorIdx < 0 {
		return Set{IDs: []string{to}, Anchor: to}
	}
	lo, hi := anchorIdx, toIdx
	if lo > hi {
		lo, hi = hi, lo
	}
	ids := slices.Clone(items[lo : hi+1])
	return Set{IDs: ids, Anchor: s.Anchor}
}

// All selects every item. The anchor is kept when still selected, otherwise
// it moves to the first item.
func (s Set) All(items []string) Set {
	out := Set{IDs: dedupe(items), Anchor: s.Anchor}
	if !slices.Contains(out.IDs, out.Anchor) {
		out.Anchor = ""
		if len(out.IDs) > 0 {
			out.Anchor = out.IDs[0]
		}
	}
	return out
}

// Restrict drops ids that are not in items.
func (s Set) Restrict(items []string) Set {
	ids := make([]string, 0, len(s.IDs))
	for _, id := range s.IDs {
		if slices.Contains(items, id) {
			ids = append(ids, id)
		}
	}
	return Of(ids, s.Anchor)
}

// Equal reports whether two sets have the same ids in order and anchor.
func (s Set) Equal(other Set) bool {
	return s.Anchor == other.Anchor && slices.Equal(s.IDs, other.IDs)
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
