// Package resolve reconciles stored item ids against the live item list.
//
// Nothing in the kernel patches focus or selection when items disappear.
// Stored ids are resolved whenever they are read, so an id that went stale
// on delete becomes valid again as soon as undo restores the item.
package resolve

import "slices"

// NoHint indicates that no former index is known for a stale id.
const NoHint = -1

// ItemID returns the live id for a stored id.
//
// An empty stored id or an empty item list resolves to "". A stored id that
// is still present is returned unchanged. A stale id falls back to the item
// now at lastIndexHint (the next item after the deleted one), clamped to the
// last item, or to the first item when no hint is given.
func ItemID(stored string, items []string, lastIndexHint int) string {
	if stored == "" || len(items) == 0 {
		return ""
	}
	if slices.Contains(items, stored) {
		return stored
	}
	if lastIndexHint < 0 {
		return items[0]
	}
	if lastIndexHint >= len(items) {
		return items[len(items)-1]
	}
	return items[lastIndexHint]
}

// Selection filters a stored selection to ids still present in items,
// preserving the stored order.
func Selection(selection, items []string) []string {
	if len(selection) == 0 || len(items) == 0 {
		return []string{}
	}
	live := make(map[string]struct{}, len(items))
	for _, id := range items {
		live[id] = struct{}{}
	}
	out := make([]string, 0, len(selection))
	for _, id := range selection {
		if _, ok := live[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Anchor returns the anchor if it survives in the resolved selection.
func Anchor(anchor string, resolvedSelection []string) string {
	if anchor == "" || !slices.Contains(resolvedSelection, anchor) {
		return ""
	}
	return anchor
}
