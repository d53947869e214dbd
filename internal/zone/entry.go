package zone

import (
	"slices"

	"github.com/dshills/focuskit/internal/resolve"
	"github.com/dshills/focuskit/internal/state"
)

// FocusedItem resolves a zone's stored focus against its live items.
func FocusedItem(meta Metadata, zs state.ZoneState) string {
	return resolve.ItemID(zs.FocusedItemID, meta.Items, zs.FocusIndex)
}

// CursorFor builds the cursor handed to interaction callbacks.
// Stale focus and selection ids are resolved against the live items.
func CursorFor(meta Metadata, zs state.ZoneState) Cursor {
	sel := resolve.Selection(zs.Selection, meta.Items)
	return Cursor{
		FocusID:   FocusedItem(meta, zs),
		Selection: sel,
		Anchor:    resolve.Anchor(zs.SelectionAnchor, sel),
	}
}

// EntryItem returns the item focused when the zone is entered, following
// the zone's entry policy. It returns "" for a zone without focusable items.
func EntryItem(meta Metadata, zs state.ZoneState) string {
	items := meta.Enabled()
	if len(items) == 0 {
		return ""
	}
	switch meta.Config.Entry {
	case EntryLast:
		return items[len(items)-1]
	case EntryRestore:
		if slices.Contains(items, zs.LastFocusedID) {
			return zs.LastFocusedID
		}
	case EntrySelected:
		for _, id := range items {
			if zs.IsSelected(id) {
				return id
			}
		}
		if slices.Contains(items, zs.LastFocusedID) {
			return zs.LastFocusedID
		}
	}
	return items[0]
}

// TabStop returns the item that holds tabIndex 0 in a roving zone: the
// resolved focus when set, otherwise the entry item.
func TabStop(meta Metadata, zs state.ZoneState) string {
	if id := FocusedItem(meta, zs); id != "" {
		return id
	}
	return EntryItem(meta, zs)
}
