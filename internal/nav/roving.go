package nav

import (
	"slices"

	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/zone"
)

// RovingOptions configure a one-dimensional move.
type RovingOptions struct {
	Orientation zone.Orientation
	Loop        bool

	// Entry is the item entered when there is no current item. It is
	// usually zone.EntryItem. Empty or unknown means the first item.
	Entry string
}

// Roving moves one position through items.
//
// Directions orthogonal to the orientation are blocked without moving. At a
// boundary the move wraps when Loop is set and otherwise holds, reporting
// Blocked. A current id that is empty or not in items enters the list: at
// Entry, or at the last item for a backward move in a looping zone.
func Roving(items []string, current string, dir geom.Direction, opts RovingOptions) Result {
	if len(items) == 0 {
		return Result{Blocked: true}
	}
	switch dir {
	case geom.DirHome:
		return Result{ID: items[0]}
	case geom.DirEnd:
		return Result{ID: items[len(items)-1]}
	case geom.DirNone:
		return Result{ID: current}
	}

	vertical := dir.IsVertical()
	accepts := opts.Orientation == zone.Both ||
		(opts.Orientation == zone.Vertical && vertical) ||
		(opts.Orientation == zone.Horizontal && !vertical)

	idx := slices.Index(items, current)
	if idx < 0 {
		if !accepts {
			return hold(current)
		}
		if dir.IsBackward() && opts.Loop {
			return Result{ID: items[len(items)-1]}
		}
		if slices.Contains(items, opts.Entry) {
			return Result{ID: opts.Entry}
		}
		return Result{ID: items[0]}
	}
	if !accepts {
		return hold(current)
	}

	next := idx + 1
	if dir.IsBackward() {
		next = idx - 1
	}
	switch {
	case next < 0 && opts.Loop:
		next = len(items) - 1
	case next >= len(items) && opts.Loop:
		next = 0
	case next < 0 || next >= len(items):
		return hold(current)
	}
	return Result{ID: items[next]}
}
