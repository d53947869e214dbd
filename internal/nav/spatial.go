package nav

import (
	"math"
	"slices"

	"github.com/dshills/focuskit/internal/geom"
)

// SpatialOptions configure a two-dimensional move.
type SpatialOptions struct {
	Tolerances Tolerances

	// Sticky is the remembered cross-axis coordinate. When HasSticky is
	// false the current item's center is used.
	Sticky    float64
	HasSticky bool
}

type candidate struct {
	id    string
	rect  geom.Rect
	order int
}

// Spatial moves to the nearest item on the requested side of the current
// item's rectangle.
//
// Candidates must lie beyond the current rectangle on the move axis. A
// candidate that fully contains another candidate is dropped, so a grouping
// container never wins over its own children. The nearest candidate is
// chosen by axis distance first; candidates within the axis tie tolerance of
// the minimum are compared by the offset of their center from the cross-axis
// reference, then by item order. With no candidate the move holds.
//
// Home and End jump to the first and last item regardless of geometry. An
// empty current id enters at the first item. A current item without
// geometry holds, as does a zone with a single item.
func Spatial(items []string, vp geom.Viewport, current string, dir geom.Direction, opts SpatialOptions) Result {
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
	if current == "" || !slices.Contains(items, current) {
		return Result{ID: items[0]}
	}
	if vp == nil {
		vp = geom.NoViewport{}
	}
	cur, ok := vp.ItemRect(current)
	if !ok {
		return Result{ID: current}
	}

	ref := cur.CrossCenter(dir)
	if opts.HasSticky {
		ref = opts.Sticky
	}
	if len(items) == 1 {
		return Result{ID: current, Blocked: true, Cross: ref, HasCross: true}
	}

	var cands []candidate
	for i, id := range items {
		if id == current {
			continue
		}
		r, ok := vp.ItemRect(id)
		if !ok || !cur.Beyond(r, dir, opts.Tolerances.Side) {
			continue
		}
		cands = append(cands, candidate{id: id, rect: r, order: i})
	}
	cands = dropContainers(cands)

	best, ok := nearest(cands, cur, dir, ref, opts.Tolerances.AxisTie)
	if !ok {
		return Result{ID: current, Blocked: true, Cross: ref, HasCross: true}
	}
	return Result{ID: best.id, Cross: ref, HasCross: true}
}

// dropContainers removes candidates whose rectangle fully contains another
// candidate's rectangle.
func dropContainers(cands []candidate) []candidate {
	if len(cands) < 2 {
		return cands
	}
	out := make([]candidate, 0, len(cands))
	for i, c := range cands {
		container := false
		for j, o := range cands {
			if i != j && !c.rect.Equal(o.rect) && c.rect.Contains(o.rect) {
				container = true
				break
			}
		}
		if !container {
			out = append(out, c)
		}
	}
	return out
}

// nearest picks the best candidate relative to from. Axis distance is
// primary; perpendicular offset from ref breaks ties within tieTol; item
// order breaks the rest.
func nearest(cands []candidate, from geom.Rect, dir geom.Direction, ref, tieTol float64) (candidate, bool) {
	if len(cands) == 0 {
		return candidate{}, false
	}
	minAxis := math.Inf(1)
	for _, c := range cands {
		minAxis = math.Min(minAxis, from.AxisDistance(c.rect, dir))
	}

	var best candidate
	bestOff := math.Inf(1)
	found := false
	for _, c := range cands {
		if from.AxisDistance(c.rect, dir) > minAxis+tieTol {
			continue
		}
		off := math.Abs(c.rect.CrossCenter(dir) - ref)
		if !found || off < bestOff || (off == bestOff && c.order < best.order) {
			best, bestOff, found = c, off, true
		}
	}
	return best, found
}
