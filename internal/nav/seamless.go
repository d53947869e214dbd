package nav

import (
	"math"
	"slices"
	"sort"

	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/zone"
)

// Tree is the read-only view of the zone hierarchy used by navigation.
// *zone.Registry implements it.
type Tree interface {
	Get(id string) (zone.Metadata, bool)
	Keys() []string
	Children(parent string) []string
	Parent(id string) string
	Ancestors(id string) []string
}

// SeamlessZone finds the sibling zone that receives a move blocked at the
// boundary of zoneID.
//
// Siblings whose rectangle lies beyond the zone's edge on the move axis are
// preferred, nearest first, with ties broken by perpendicular distance
// between centers. When no sibling qualifies geometrically, siblings are
// walked in reading order (top to bottom, then left to right): down and right
// go to the next zone, up and left to the previous one.
func SeamlessZone(t Tree, vp geom.Viewport, zoneID string, dir geom.Direction, tol Tolerances) (string, bool) {
	if !dir.IsVertical() && !dir.IsHorizontal() {
		return "", false
	}
	if vp == nil {
		vp = geom.NoViewport{}
	}
	siblings := t.Children(t.Parent(zoneID))

	if from, ok := vp.ZoneRect(zoneID); ok {
		var cands []candidate
		for i, id := range siblings {
			if id == zoneID || !focusable(t, id) {
				continue
			}
			r, ok := vp.ZoneRect(id)
			if !ok || !from.Beyond(r, dir, tol.Side) {
				continue
			}
			cands = append(cands, candidate{id: id, rect: r, order: i})
		}
		if best, ok := nearest(cands, from, dir, from.CrossCenter(dir), tol.AxisTie); ok {
			return best.id, true
		}
	}

	ordered := readingOrder(siblings, func(id string) (geom.Rect, bool) { return vp.ZoneRect(id) })
	idx := slices.Index(ordered, zoneID)
	if idx < 0 {
		return "", false
	}
	step := 1
	if dir.IsBackward() {
		step = -1
	}
	for i := idx + step; i >= 0 && i < len(ordered); i += step {
		if focusable(t, ordered[i]) {
			return ordered[i], true
		}
	}
	return "", false
}

// SeamlessEntry returns the item entered when a move crosses into meta's zone.
//
// Only items in the band next to the entry edge qualify: the left edge for a
// rightward move, the top edge for a downward move and so on. Within the band
// the item whose cross-axis center is nearest the source coordinate wins.
// Without geometry the first item is entered, or the last for backward moves.
func SeamlessEntry(meta zone.Metadata, vp geom.Viewport, cross float64, hasCross bool, dir geom.Direction, tol Tolerances) string {
	items := meta.Enabled()
	if len(items) == 0 {
		return ""
	}
	fallback := items[0]
	if dir.IsBackward() {
		fallback = items[len(items)-1]
	}
	if vp == nil || !hasCross {
		return fallback
	}

	var cands []candidate
	edge := math.NaN()
	for i, id := range items {
		r, ok := vp.ItemRect(id)
		if !ok {
			continue
		}
		cands = append(cands, candidate{id: id, rect: r, order: i})
		e := entryEdge(r, dir)
		if math.IsNaN(edge) || nearerEdge(e, edge, dir) {
			edge = e
		}
	}
	if len(cands) == 0 {
		return fallback
	}

	best := ""
	bestOff := math.Inf(1)
	for _, c := range cands {
		if math.Abs(entryEdge(c.rect, dir)-edge) > tol.EdgeEntry {
			continue
		}
		off := math.Abs(c.rect.CrossCenter(dir) - cross)
		if off < bestOff {
			best, bestOff = c.id, off
		}
	}
	if best == "" {
		return fallback
	}
	return best
}

// Seamless resolves a blocked move from fromItem in zoneID to a sibling zone
// and its entry item.
func Seamless(t Tree, vp geom.Viewport, zoneID, fromItem string, dir geom.Direction, tol Tolerances) (string, string, bool) {
	target, ok := SeamlessZone(t, vp, zoneID, dir, tol)
	if !ok {
		return "", "", false
	}
	meta, ok := t.Get(target)
	if !ok {
		return "", "", false
	}
	if vp == nil {
		vp = geom.NoViewport{}
	}
	var cross float64
	hasCross := false
	if r, ok := vp.ItemRect(fromItem); ok {
		cross, hasCross = r.CrossCenter(dir), true
	} else if r, ok := vp.ZoneRect(zoneID); ok {
		cross, hasCross = r.CrossCenter(dir), true
	}
	item := SeamlessEntry(meta, vp, cross, hasCross, dir, tol)
	if item == "" {
		return "", "", false
	}
	return target, item, true
}

// entryEdge returns the coordinate of the edge a move in dir enters through.
func entryEdge(r geom.Rect, dir geom.Direction) float64 {
	switch dir {
	case geom.DirRight:
		return r.Left
	case geom.DirLeft:
		return r.Right()
	case geom.DirDown:
		return r.Top
	default:
		return r.Bottom()
	}
}

func nearerEdge(e, edge float64, dir geom.Direction) bool {
	if dir == geom.DirRight || dir == geom.DirDown {
		return e < edge
	}
	return e > edge
}

func focusable(t Tree, id string) bool {
	m, ok := t.Get(id)
	return ok && len(m.Enabled()) > 0
}

// readingOrder sorts ids top to bottom, then left to right. Ids without
// geometry keep their order after the positioned ones.
func readingOrder(ids []string, rect func(string) (geom.Rect, bool)) []string {
	out := slices.Clone(ids)
	sort.SliceStable(out, func(i, j int) bool {
		ri, oki := rect(out[i])
		rj, okj := rect(out[j])
		switch {
		case oki && okj:
			return before(ri, rj)
		default:
			return oki && !okj
		}
	})
	return out
}

func before(a, b geom.Rect) bool {
	if a.Top != b.Top {
		return a.Top < b.Top
	}
	return a.Left < b.Left
}
