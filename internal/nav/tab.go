package nav

import (
	"slices"

	"github.com/dshills/focuskit/internal/geom"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// Stop is one entry of a tab sequence.
type Stop struct {
	ZoneID string
	ItemID string
}

// Sequence builds the depth-first tab sequence of the subtree rooted at
// rootID.
//
// A zone contributes its items in registered order. Child zones are
// interleaved with the items by on-screen position (top, then left); child
// zones without geometry follow the items in registration order. Disabled
// items are left out of zones that skip them.
func Sequence(t Tree, vp geom.Viewport, rootID string) []Stop {
	if vp == nil {
		vp = geom.NoViewport{}
	}
	var out []Stop
	appendZone(t, vp, rootID, &out)
	return out
}

// GlobalSequence builds the tab sequence of every root zone, roots ordered
// by on-screen position.
func GlobalSequence(t Tree, vp geom.Viewport) []Stop {
	if vp == nil {
		vp = geom.NoViewport{}
	}
	var out []Stop
	for _, root := range readingOrder(t.Children(""), vp.ZoneRect) {
		appendZone(t, vp, root, &out)
	}
	return out
}

func appendZone(t Tree, vp geom.Viewport, id string, out *[]Stop) {
	meta, ok := t.Get(id)
	if !ok {
		return
	}
	children := readingOrder(t.Children(id), vp.ZoneRect)
	ci := 0
	for _, item := range meta.Enabled() {
		if r, ok := vp.ItemRect(item); ok {
			for ci < len(children) {
				cr, ok := vp.ZoneRect(children[ci])
				if !ok || !before(cr, r) {
					break
				}
				appendZone(t, vp, children[ci], out)
				ci++
			}
		}
		*out = append(*out, Stop{ZoneID: id, ItemID: item})
	}
	for ; ci < len(children); ci++ {
		appendZone(t, vp, children[ci], out)
	}
}

// Tab resolves Tab (or Shift+Tab when backward) from an item of zoneID.
//
// The zone's tab behavior selects the policy:
//
//   - loop cycles through the sequence of the nearest looping ancestor, or
//     the zone itself, wrapping at both ends.
//   - escape locates the zone's last item (first when backward) in the
//     enclosing sequence and moves to the adjacent entry, leaving the zone.
//     A target zone entered by "restore" redirects to its last-focused item.
//   - flow walks the global sequence without wrapping.
//
// The enclosing sequence of escape is the nearest looping ancestor, which
// wraps, or the global sequence, which does not. It reports false when the
// move leaves the sequence.
func Tab(t Tree, vp geom.Viewport, f state.Focus, zoneID, itemID string, backward bool) (Stop, bool) {
	meta, ok := t.Get(zoneID)
	if !ok {
		return edge(GlobalSequence(t, vp), backward)
	}
	cur := Stop{ZoneID: zoneID, ItemID: itemID}

	switch meta.Config.Tab {
	case zone.TabLoop:
		root := loopAncestor(t, zoneID)
		if root == "" {
			root = zoneID
		}
		return step(Sequence(t, vp, root), cur, backward, true)

	case zone.TabFlow:
		return step(GlobalSequence(t, vp), cur, backward, false)

	default:
		local := Sequence(t, vp, zoneID)
		if len(local) == 0 {
			return step(GlobalSequence(t, vp), cur, backward, false)
		}
		boundary := local[len(local)-1]
		if backward {
			boundary = local[0]
		}
		seq, wrap := GlobalSequence(t, vp), false
		if root := loopAncestor(t, zoneID); root != "" {
			seq, wrap = Sequence(t, vp, root), true
		}
		next, ok := step(seq, boundary, backward, wrap)
		if !ok || next.ZoneID == zoneID && next.ItemID == boundary.ItemID {
			return Stop{}, false
		}
		return restoreRedirect(t, f, next), true
	}
}

// step moves one entry from cur through seq. A cur not in seq enters at
// the first entry, or the last when backward.
func step(seq []Stop, cur Stop, backward, wrap bool) (Stop, bool) {
	if len(seq) == 0 {
		return Stop{}, false
	}
	idx := slices.Index(seq, cur)
	if idx < 0 {
		return edge(seq, backward)
	}
	next := idx + 1
	if backward {
		next = idx - 1
	}
	switch {
	case next < 0 && wrap:
		next = len(seq) - 1
	case next >= len(seq) && wrap:
		next = 0
	case next < 0 || next >= len(seq):
		return Stop{}, false
	}
	return seq[next], true
}

func edge(seq []Stop, backward bool) (Stop, bool) {
	if len(seq) == 0 {
		return Stop{}, false
	}
	if backward {
		return seq[len(seq)-1], true
	}
	return seq[0], true
}

func loopAncestor(t Tree, id string) string {
	for _, a := range t.Ancestors(id) {
		if m, ok := t.Get(a); ok && m.Config.Tab == zone.TabLoop {
			return a
		}
	}
	return ""
}

func restoreRedirect(t Tree, f state.Focus, s Stop) Stop {
	meta, ok := t.Get(s.ZoneID)
	if !ok || meta.Config.Entry != zone.EntryRestore {
		return s
	}
	last := f.Zone(s.ZoneID).LastFocusedID
	if last != "" && slices.Contains(meta.Enabled(), last) {
		s.ItemID = last
	}
	return s
}
