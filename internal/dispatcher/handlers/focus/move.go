package focus

import (
	"time"

	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/state"
	"github.com/dshills/focuskit/internal/zone"
)

// Moved returns zs focused on itemID.
//
// Editing ends when focus leaves the edited item and the typeahead buffer is
// dropped. A single-select zone that follows focus selects the new item.
func Moved(zs state.ZoneState, meta zone.Metadata, itemID string) state.ZoneState {
	zs = zs.WithFocus(itemID, meta.IndexOf(itemID)).WithTypeahead("", time.Time{})
	if zs.IsEditing() && zs.EditingItemID != itemID {
		zs = zs.WithEditing("")
	}
	cfg := meta.Config
	if itemID != "" && cfg.FollowFocus && cfg.SelectMode == zone.SelectSingle {
		zs = zs.WithSelection([]string{itemID}, itemID)
	}
	return zs
}

// MoveTo returns the focus state with zoneID active and focused on itemID,
// plus the effects that move host focus there.
func MoveTo(ctx *execctx.ExecutionContext, zoneID string, meta zone.Metadata, itemID string) (state.Focus, []handler.Effect) {
	zs := Moved(ctx.ZoneState(zoneID), meta, itemID)
	return ctx.Focus.WithZone(zoneID, zs).WithActive(zoneID), Effects(zoneID, meta, itemID)
}

// Effects returns the focus and scroll effects for itemID. Zones with
// virtual focus keep host focus on the container.
func Effects(zoneID string, meta zone.Metadata, itemID string) []handler.Effect {
	target := itemID
	if meta.Config.VirtualFocus {
		target = ""
	}
	effects := []handler.Effect{handler.FocusEffect(zoneID, target)}
	if itemID != "" {
		effects = append(effects, handler.ScrollEffect(zoneID, itemID))
	}
	return effects
}

// Apply returns r with the focus state and effects set.
func Apply(r handler.Result, f state.Focus, effects []handler.Effect) handler.Result {
	r = r.WithFocus(f)
	for _, e := range effects {
		r = r.WithEffect(e)
	}
	return r
}
