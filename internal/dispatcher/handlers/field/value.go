package field

import (
	"maps"
	"strconv"

	"github.com/dshills/focuskit/internal/command"
	"github.com/dshills/focuskit/internal/dispatcher/execctx"
	"github.com/dshills/focuskit/internal/dispatcher/handler"
	"github.com/dshills/focuskit/internal/zone"
)

// ValueKey is the result value holding the updated zone.ValueRange.
const ValueKey = "value"

func (h *Handler) changeValue(p command.ValuePayload, ctx *execctx.ExecutionContext) handler.Result {
	zoneID := ""
	if p.ItemID != "" && ctx.Zones != nil {
		if owner, ok := ctx.Zones.FindItem(p.ItemID); ok {
			zoneID = owner
		}
	}
	id, meta, err := ctx.TargetZone(zoneID)
	if err != nil {
		return handler.NoOp()
	}
	item := p.ItemID
	if item == "" {
		item = zone.FocusedItem(meta, ctx.ZoneState(id))
	}
	v, ok := meta.Values[item]
	if !ok {
		return handler.NoOp()
	}

	next := v
	switch {
	case p.ToMin:
		next.Now = v.Min
	case p.ToMax:
		next.Now = v.Max
	default:
		next = v.Apply(p.Delta)
	}
	if next.Now == v.Now {
		return handler.NoOp()
	}

	meta.Values = maps.Clone(meta.Values)
	meta.Values[item] = next
	ctx.Zones.Register(id, meta)

	res := handler.Success().
		WithEffect(handler.Effect{
			Kind:   handler.EffectAnnounce,
			ZoneID: id,
			ItemID: item,
			Text:   strconv.FormatFloat(next.Now, 'f', -1, 64),
		}).
		WithValue(ValueKey, next)
	if cb := meta.Callbacks.OnValueChange; cb != nil {
		res = res.WithDispatch(cb(item, next)...)
	}
	return res
}
