package zone

import (
	"slices"
	"strconv"

	"github.com/dshills/focuskit/internal/resolve"
	"github.com/dshills/focuskit/internal/state"
)

// Attributes are DOM attributes keyed by name.
type Attributes map[string]string

// Projection holds the attributes a renderer applies to a zone container
// and its items.
type Projection struct {
	Zone  Attributes
	Items map[string]Attributes
}

// Project computes the DOM attribute contract for a zone.
//
// active reports whether the zone is the kernel's active zone; only the
// active zone marks an item data-focused.
func Project(meta Metadata, zs state.ZoneState, active bool) Projection {
	cfg := meta.Config
	focused := FocusedItem(meta, zs)
	selection := resolve.Selection(zs.Selection, meta.Items)
	stop := TabStop(meta, zs)

	za := Attributes{
		"data-zone-id": meta.ID,
	}
	if cfg.Role != "" && cfg.Role != RoleDisclosure && cfg.Role != RoleAccordion {
		za["role"] = string(cfg.Role)
	}
	switch cfg.Orientation {
	case Vertical:
		if cfg.Role != RoleGroup && cfg.Role != RoleDialog && cfg.Role != RoleAlertdialog {
			za["aria-orientation"] = "vertical"
		}
	case Horizontal:
		za["aria-orientation"] = "horizontal"
	}
	if cfg.SelectMode == SelectMultiple {
		za["aria-multiselectable"] = "true"
	}
	if cfg.VirtualFocus {
		za["tabIndex"] = "0"
		if focused != "" {
			za["aria-activedescendant"] = focused
		}
	}

	items := make(map[string]Attributes, len(meta.Items))
	for _, id := range meta.Items {
		a := Attributes{
			"data-item-id": id,
			"data-focused": strconv.FormatBool(active && id == focused),
		}
		if cfg.ItemRole != "" {
			a["role"] = cfg.ItemRole
		}

		switch {
		case cfg.VirtualFocus:
			a["tabIndex"] = "-1"
		case id == stop:
			a["tabIndex"] = "0"
		default:
			a["tabIndex"] = "-1"
		}

		if cfg.Selectable() {
			a["aria-selected"] = strconv.FormatBool(slices.Contains(selection, id))
		} else if id == zs.LastFocusedID {
			a["aria-current"] = "true"
		}

		if cfg.Expandable && (meta.Parents[id] || cfg.Role == RoleAccordion || cfg.Role == RoleDisclosure) {
			a["aria-expanded"] = strconv.FormatBool(zs.IsExpanded(id))
		}

		if v, ok := meta.Values[id]; ok {
			a["aria-valuenow"] = formatFloat(v.Now)
			a["aria-valuemin"] = formatFloat(v.Min)
			a["aria-valuemax"] = formatFloat(v.Max)
		}

		if meta.Disabled[id] {
			a["aria-disabled"] = "true"
		}
		items[id] = a
	}

	return Projection{Zone: za, Items: items}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
