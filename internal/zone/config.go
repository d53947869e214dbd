package zone

// Role is an ARIA interaction pattern implemented by a zone.
type Role string

// Supported roles.
const (
	RoleGroup       Role = "group"
	RoleListbox     Role = "listbox"
	RoleMenu        Role = "menu"
	RoleMenubar     Role = "menubar"
	RoleRadiogroup  Role = "radiogroup"
	RoleTablist     Role = "tablist"
	RoleToolbar     Role = "toolbar"
	RoleGrid        Role = "grid"
	RoleTreegrid    Role = "treegrid"
	RoleTree        Role = "tree"
	RoleDialog      Role = "dialog"
	RoleAlertdialog Role = "alertdialog"
	RoleCombobox    Role = "combobox"
	RoleFeed        Role = "feed"
	RoleAccordion   Role = "accordion"
	RoleDisclosure  Role = "disclosure"
)

// Roles lists every supported role in table order.
var Roles = []Role{
	RoleGroup, RoleListbox, RoleMenu, RoleMenubar, RoleRadiogroup, RoleTablist,
	RoleToolbar, RoleGrid, RoleTreegrid, RoleTree, RoleDialog, RoleAlertdialog,
	RoleCombobox, RoleFeed, RoleAccordion, RoleDisclosure,
}

// Orientation restricts which arrow keys move focus.
type Orientation uint8

const (
	// Vertical zones move with up/down.
	Vertical Orientation = iota
	// Horizontal zones move with left/right.
	Horizontal
	// Both accepts all four arrows.
	Both
)

// String returns a string representation of the orientation.
func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case Both:
		return "both"
	default:
		return "unknown"
	}
}

// EntryPolicy selects the item focused when a zone is entered.
type EntryPolicy uint8

const (
	// EntryFirst enters at the first item.
	EntryFirst EntryPolicy = iota
	// EntryLast enters at the last item.
	EntryLast
	// EntryRestore enters at the last-focused item.
	EntryRestore
	// EntrySelected enters at the first selected item.
	EntrySelected
)

// String returns a string representation of the entry policy.
func (e EntryPolicy) String() string {
	switch e {
	case EntryFirst:
		return "first"
	case EntryLast:
		return "last"
	case EntryRestore:
		return "restore"
	case EntrySelected:
		return "selected"
	default:
		return "unknown"
	}
}

// SelectMode is the selection cardinality of a zone.
type SelectMode uint8

const (
	// SelectNone disables selection.
	SelectNone SelectMode = iota
	// SelectSingle allows at most one selected item.
	SelectSingle
	// SelectMultiple allows any number of selected items.
	SelectMultiple
)

// String returns a string representation of the select mode.
func (m SelectMode) String() string {
	switch m {
	case SelectNone:
		return "none"
	case SelectSingle:
		return "single"
	case SelectMultiple:
		return "multiple"
	default:
		return "unknown"
	}
}

// TabBehavior selects how Tab moves through and out of a zone.
type TabBehavior uint8

const (
	// TabEscape leaves the zone onto the adjacent item of the global sequence.
	TabEscape TabBehavior = iota
	// TabLoop cycles within the nearest looping ancestor.
	TabLoop
	// TabFlow walks the global sequence without zone boundaries.
	TabFlow
)

// String returns a string representation of the tab behavior.
func (b TabBehavior) String() string {
	switch b {
	case TabEscape:
		return "escape"
	case TabLoop:
		return "loop"
	case TabFlow:
		return "flow"
	default:
		return "unknown"
	}
}

// Activation selects whether focus alone activates an item.
type Activation uint8

const (
	// ActivationManual requires Enter or a click.
	ActivationManual Activation = iota
	// ActivationAutomatic activates on focus.
	ActivationAutomatic
)

// String returns a string representation of the activation mode.
func (a Activation) String() string {
	if a == ActivationAutomatic {
		return "automatic"
	}
	return "manual"
}

// Dismiss selects what Escape does.
type Dismiss uint8

const (
	// DismissNone ignores Escape.
	DismissNone Dismiss = iota
	// DismissDeselect clears the selection.
	DismissDeselect
	// DismissClose closes the zone and returns focus to its parent.
	DismissClose
)

// String returns a string representation of the dismiss behavior.
func (d Dismiss) String() string {
	switch d {
	case DismissNone:
		return "none"
	case DismissDeselect:
		return "deselect"
	case DismissClose:
		return "close"
	default:
		return "unknown"
	}
}

// Config is the role-resolved behavior of a zone.
type Config struct {
	Role         Role
	Orientation  Orientation
	Loop         bool
	Typeahead    bool
	Entry        EntryPolicy
	SelectMode   SelectMode
	FollowFocus  bool
	Tab          TabBehavior
	SkipDisabled bool
	Activation   Activation
	Dismiss      Dismiss
	AutoFocus    bool

	// VirtualFocus keeps DOM focus on the zone container and tracks the
	// focused item through aria-activedescendant.
	VirtualFocus bool

	// Spatial navigates by item rectangles instead of list order.
	Spatial bool

	// Seamless hands blocked moves to a sibling zone.
	Seamless bool

	// Expandable items carry aria-expanded.
	Expandable bool

	// ItemRole is the role projected onto items. Empty means no role.
	ItemRole string
}

// Selectable reports whether the zone supports selection.
func (c Config) Selectable() bool {
	return c.SelectMode != SelectNone
}

// Accepts reports whether the orientation handles a vertical or
// horizontal move.
func (c Config) Accepts(vertical bool) bool {
	switch c.Orientation {
	case Both:
		return true
	case Vertical:
		return vertical
	default:
		return !vertical
	}
}

var presets = map[Role]Config{
	RoleGroup: {
		Orientation: Vertical, Entry: EntryFirst, Tab: TabEscape,
	},
	RoleListbox: {
		Orientation: Vertical, Typeahead: true, Entry: EntrySelected,
		SelectMode: SelectSingle, FollowFocus: true, Tab: TabEscape,
		Activation: ActivationAutomatic, ItemRole: "option",
	},
	RoleMenu: {
		Orientation: Vertical, Loop: true, Typeahead: true, Entry: EntryFirst,
		Tab: TabEscape, SkipDisabled: true, Dismiss: DismissClose,
		AutoFocus: true, ItemRole: "menuitem",
	},
	RoleMenubar: {
		Orientation: Horizontal, Loop: true, Typeahead: true, Entry: EntryFirst,
		Tab: TabEscape, SkipDisabled: true, ItemRole: "menuitem",
	},
	RoleRadiogroup: {
		Orientation: Both, Loop: true, Entry: EntrySelected,
		SelectMode: SelectSingle, FollowFocus: true, Tab: TabEscape,
		SkipDisabled: true, Activation: ActivationAutomatic, ItemRole: "radio",
	},
	RoleTablist: {
		Orientation: Horizontal, Loop: true, Entry: EntrySelected,
		SelectMode: SelectSingle, FollowFocus: true, Tab: TabEscape,
		Activation: ActivationAutomatic, ItemRole: "tab",
	},
	RoleToolbar: {
		Orientation: Horizontal, Entry: EntryRestore, Tab: TabEscape,
		SkipDisabled: true,
	},
	RoleGrid: {
		Orientation: Both, Entry: EntryRestore, SelectMode: SelectMultiple,
		Tab: TabEscape, Spatial: true, ItemRole: "gridcell",
	},
	RoleTreegrid: {
		Orientation: Both, Entry: EntryRestore, SelectMode: SelectMultiple,
		Tab: TabEscape, Spatial: true, Expandable: true, ItemRole: "row",
	},
	RoleTree: {
		Orientation: Vertical, Typeahead: true, Entry: EntrySelected,
		SelectMode: SelectSingle, Tab: TabEscape, Expandable: true,
		ItemRole: "treeitem",
	},
	RoleDialog: {
		Orientation: Vertical, Entry: EntryFirst, Tab: TabLoop,
		Dismiss: DismissClose, AutoFocus: true,
	},
	RoleAlertdialog: {
		Orientation: Vertical, Entry: EntryFirst, Tab: TabLoop,
		Dismiss: DismissClose, AutoFocus: true,
	},
	RoleCombobox: {
		Orientation: Vertical, Typeahead: true, Entry: EntrySelected,
		SelectMode: SelectSingle, FollowFocus: true, Tab: TabEscape,
		Dismiss: DismissClose, VirtualFocus: true, ItemRole: "option",
	},
	RoleFeed: {
		Orientation: Vertical, Entry: EntryRestore, Tab: TabEscape,
		ItemRole: "article",
	},
	RoleAccordion: {
		Orientation: Vertical, Entry: EntryFirst, Tab: TabFlow,
		Expandable: true, ItemRole: "button",
	},
	RoleDisclosure: {
		Orientation: Vertical, Entry: EntryFirst, Tab: TabFlow,
		Expandable: true, ItemRole: "button",
	},
}

// Preset returns the configuration for a role. Unknown roles get the group
// preset with the role name kept.
func Preset(role Role) Config {
	cfg, ok := presets[role]
	if !ok {
		cfg = presets[RoleGroup]
	}
	cfg.Role = role
	return cfg
}

// IsKnownRole reports whether role has a preset.
func IsKnownRole(role Role) bool {
	_, ok := presets[role]
	return ok
}
