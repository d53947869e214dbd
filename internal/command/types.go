package command

import "github.com/dshills/focuskit/internal/geom"

// Built-in command types.
const (
	Focus     = "OS_FOCUS"
	SyncFocus = "OS_SYNC_FOCUS"
	Navigate  = "OS_NAVIGATE"
	Tab       = "OS_TAB"
	Escape    = "OS_ESCAPE"
	Select    = "OS_SELECT"
	Recover   = "OS_RECOVER"
	Typeahead = "OS_TYPEAHEAD"

	SelectionSet    = "SELECTION_SET"
	SelectionAdd    = "SELECTION_ADD"
	SelectionRemove = "SELECTION_REMOVE"
	SelectionToggle = "SELECTION_TOGGLE"
	SelectionClear  = "SELECTION_CLEAR"
	SelectionRange  = "SELECTION_RANGE"
	SelectionAll    = "SELECTION_ALL"

	Delete   = "OS_DELETE"
	Copy     = "OS_COPY"
	Cut      = "OS_CUT"
	Paste    = "OS_PASTE"
	Activate = "OS_ACTIVATE"
	Check    = "OS_CHECK"
	MoveUp   = "OS_MOVE_UP"
	MoveDown = "OS_MOVE_DOWN"
	Undo     = "OS_UNDO"
	Redo     = "OS_REDO"

	Expand   = "OS_EXPAND"
	Collapse = "OS_COLLAPSE"

	FieldStartEdit = "OS_FIELD_START_EDIT"
	FieldCommit    = "OS_FIELD_COMMIT"
	FieldCancel    = "OS_FIELD_CANCEL"

	ValueChange = "OS_VALUE_CHANGE"

	ClipboardWrite = "OS_CLIPBOARD_WRITE"

	ZoneRegister   = "OS_ZONE_REGISTER"
	ZoneUnregister = "OS_ZONE_UNREGISTER"
	ZoneItems      = "OS_ZONE_ITEMS"
)

var passthrough = map[string]bool{
	Focus: true, SyncFocus: true, Navigate: true, Tab: true, Escape: true,
	Select: true, Recover: true, Typeahead: true,
	SelectionSet: true, SelectionAdd: true, SelectionRemove: true,
	SelectionToggle: true, SelectionClear: true, SelectionRange: true, SelectionAll: true,
	Delete: true, Copy: true, Cut: true, Paste: true, Activate: true, Check: true,
	MoveUp: true, MoveDown: true,
	Expand: true, Collapse: true,
	FieldStartEdit: true, FieldCommit: true, FieldCancel: true,
	ValueChange: true, ClipboardWrite: true,
	ZoneRegister: true, ZoneUnregister: true, ZoneItems: true,
}

// IsPassthrough reports whether a command type only touches focus, selection
// or other ephemeral kernel state and never application data.
func IsPassthrough(typ string) bool {
	return passthrough[typ]
}

// IsSelfManaged reports whether a command type manages history itself.
func IsSelfManaged(typ string) bool {
	return typ == Undo || typ == Redo
}

// FocusPayload targets a zone item. An empty ZoneID means the active zone.
type FocusPayload struct {
	ZoneID string
	ItemID string
}

// NavigatePayload moves focus in a direction.
type NavigatePayload struct {
	Direction geom.Direction

	// Extend extends the selection range from the anchor (Shift+Arrow).
	Extend bool
}

// TabPayload moves focus through the tab sequence.
type TabPayload struct {
	Backward bool
}

// SelectPayload selects an item the way a click or Space would.
type SelectPayload struct {
	ItemID string

	// Toggle adds or removes the item (Ctrl/Meta click).
	Toggle bool

	// Range selects from the anchor to the item (Shift click).
	Range bool
}

// SelectionPayload carries the ids for selection commands. ZoneID defaults
// to the active zone.
type SelectionPayload struct {
	ZoneID string
	IDs    []string
}

// ItemPayload targets a single item for commands such as OS_CHECK.
type ItemPayload struct {
	ZoneID string
	ItemID string
}

// TypeaheadPayload carries one typed character.
type TypeaheadPayload struct {
	Char rune
}

// ValuePayload changes the value of a range item.
type ValuePayload struct {
	ItemID string
	Delta  float64
	ToMin  bool
	ToMax  bool
}

// ClipboardPayload is written to the system and structured clipboards.
type ClipboardPayload struct {
	Text  string
	Kind  string
	Items []any
}
