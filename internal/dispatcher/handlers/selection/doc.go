// Package selection provides handlers for per-zone selection commands.
//
// SELECTION_SET, SELECTION_ADD, SELECTION_REMOVE, SELECTION_TOGGLE,
// SELECTION_CLEAR, SELECTION_RANGE and SELECTION_ALL apply the selection
// algebra of the selection package to the target zone. Ids that are not
// items of the zone are ignored, and a single-select zone never holds more
// than one id.
//
// OS_SELECT is the click and Space gesture: a plain select replaces the
// selection, Toggle adds or removes the item and Range extends from the
// anchor. It also moves focus to the item.
package selection
