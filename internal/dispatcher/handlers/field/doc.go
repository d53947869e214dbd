// Package field provides handlers for inline editing and value items.
//
// OS_FIELD_START_EDIT puts an item into text-editing mode and
// OS_FIELD_COMMIT and OS_FIELD_CANCEL leave it. While an item is edited the
// keyboard resolver lets Space and printable keys through to the field.
//
// OS_VALUE_CHANGE moves a value item (a slider thumb or spin button) by a
// number of steps or to its minimum or maximum. The new range is written
// back to the zone registry, announced, and passed to the zone's
// OnValueChange callback.
package field
