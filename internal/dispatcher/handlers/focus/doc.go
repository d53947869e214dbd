// Package focus provides handlers for focus movement between zones.
//
// # Commands
//
//   - OS_FOCUS: focus an item, or a zone's entry item when no item is given
//   - OS_SYNC_FOCUS: record a focus change the host already performed
//   - OS_RECOVER: move focus off a removed item or zone
//   - OS_TAB: walk the tab sequence following the zone's tab behavior
//   - OS_ESCAPE: deselect or close the active zone
//
// MoveTo and Moved are shared with the other handler packages so every
// focus change updates selection, editing and typeahead state the same way.
package focus
