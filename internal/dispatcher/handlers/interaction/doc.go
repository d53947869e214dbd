// Package interaction provides handlers that delegate item operations to
// zone callbacks.
//
// OS_DELETE, OS_MOVE_UP, OS_MOVE_DOWN, OS_CHECK and OS_ACTIVATE call the
// target zone's callback exactly once with the zone cursor, never once per
// selected item. The callback returns follow-up commands that the kernel
// dispatches after this command commits. A zone without the callback makes
// the command a no-op. Selection is left as it is after a delete; clearing
// it is up to the commands the callback returns.
//
// OS_ACTIVATE on an expandable item without an OnAction callback toggles
// the item's expansion.
package interaction
