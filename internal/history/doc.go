// Package history implements undo/redo for application data.
//
// History records one Entry per data-changing command. It is wired into the
// dispatcher as middleware: the pre-dispatch hook captures the data snapshot
// and the focused item before the handler runs, and the post-dispatch hook
// records an entry when the handler replaced the data.
//
// # Recording Rules
//
// No entry is recorded when the command:
//   - is a passthrough OS command (navigation, selection, focus)
//   - is self-managed (OS_UNDO, OS_REDO)
//   - is marked NoLog
//   - did not succeed
//   - returned data that is the same value as before
//
// Recording clears the redo stack. The undo stack is bounded; the oldest
// entries are evicted first.
//
// # Transactions
//
// BeginTransaction and EndTransaction nest. Entries recorded while a
// transaction is open share one group id and are undone and redone as a
// single step:
//
//	h.BeginTransaction()
//	defer h.EndTransaction()
//
// The dispatcher opens a transaction around the follow-up commands of a
// single zone callback, so one user gesture is one undo step.
package history
