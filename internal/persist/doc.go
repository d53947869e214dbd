// Package persist saves kernel state to a key-value store.
//
// A Persister serializes the application data and focus state under one key
// after a debounce window. Only the last change within the window is
// written, and a pending write can be cancelled or flushed. Storage failures
// are logged and swallowed: state stays correct in memory and only
// durability is lost.
//
// Hydration deep-merges the persisted document onto the defaults, so fields
// added since the document was written take their default values and fields
// that are no longer known are kept.
//
// Two stores are provided: SQLiteStore, backed by a single table in a
// SQLite file, and MemoryStore for tests and ephemeral sessions.
package persist
