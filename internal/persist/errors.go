package persist

import "errors"

var (
	// ErrClosed indicates use of a closed store.
	ErrClosed = errors.New("persist: store closed")

	// ErrEmptyKey indicates a persistence key of "".
	ErrEmptyKey = errors.New("persist: empty key")

	// ErrNotObject indicates a persisted document that is not a JSON object.
	ErrNotObject = errors.New("persist: document is not an object")
)
