package zone

import "errors"

// Zone errors.
var (
	// ErrEmptyID indicates a zone was registered without an id.
	ErrEmptyID = errors.New("zone: empty zone id")

	// ErrCycle indicates a parent chain loops back to the zone.
	ErrCycle = errors.New("zone: parent cycle")

	// ErrDisposed indicates the registry has been disposed.
	ErrDisposed = errors.New("zone: registry disposed")
)
