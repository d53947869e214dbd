package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingZones indicates the zone registry is required but not set.
	ErrMissingZones = errors.New("execution context: zone registry is required")

	// ErrNoActiveZone indicates the command needs an active zone.
	ErrNoActiveZone = errors.New("execution context: no active zone")

	// ErrUnknownZone indicates the target zone is not registered.
	ErrUnknownZone = errors.New("execution context: unknown zone")
)
