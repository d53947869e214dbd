package config

import "errors"

var (
	// ErrUnknownFormat indicates a config file with an unsupported extension.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid")
)
