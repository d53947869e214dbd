package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoHandler indicates no handler was found for a command.
	ErrNoHandler = errors.New("dispatcher: no handler for command")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("dispatcher: handler panic")

	// ErrInvalidCommand indicates the command has no type.
	ErrInvalidCommand = errors.New("dispatcher: invalid command")

	// ErrMaxDepth indicates follow-up commands nested too deeply.
	ErrMaxDepth = errors.New("dispatcher: follow-up depth exceeded")

	// ErrDisposed indicates the dispatcher has been disposed.
	ErrDisposed = errors.New("dispatcher: disposed")
)
