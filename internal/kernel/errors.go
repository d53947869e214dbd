package kernel

import "errors"

// Kernel errors.
var (
	// ErrNoKeymapFile indicates no keymap file is configured to watch.
	ErrNoKeymapFile = errors.New("kernel: no keymap file configured")
)

// InitError reports which component failed while creating a kernel.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "kernel: init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
