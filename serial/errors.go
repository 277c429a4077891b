package serial

import (
	"errors"
	"fmt"
)

// ErrTimeout is returned by Read when the device did not send enough bytes
// in time.
var ErrTimeout = errors.New("serial read timed out")

// ErrClosed is returned by operations on a closed port.
var ErrClosed = errors.New("serial port is closed")

// OpenError indicates that the serial device cannot be opened or configured.
type OpenError struct {
	Name string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("cannot open serial port %q: %v", e.Name, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}
