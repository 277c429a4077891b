package protocol

import (
	"errors"
	"fmt"
)

// ErrPageSize is returned when a page buffer is not exactly PageSize bytes long.
var ErrPageSize = fmt.Errorf("page must be exactly %d bytes", PageSize)

// errNotHex is wrapped by FrameError when a hex region contains other characters.
var errNotHex = errors.New("invalid hex digit")

// FrameError indicates a frame that does not match the expected layout.
type FrameError struct {
	// Region is the part of the frame that failed ("length", "start", "address", "data", "end")
	Region string

	// Offset is the byte offset within the frame
	Offset int

	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("invalid frame %s at offset %d: %v", e.Region, e.Offset, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// IsFrameError returns true if the error is a FrameError.
func IsFrameError(err error) bool {
	var frameErr *FrameError
	return errors.As(err, &frameErr)
}
