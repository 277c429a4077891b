package bootloader

import (
	"errors"
	"fmt"
)

// ErrUnalignedWindow is returned when an image window does not start on a
// page boundary or is not a whole number of pages.
var ErrUnalignedWindow = errors.New("window is not page aligned")

// SerialIOError indicates that a transport read or write did not move the
// exact number of bytes an exchange requires.
type SerialIOError struct {
	// Op is "write" or "read"
	Op string

	// Address is the page being exchanged
	Address uint32

	Expected int
	Actual   int

	// Err is the transport error, if the transport reported one
	Err error
}

func (e *SerialIOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("serial %s of page 0x%04X failed after %d of %d bytes: %v",
			e.Op, e.Address, e.Actual, e.Expected, e.Err)
	}
	return fmt.Sprintf("serial %s of page 0x%04X moved %d of %d bytes",
		e.Op, e.Address, e.Actual, e.Expected)
}

func (e *SerialIOError) Unwrap() error {
	return e.Err
}

// ReplyError indicates that the device replied with the expected number of
// bytes but the content is invalid.
type ReplyError struct {
	Address uint32
	Err     error
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("invalid reply from device for page 0x%04X: %v", e.Address, e.Err)
}

func (e *ReplyError) Unwrap() error {
	return e.Err
}

// VerificationError indicates that memory read back from the device
// differs from the image that was written.
type VerificationError struct {
	Address  uint32
	Expected byte
	Actual   byte
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed at 0x%04X: expected 0x%02X, got 0x%02X",
		e.Address, e.Expected, e.Actual)
}
