package cli

import (
	"context"
	"errors"

	"github.com/rksdna/emrom/bootloader"
	"github.com/rksdna/emrom/ihex"
	"github.com/rksdna/emrom/serial"
)

var (
	// ErrAlreadyConnected is returned by connect while a port is open.
	ErrAlreadyConnected = errors.New("serial port already open")

	// ErrNotConnected is returned by device commands before connect.
	ErrNotConnected = errors.New("serial port is not open")
)

// UsageError represents an error that should show usage information
type UsageError struct {
	msg string
	err error
}

func (e *UsageError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return e.msg
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// Process exit codes.
const (
	ExitOK           = 0
	ExitUsage        = 1
	ExitInternal     = 2
	ExitCancelled    = 3
	ExitSerialOpen   = 10
	ExitSerialIO     = 11
	ExitDeviceReply  = 12
	ExitConnection   = 13
	ExitVerification = 14
	ExitFileOpen     = 20
	ExitFileFormat   = 21
	ExitFileChecksum = 22
	ExitFileRecord   = 23
	ExitMemoryRange  = 24
)

var exitCodes = []struct {
	code  int
	usage string
}{
	{ExitUsage, "Invalid command, argument or flag"},
	{ExitInternal, "Internal error"},
	{ExitCancelled, "Operation cancelled or timed out"},
	{ExitSerialOpen, "Serial port cannot be opened"},
	{ExitSerialIO, "No reply from device bootloader"},
	{ExitDeviceReply, "Invalid reply from device bootloader"},
	{ExitConnection, "Serial port already open or not connected"},
	{ExitVerification, "Device memory differs from file after write"},
	{ExitFileOpen, "Record file cannot be opened"},
	{ExitFileFormat, "Malformed record file"},
	{ExitFileChecksum, "Invalid checksum of file"},
	{ExitFileRecord, "Invalid record in file"},
	{ExitMemoryRange, "Invalid device memory location"},
	{ExitOK, "No errors, all done"},
}

// ExitCode maps an error returned by Run or Parse to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var (
		usageErr    *UsageError
		openErr     *serial.OpenError
		ioErr       *bootloader.SerialIOError
		replyErr    *bootloader.ReplyError
		verifyErr   *bootloader.VerificationError
		fileErr     *ihex.FileError
		formatErr   *ihex.IOFormatError
		checksumErr *ihex.ChecksumError
		recordErr   *ihex.RecordFormatError
		rangeErr    *ihex.MemoryRangeError
	)

	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitCancelled
	case errors.As(err, &openErr):
		return ExitSerialOpen
	case errors.As(err, &ioErr):
		return ExitSerialIO
	case errors.As(err, &replyErr):
		return ExitDeviceReply
	case errors.Is(err, ErrAlreadyConnected), errors.Is(err, ErrNotConnected):
		return ExitConnection
	case errors.As(err, &verifyErr):
		return ExitVerification
	case errors.As(err, &fileErr):
		return ExitFileOpen
	case errors.As(err, &formatErr):
		return ExitFileFormat
	case errors.As(err, &checksumErr):
		return ExitFileChecksum
	case errors.As(err, &recordErr):
		return ExitFileRecord
	case errors.As(err, &rangeErr):
		return ExitMemoryRange
	default:
		return ExitInternal
	}
}
