package ihex

import "fmt"

// FileError indicates that the record file cannot be opened or created.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("cannot open record file %q: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// IOFormatError indicates a malformed field, hex digit or line structure,
// or a failure of the underlying stream.
type IOFormatError struct {
	Line  int
	Field string
	Err   error
}

func (e *IOFormatError) Error() string {
	return fmt.Sprintf("line %d: malformed %s: %v", e.Line, e.Field, e.Err)
}

func (e *IOFormatError) Unwrap() error {
	return e.Err
}

// RecordFormatError indicates that a record violates the constraints of its type.
type RecordFormatError struct {
	Line    int
	Type    RecordType
	Message string
}

func (e *RecordFormatError) Error() string {
	return fmt.Sprintf("line %d: invalid %s record: %s", e.Line, e.Type, e.Message)
}

// ChecksumError indicates that the checksum of a record does not match its content.
type ChecksumError struct {
	Line     int
	Expected byte
	Actual   byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("line %d: checksum mismatch: expected 0x%02X, got 0x%02X",
		e.Line, e.Expected, e.Actual)
}

// MemoryRangeError indicates that the sink or source refused an address.
type MemoryRangeError struct {
	Line    int
	Address uint32
	Err     error
}

func (e *MemoryRangeError) Error() string {
	return fmt.Sprintf("line %d: address 0x%08X rejected: %v", e.Line, e.Address, e.Err)
}

func (e *MemoryRangeError) Unwrap() error {
	return e.Err
}
