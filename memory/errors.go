package memory

import "fmt"

// RangeError indicates that an address lies outside the image window.
type RangeError struct {
	Address uint32
	Origin  uint32
	Size    uint32
}

func (e *RangeError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("address 0x%08X is out of range: window is empty", e.Address)
	}
	return fmt.Sprintf("address 0x%08X is out of range: valid range is 0x%04X-0x%04X",
		e.Address, e.Origin, e.Origin+e.Size-1)
}

// WindowError indicates an attempt to select a window that does not fit the buffer.
type WindowError struct {
	Origin uint32
	Size   uint32
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window 0x%X+0x%X exceeds the %d byte address space", e.Origin, e.Size, Capacity)
}
