package ihex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Source provides the byte stored at an address. A non-nil error aborts
// encoding with a MemoryRangeError.
type Source func(address uint32) (byte, error)

const segmentMask = 0xFFFF0000

// EncodeFile creates or truncates the file at path and encodes the range
// [address, address+size) into it. An aborted encode leaves a partially
// written file behind.
func EncodeFile(path string, source Source, address, size uint32, width int) (err error) {
	if err := checkWidth(width); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOFormatError{Field: "file", Err: cerr}
		}
	}()

	return Encode(f, source, address, size, width)
}

// Encode writes the range [address, address+size) as Data records of at
// most width bytes, followed by a single End Of File record.
func Encode(w io.Writer, source Source, address, size uint32, width int) error {
	if source == nil {
		return errors.New("source cannot be nil")
	}
	if err := checkWidth(width); err != nil {
		return err
	}

	e := &encoder{
		w:      bufio.NewWriter(w),
		source: source,
		data:   make([]byte, 0, width),
	}

	end := uint64(address) + uint64(size)
	start := uint64(address)
	var base uint64

	for addr := start; addr < end; addr++ {
		if addr&segmentMask != base {
			if err := e.dataRecord(start, addr); err != nil {
				return err
			}
			base = addr & segmentMask
			if err := e.extendedAddressRecord(uint32(base)); err != nil {
				return err
			}
			start = addr
		}
		if addr-start >= uint64(width) {
			if err := e.dataRecord(start, addr); err != nil {
				return err
			}
			start = addr
		}
	}

	if err := e.dataRecord(start, end); err != nil {
		return err
	}
	if err := e.write(Record{Type: EndOfFile}); err != nil {
		return err
	}

	if err := e.w.Flush(); err != nil {
		return &IOFormatError{Line: e.line, Field: "record", Err: err}
	}
	return nil
}

type encoder struct {
	w      *bufio.Writer
	source Source
	data   []byte
	text   []byte
	line   int
}

// dataRecord emits one Data record for [from, to), if the range is not empty.
func (e *encoder) dataRecord(from, to uint64) error {
	if from == to {
		return nil
	}

	e.data = e.data[:0]
	for addr := from; addr < to; addr++ {
		v, err := e.source(uint32(addr))
		if err != nil {
			return &MemoryRangeError{Line: e.line + 1, Address: uint32(addr), Err: err}
		}
		e.data = append(e.data, v)
	}

	return e.write(Record{
		Type:    Data,
		Address: uint16(from),
		Data:    e.data,
	})
}

func (e *encoder) extendedAddressRecord(base uint32) error {
	return e.write(Record{
		Type: ExtendedLinearAddress,
		Data: []byte{byte(base >> 24), byte(base >> 16)},
	})
}

func (e *encoder) write(r Record) error {
	e.line++
	e.text = r.AppendText(e.text[:0])
	e.text = append(e.text, '\n')
	if _, err := e.w.Write(e.text); err != nil {
		return &IOFormatError{Line: e.line, Field: "record", Err: err}
	}
	return nil
}

func checkWidth(width int) error {
	if width < 1 || width > MaxRecordWidth {
		return &IOFormatError{
			Field: "record width",
			Err:   fmt.Errorf("width %d is outside 1-%d", width, MaxRecordWidth),
		}
	}
	return nil
}
