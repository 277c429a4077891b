package ihex

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// Sink receives every decoded data byte. A non-nil error aborts decoding
// with a MemoryRangeError.
type Sink func(address uint32, value byte) error

// DecodeFile decodes the record file at path into sink.
func DecodeFile(path string, sink Sink) error {
	f, err := os.Open(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return Decode(f, sink)
}

// Decode parses records from r until the stream is exhausted or an End Of
// File record is seen. Data bytes are passed to sink as they are parsed.
// The first error of any kind aborts decoding.
func Decode(r io.Reader, sink Sink) error {
	if sink == nil {
		return errors.New("sink cannot be nil")
	}

	d := &decoder{
		r:    bufio.NewReader(r),
		sink: sink,
		line: 1,
	}

	for {
		more, err := d.skipSpace()
		if err != nil || !more {
			return err
		}

		done, err := d.record()
		if err != nil || done {
			return err
		}
	}
}

type decoder struct {
	r    *bufio.Reader
	sink Sink
	base uint32
	line int
	buf  [startDigits]byte
}

// skipSpace consumes whitespace and line breaks between records.
// It returns false once the input is exhausted.
func (d *decoder) skipSpace() (bool, error) {
	for {
		c, err := d.r.ReadByte()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, d.formatError("line", err)
		}

		switch c {
		case '\n':
			d.line++
		case '\r', ' ', '\t':
		default:
			return true, d.r.UnreadByte()
		}
	}
}

// record parses one record. done is true after an End Of File record.
func (d *decoder) record() (done bool, err error) {
	c, err := d.r.ReadByte()
	if err != nil {
		return false, d.formatError("record start", err)
	}
	if c != ':' {
		return false, d.formatError("record start", fmt.Errorf("expected ':', got %q", c))
	}

	size, err := d.field("byte count", sizeDigits)
	if err != nil {
		return false, err
	}
	address, err := d.field("address", addressDigits)
	if err != nil {
		return false, err
	}
	typ, err := d.field("record type", typeDigits)
	if err != nil {
		return false, err
	}

	sum := byte(size) + byte(address>>8) + byte(address) + byte(typ)
	recordType := RecordType(typ)
	base := d.base

	switch recordType {
	case Data:
		for i := uint32(0); i < size; i++ {
			value, err := d.field("data byte", byteDigits)
			if err != nil {
				return false, err
			}
			sum += byte(value)

			target := d.base + address + i
			if err := d.sink(target, byte(value)); err != nil {
				return false, &MemoryRangeError{Line: d.line, Address: target, Err: err}
			}
		}

	case EndOfFile:
		if size != 0 || address != 0 {
			return false, d.recordError(recordType, size, address)
		}
		done = true

	case ExtendedLinearAddress:
		if size != 2 || address != 0 {
			return false, d.recordError(recordType, size, address)
		}
		value, err := d.field("extended linear address", baseDigits)
		if err != nil {
			return false, err
		}
		sum += byte(value>>8) + byte(value)
		base = value << 16

	case StartLinearAddress:
		if size != 4 || address != 0 {
			return false, d.recordError(recordType, size, address)
		}
		value, err := d.field("start linear address", startDigits)
		if err != nil {
			return false, err
		}
		// folded into the checksum only, the start address has no effect on decoding
		sum += byte(value>>24) + byte(value>>16) + byte(value>>8) + byte(value)

	default:
		return false, &RecordFormatError{
			Line:    d.line,
			Type:    recordType,
			Message: "unsupported record type",
		}
	}

	checksum, err := d.field("checksum", checksumDigits)
	if err != nil {
		return false, err
	}
	if sum+byte(checksum) != 0 {
		return false, &ChecksumError{
			Line:     d.line,
			Expected: -sum,
			Actual:   byte(checksum),
		}
	}

	d.base = base
	return done, nil
}

// field reads exactly digits hex characters and returns their value.
func (d *decoder) field(name string, digits int) (uint32, error) {
	buf := d.buf[:digits]
	if _, err := io.ReadFull(d.r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, d.formatError(name, err)
	}

	value, err := parseHex(buf)
	if err != nil {
		return 0, d.formatError(name, err)
	}
	return value, nil
}

func (d *decoder) formatError(field string, err error) error {
	return &IOFormatError{Line: d.line, Field: field, Err: err}
}

func (d *decoder) recordError(t RecordType, size, address uint32) error {
	return &RecordFormatError{
		Line: d.line,
		Type: t,
		Message: fmt.Sprintf("unexpected byte count 0x%02X or address 0x%04X",
			size, address),
	}
}
