package protocol

import "fmt"

const upperHex = "0123456789ABCDEF"

// BuildReadRequest constructs a read-page request for the page at address.
//
// Frame structure:
//
//	[':'][ADDR_L][ADDR_H]['\n']
func BuildReadRequest(address uint32) []byte {
	frame := make([]byte, 0, ReadRequestSize)
	frame = appendHead(frame, address)
	return append(frame, EndOfFrame)
}

// BuildWriteRequest constructs a write-page request carrying page.
//
// Frame structure:
//
//	[':'][ADDR_L][ADDR_H][DATA(2*PageSize)]['\n']
func BuildWriteRequest(address uint32, page []byte) ([]byte, error) {
	if len(page) != PageSize {
		return nil, fmt.Errorf("write request: %w, got %d", ErrPageSize, len(page))
	}

	frame := make([]byte, 0, WriteRequestSize)
	frame = appendHead(frame, address)
	for _, b := range page {
		frame = appendByte(frame, b)
	}
	return append(frame, EndOfFrame), nil
}

// BuildReadReply constructs the device reply to a read-page request.
// The layout is identical to a write request.
func BuildReadReply(address uint32, page []byte) ([]byte, error) {
	return BuildWriteRequest(address, page)
}

// BuildAck constructs the acknowledgement of a write-page request in the
// given mode.
func BuildAck(mode AckMode, address uint32, page []byte) []byte {
	if mode == AckChecksum {
		return []byte{PageChecksum(page)}
	}
	return BuildReadRequest(address)
}

// ParseReadReply decodes the data region of a read-page reply into page.
// The header is not interpreted: the device echoes it and its content
// carries no information the host does not already have.
func ParseReadReply(frame, page []byte) error {
	if len(page) != PageSize {
		return fmt.Errorf("read reply: %w, got %d", ErrPageSize, len(page))
	}
	if len(frame) != ReadReplySize {
		return &FrameError{
			Region: "length",
			Err:    fmt.Errorf("got %d bytes, expected %d", len(frame), ReadReplySize),
		}
	}
	return decodeData("data", frame[HeadSize:HeadSize+DataSize], page, HeadSize)
}

// ParseRequest decodes a request frame as received by a device. It returns
// the page address and, for a write request, the carried page. A read
// request returns a nil page.
func ParseRequest(frame []byte) (address uint32, page []byte, err error) {
	switch len(frame) {
	case ReadRequestSize, WriteRequestSize:
	default:
		return 0, nil, &FrameError{
			Region: "length",
			Err: fmt.Errorf("got %d bytes, expected %d or %d",
				len(frame), ReadRequestSize, WriteRequestSize),
		}
	}

	if frame[0] != StartOfFrame {
		return 0, nil, &FrameError{Region: "start", Err: fmt.Errorf("got %q", frame[0])}
	}
	last := len(frame) - 1
	if frame[last] != EndOfFrame {
		return 0, nil, &FrameError{Region: "end", Offset: last, Err: fmt.Errorf("got %q", frame[last])}
	}

	var addr [2]byte
	if err := decodeData("address", frame[1:HeadSize], addr[:], 1); err != nil {
		return 0, nil, err
	}
	address = uint32(addr[0]) | uint32(addr[1])<<8

	if len(frame) == WriteRequestSize {
		page = make([]byte, PageSize)
		if err := decodeData("data", frame[HeadSize:last], page, HeadSize); err != nil {
			return 0, nil, err
		}
	}
	return address, page, nil
}

// appendHead appends the start marker and the low 16 bits of address,
// low byte first.
func appendHead(dst []byte, address uint32) []byte {
	dst = append(dst, StartOfFrame)
	dst = appendByte(dst, byte(address))
	return appendByte(dst, byte(address>>8))
}

func appendByte(dst []byte, b byte) []byte {
	return append(dst, upperHex[b>>4], upperHex[b&0x0F])
}

// decodeData decodes pairs of hex digits from src into dst. region and
// offset locate src within the frame for error reporting.
func decodeData(region string, src, dst []byte, offset int) error {
	for i := range dst {
		hi, ok1 := fromHex(src[2*i])
		lo, ok2 := fromHex(src[2*i+1])
		if !ok1 || !ok2 {
			return &FrameError{Region: region, Offset: offset + 2*i, Err: errNotHex}
		}
		dst[i] = hi<<4 | lo
	}
	return nil
}

func fromHex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	default:
		return 0, false
	}
}
