package ihex

import (
	"encoding/hex"
	"fmt"
)

const upperHex = "0123456789ABCDEF"

// appendHex appends v as exactly digits uppercase hex digits.
func appendHex(dst []byte, v uint32, digits int) []byte {
	for shift := (digits - 1) * 4; shift >= 0; shift -= 4 {
		dst = append(dst, upperHex[(v>>uint(shift))&0xF])
	}
	return dst
}

// parseHex decodes a fixed-width field of an even number of hex digits.
// Any character outside [0-9A-Fa-f] is rejected.
func parseHex(field []byte) (uint32, error) {
	if len(field) == 0 || len(field)%2 != 0 || len(field) > 8 {
		return 0, fmt.Errorf("invalid field width %d", len(field))
	}
	var buf [4]byte
	n, err := hex.Decode(buf[:], field)
	if err != nil {
		return 0, err
	}
	var v uint32
	for _, b := range buf[:n] {
		v = v<<8 | uint32(b)
	}
	return v, nil
}
