package protocol

import "fmt"

// AckMode selects how the device acknowledges a write-page request.
type AckMode int

const (
	// AckEcho expects the device to echo the request header. Only the
	// length of the echo is checked, its content is discarded.
	AckEcho AckMode = iota

	// AckChecksum expects a single byte equal to the page checksum.
	AckChecksum
)

// ReplySize returns the number of bytes the device sends to acknowledge a write.
func (m AckMode) ReplySize() int {
	if m == AckChecksum {
		return ChecksumReplySize
	}
	return EchoReplySize
}

func (m AckMode) String() string {
	switch m {
	case AckEcho:
		return "echo"
	case AckChecksum:
		return "checksum"
	default:
		return fmt.Sprintf("AckMode(%d)", int(m))
	}
}

// ParseAckMode returns the mode named by s ("echo" or "checksum").
func ParseAckMode(s string) (AckMode, error) {
	switch s {
	case "echo":
		return AckEcho, nil
	case "checksum":
		return AckChecksum, nil
	default:
		return 0, fmt.Errorf("unknown acknowledgement mode %q, expected echo or checksum", s)
	}
}
