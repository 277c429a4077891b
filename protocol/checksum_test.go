package protocol

import (
	"bytes"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestPageChecksum(t *testing.T) {
	tests := []struct {
		name     string
		page     []byte
		expected byte
	}{
		{
			name:     "empty",
			page:     []byte{},
			expected: 0x00,
		},
		{
			name:     "multiple bytes",
			page:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0x0A,
		},
		{
			name:     "erased page wraps",
			page:     bytes.Repeat([]byte{0xFF}, PageSize),
			expected: 0xC0, // 64 * 0xFF mod 256
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageChecksum(tt.page))
		})
	}
}

func TestAckMode(t *testing.T) {
	tests := []struct {
		input    string
		expected AckMode
		size     int
	}{
		{"echo", AckEcho, EchoReplySize},
		{"checksum", AckChecksum, ChecksumReplySize},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseAckMode(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
			assert.Equal(t, tt.input, mode.String())
			assert.Equal(t, tt.size, mode.ReplySize())
		})
	}

	_, err := ParseAckMode("crc")
	assert.ErrorContains(t, err, "unknown acknowledgement mode")
}
