package protocol

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func testPage(seed byte) []byte {
	page := make([]byte, PageSize)
	for i := range page {
		page[i] = seed + byte(i)
	}
	return page
}

func TestFrameSizes(t *testing.T) {
	assert.Equal(t, 5, HeadSize)
	assert.Equal(t, 128, DataSize)
	assert.Equal(t, 6, ReadRequestSize)
	assert.Equal(t, 134, ReadReplySize)
	assert.Equal(t, 134, WriteRequestSize)
	assert.Equal(t, 6, EchoReplySize)
}

func TestBuildReadRequest(t *testing.T) {
	tests := []struct {
		name    string
		address uint32
		want    string
	}{
		{"first page", 0x0000, ":0000\n"},
		{"low byte first", 0x1240, ":4012\n"},
		{"last page", 0xFFC0, ":C0FF\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := BuildReadRequest(tt.address)
			assert.Equal(t, tt.want, string(frame))
			assert.Len(t, frame, ReadRequestSize)
		})
	}
}

func TestBuildWriteRequest(t *testing.T) {
	page := bytes.Repeat([]byte{0xA5}, PageSize)

	frame, err := BuildWriteRequest(0x0080, page)
	assert.NoError(t, err)
	assert.Len(t, frame, WriteRequestSize)
	assert.Equal(t, ":8000"+strings.Repeat("A5", PageSize)+"\n", string(frame))

	_, err = BuildWriteRequest(0x0080, page[:PageSize-1])
	assert.True(t, errors.Is(err, ErrPageSize))
}

func TestParseReadReply(t *testing.T) {
	want := testPage(0xF0)
	frame, err := BuildReadReply(0x0100, want)
	assert.NoError(t, err)

	page := make([]byte, PageSize)
	assert.NoError(t, ParseReadReply(frame, page))
	assert.Equal(t, want, page)
}

func TestParseReadReplyLowercase(t *testing.T) {
	frame := []byte(":0001" + strings.Repeat("ab", PageSize) + "\n")

	page := make([]byte, PageSize)
	assert.NoError(t, ParseReadReply(frame, page))
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, PageSize), page)
}

func TestParseReadReplyErrors(t *testing.T) {
	valid, err := BuildReadReply(0, testPage(0))
	assert.NoError(t, err)

	corrupt := bytes.Clone(valid)
	corrupt[HeadSize+3] = 'G'

	tests := []struct {
		name       string
		frame      []byte
		wantRegion string
		wantOffset int
	}{
		{"too short", valid[:ReadReplySize-1], "length", 0},
		{"too long", append(bytes.Clone(valid), '\n'), "length", 0},
		{"non-hex data", corrupt, "data", HeadSize + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := make([]byte, PageSize)
			err := ParseReadReply(tt.frame, page)

			var frameErr *FrameError
			assert.True(t, errors.As(err, &frameErr))
			assert.Equal(t, tt.wantRegion, frameErr.Region)
			assert.Equal(t, tt.wantOffset, frameErr.Offset)
			assert.True(t, IsFrameError(err))
		})
	}
}

func TestParseRequest(t *testing.T) {
	address, page, err := ParseRequest(BuildReadRequest(0x3FC0))
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x3FC0), address)
	assert.Nil(t, page)

	want := testPage(0x10)
	frame, err := BuildWriteRequest(0xFF40, want)
	assert.NoError(t, err)

	address, page, err = ParseRequest(frame)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xFF40), address)
	assert.Equal(t, want, page)
}

func TestParseRequestErrors(t *testing.T) {
	tests := []struct {
		name       string
		frame      string
		wantRegion string
	}{
		{"empty", "", "length"},
		{"wrong length", ":000\n", "length"},
		{"missing start", "#0000\n", "start"},
		{"missing end", ":0000\r", "end"},
		{"bad address", ":00X0\n", "address"},
		{"bad data", ":0000" + strings.Repeat("0", DataSize-1) + "Z\n", "data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseRequest([]byte(tt.frame))

			var frameErr *FrameError
			assert.True(t, errors.As(err, &frameErr))
			assert.Equal(t, tt.wantRegion, frameErr.Region)
		})
	}
}

func TestBuildAck(t *testing.T) {
	page := testPage(1)

	assert.Equal(t, ":4000\n", string(BuildAck(AckEcho, 0x40, page)))
	assert.Len(t, BuildAck(AckEcho, 0x40, page), AckEcho.ReplySize())

	ack := BuildAck(AckChecksum, 0x40, page)
	assert.Len(t, ack, AckChecksum.ReplySize())
	assert.Equal(t, PageChecksum(page), ack[0])
}
