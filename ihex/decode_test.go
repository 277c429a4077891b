package ihex

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/rksdna/emrom/memory"
)

type write struct {
	address uint32
	value   byte
}

// recorder collects every byte delivered to the sink.
type recorder struct {
	writes []write
}

func (r *recorder) sink(address uint32, value byte) error {
	r.writes = append(r.writes, write{address, value})
	return nil
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []write
	}{
		{
			name:  "single data record",
			input: ":0401000001020304F1\n:00000001FF\n",
			want:  []write{{0x100, 1}, {0x101, 2}, {0x102, 3}, {0x103, 4}},
		},
		{
			name:  "lowercase hex digits",
			input: ":02001000aabb89\n:00000001ff\n",
			want:  []write{{0x10, 0xAA}, {0x11, 0xBB}},
		},
		{
			name:  "crlf line endings and blank lines",
			input: ":02001000AABB89\r\n\r\n\n:00000001FF\r\n",
			want:  []write{{0x10, 0xAA}, {0x11, 0xBB}},
		},
		{
			name:  "extended linear address sets the base",
			input: ":020000040001F9\n:0401000001020304F1\n:00000001FF\n",
			want:  []write{{0x10100, 1}, {0x10101, 2}, {0x10102, 3}, {0x10103, 4}},
		},
		{
			name:  "start linear address leaves base untouched",
			input: ":0400000500000123D3\n:02001000AABB89\n:00000001FF\n",
			want:  []write{{0x10, 0xAA}, {0x11, 0xBB}},
		},
		{
			name:  "start linear address after extended address keeps the extended base",
			input: ":020000040001F9\n:0400000500000123D3\n:02001000AABB89\n:00000001FF\n",
			want:  []write{{0x10010, 0xAA}, {0x10011, 0xBB}},
		},
		{
			name:  "end of file stops decoding",
			input: ":02001000AABB89\n:00000001FF\n:0200400011228B\nnot a record\n",
			want:  []write{{0x10, 0xAA}, {0x11, 0xBB}},
		},
		{
			name:  "missing end of file record",
			input: ":02001000AABB89\n",
			want:  []write{{0x10, 0xAA}, {0x11, 0xBB}},
		},
		{
			name:  "empty input",
			input: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			err := Decode(strings.NewReader(tt.input), rec.sink)
			assert.NoError(t, err)
			assert.Equal(t, len(tt.want), len(rec.writes))
			for i, w := range tt.want {
				assert.Equal(t, w, rec.writes[i])
			}
		})
	}
}

func TestDecodeChecksumError(t *testing.T) {
	// the last checksum digit of the second record is corrupted
	input := ":02001000AABB89\n:0401000001020304F2\n:0200400011228B\n:00000001FF\n"

	var rec recorder
	err := Decode(strings.NewReader(input), rec.sink)

	var checksumErr *ChecksumError
	assert.True(t, errors.As(err, &checksumErr))
	assert.Equal(t, 2, checksumErr.Line)
	assert.Equal(t, byte(0xF1), checksumErr.Expected)
	assert.Equal(t, byte(0xF2), checksumErr.Actual)

	// bytes of the failing record were delivered before validation,
	// nothing after it was
	assert.Equal(t, 6, len(rec.writes))
	assert.Equal(t, write{0x103, 4}, rec.writes[5])
}

func TestDecodeRecordFormatError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType RecordType
	}{
		{"end of file with byte count", ":0100000100FE\n", EndOfFile},
		{"end of file with address", ":00000101FE\n", EndOfFile},
		{"extended address with byte count 3", ":03000004010100F7\n", ExtendedLinearAddress},
		{"extended address with address", ":020001040101F7\n", ExtendedLinearAddress},
		{"start address with byte count 3", ":03000005010101F5\n", StartLinearAddress},
		{"start address with address", ":0400010501010101F2\n", StartLinearAddress},
		{"unsupported type 2", ":020000021234B6\n", RecordType(0x02)},
		{"unsupported type 3", ":0400000300000000F9\n", RecordType(0x03)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			err := Decode(strings.NewReader(tt.input), rec.sink)

			var recordErr *RecordFormatError
			assert.True(t, errors.As(err, &recordErr))
			assert.Equal(t, tt.wantType, recordErr.Type)
			assert.Equal(t, 1, recordErr.Line)
		})
	}
}

func TestDecodeIOFormatError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
	}{
		{"missing colon", "00000001FF\n", 1},
		{"garbage line", ":02001000AABB89\nhello\n", 2},
		{"non-hex in byte count", ":0G000001FF\n", 1},
		{"non-hex in address", ":00X00001FF\n", 1},
		{"non-hex in data", ":02001000AAZZ89\n", 1},
		{"non-hex in checksum", ":00000001F?\n", 1},
		{"sign character in field", ":+2001000AABB89\n", 1},
		{"truncated data", ":0401000001020304\n", 1},
		{"truncated at end of input", ":04010000010203", 1},
		{"short extended address", ":02000004001\n", 1},
		{"short start address", ":0400000500000\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec recorder
			err := Decode(strings.NewReader(tt.input), rec.sink)

			var formatErr *IOFormatError
			assert.True(t, errors.As(err, &formatErr))
			assert.Equal(t, tt.wantLine, formatErr.Line)
		})
	}
}

func TestDecodeMemoryRangeError(t *testing.T) {
	img := memory.New()
	assert.NoError(t, img.SetWindow(0, 0x12))

	// the third byte of the record falls outside the window
	input := ":0400100001020304E2\n:00000001FF\n"
	err := Decode(strings.NewReader(input), img.Store)

	var rangeErr *MemoryRangeError
	assert.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, uint32(0x12), rangeErr.Address)

	var imageErr *memory.RangeError
	assert.True(t, errors.As(err, &imageErr))

	// bytes accepted before the rejection stand
	v, err := img.Load(0x11)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x02), v)
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.hex")
	assert.NoError(t, os.WriteFile(path, []byte(":0200400011228B\n:00000001FF\n"), 0o644))

	img := memory.New()
	assert.NoError(t, DecodeFile(path, img.Store))

	origin, size, ok := img.Touched()
	assert.True(t, ok)
	assert.Equal(t, uint32(0x40), origin)
	assert.Equal(t, uint32(2), size)
}

func TestDecodeFileMissing(t *testing.T) {
	err := DecodeFile(filepath.Join(t.TempDir(), "missing.hex"), func(uint32, byte) error { return nil })

	var fileErr *FileError
	assert.True(t, errors.As(err, &fileErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
