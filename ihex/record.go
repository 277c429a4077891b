package ihex

import "fmt"

// RecordType identifies the kind of a record.
type RecordType byte

// Record types understood by the codec.
const (
	Data                  RecordType = 0x00
	EndOfFile             RecordType = 0x01
	ExtendedLinearAddress RecordType = 0x04
	StartLinearAddress    RecordType = 0x05
)

// Field widths in hex digits.
const (
	sizeDigits     = 2
	addressDigits  = 4
	typeDigits     = 2
	byteDigits     = 2
	checksumDigits = 2
	baseDigits     = 4
	startDigits    = 8
)

// MaxRecordWidth is the largest number of data bytes a record can carry.
const MaxRecordWidth = 0xFF

// DefaultRecordWidth is the record width commonly used for dumps.
const DefaultRecordWidth = 16

func (t RecordType) String() string {
	switch t {
	case Data:
		return "data"
	case EndOfFile:
		return "end of file"
	case ExtendedLinearAddress:
		return "extended linear address"
	case StartLinearAddress:
		return "start linear address"
	default:
		return fmt.Sprintf("unknown (0x%02X)", byte(t))
	}
}

// Record is a single line of a record file.
type Record struct {
	Type    RecordType
	Address uint16
	Data    []byte
}

// Checksum returns the byte that makes the record sum to zero mod 256.
func (r Record) Checksum() byte {
	sum := byte(len(r.Data)) + byte(r.Address>>8) + byte(r.Address) + byte(r.Type)
	for _, b := range r.Data {
		sum += b
	}
	return -sum
}

// AppendText appends the textual form of the record, without line terminator.
func (r Record) AppendText(dst []byte) []byte {
	dst = append(dst, ':')
	dst = appendHex(dst, uint32(len(r.Data)), sizeDigits)
	dst = appendHex(dst, uint32(r.Address), addressDigits)
	dst = appendHex(dst, uint32(r.Type), typeDigits)
	for _, b := range r.Data {
		dst = appendHex(dst, uint32(b), byteDigits)
	}
	return appendHex(dst, uint32(r.Checksum()), checksumDigits)
}

func (r Record) String() string {
	return string(r.AppendText(nil))
}
