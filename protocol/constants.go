package protocol

// PageSize is the number of memory bytes moved by one page exchange.
const PageSize = 0x40

// AddressSpace is the size of the device memory in bytes.
const AddressSpace = 0x10000

// Frame markers.
const (
	// StartOfFrame opens every frame
	StartOfFrame = ':'

	// EndOfFrame terminates every frame
	EndOfFrame = '\n'
)

// Frame region sizes in bytes.
//
// A frame is laid out as:
//
//	[':'][ADDR_L hex(2)][ADDR_H hex(2)][DATA hex(2*PageSize)]['\n']
//
// where the DATA region is present only when a page is carried.
const (
	// HeadSize covers the start marker and the two address bytes
	HeadSize = 1 + 2*2

	// DataSize covers PageSize bytes at two hex digits each
	DataSize = 2 * PageSize

	// TailSize covers the end marker
	TailSize = 1
)

// Exchange sizes in bytes.
const (
	// ReadRequestSize is the length of a read-page request (header only)
	ReadRequestSize = HeadSize + TailSize

	// ReadReplySize is the length of the device reply to a read-page request
	ReadReplySize = HeadSize + DataSize + TailSize

	// WriteRequestSize is the length of a write-page request
	WriteRequestSize = HeadSize + DataSize + TailSize

	// EchoReplySize is the length of the header echo acknowledging a write
	EchoReplySize = HeadSize + TailSize

	// ChecksumReplySize is the length of the checksum byte acknowledging a write
	ChecksumReplySize = 1
)
