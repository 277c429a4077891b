// Package ihex reads and writes the line-oriented hex record format used for
// device memory images.
//
// # Record Format
//
// Every record is one line of ASCII text:
//
//	:SSAAAATT[DD...]CC
//	  SS   = number of data bytes (2 hex digits)
//	  AAAA = 16-bit record address (4 hex digits)
//	  TT   = record type (2 hex digits)
//	  DD   = data bytes (2 hex digits each)
//	  CC   = checksum (2 hex digits)
//
// The checksum makes the sum of all byte-valued fields, taken mod 256, equal
// to zero. The address is split into its high and low byte for this purpose.
//
// Supported record types:
//
//	0x00 Data                     SS bytes at base+AAAA
//	0x01 End Of File              SS=00, AAAA=0000
//	0x04 Extended Linear Address  SS=02, AAAA=0000, base = value << 16
//	0x05 Start Linear Address     SS=04, AAAA=0000, checked and ignored
//
// # Decoding
//
// Decode delivers every data byte to a Sink as soon as it is parsed:
//
//	img := memory.New()
//	if err := ihex.DecodeFile("firmware.hex", img.Store); err != nil {
//	    log.Fatal(err)
//	}
//
// Decoding stops at the first error. Bytes already delivered to the sink are
// not withdrawn, so a checksum failure is reported after the data bytes of
// the failing record have been stored.
//
// # Encoding
//
// Encode walks an address range, pulls every byte from a Source and writes
// Data records no wider than the requested width. A record never crosses a
// 64 KiB boundary; an Extended Linear Address record is emitted whenever the
// upper 16 bits of the address change. The output always ends with exactly
// one End Of File record.
//
//	err := ihex.EncodeFile("dump.hex", img.Load, 0, memory.Capacity, 16)
//
// # Error Handling
//
// All errors are pointer types carrying the line number:
//   - FileError: the file cannot be opened or created
//   - IOFormatError: malformed hex digits, field widths or line structure
//   - RecordFormatError: record type specific constraints violated
//   - ChecksumError: the record checksum does not sum to zero
//   - MemoryRangeError: the sink or source rejected an address
package ihex
