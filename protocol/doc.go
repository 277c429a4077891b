// Package protocol implements the page framing spoken by the ROM emulator
// bootloader.
//
// Device memory is moved in pages of PageSize bytes. Every exchange is a
// single request frame followed by a single reply frame, with no pipelining.
//
// # Frame Layout
//
// Frames are ASCII text:
//
//	[':'][ADDR_L][ADDR_H][DATA...]['\n']
//
// Where:
//   - ADDR_L, ADDR_H = low and high byte of the page address, two uppercase hex digits each
//   - DATA = PageSize bytes, two uppercase hex digits each, present only when a page is carried
//
// # Exchanges
//
// Read page:
//
//	host   -> device  [':'][ADDR_L][ADDR_H]['\n']                  ReadRequestSize bytes
//	device -> host    [':'][ADDR_L][ADDR_H][DATA...]['\n']         ReadReplySize bytes
//
// Write page:
//
//	host   -> device  [':'][ADDR_L][ADDR_H][DATA...]['\n']         WriteRequestSize bytes
//	device -> host    acknowledgement                             AckMode.ReplySize() bytes
//
// # Acknowledgement Modes
//
// AckEcho is the canonical mode: the device echoes the request header and
// the host checks only the length of the echo. AckChecksum is an alternate
// framing used by some firmware revisions, where the device replies with the
// single byte PageChecksum(page). The mode is a configuration choice and is
// never negotiated.
//
// # Builders and Parsers
//
// Hosts use BuildReadRequest, BuildWriteRequest and ParseReadReply:
//
//	req := protocol.BuildReadRequest(0x0040)
//	// ... send req, receive reply ...
//	page := make([]byte, protocol.PageSize)
//	if err := protocol.ParseReadReply(reply, page); err != nil {
//	    return err
//	}
//
// Devices use ParseRequest, BuildReadReply and BuildAck.
//
// Malformed frames are reported as *FrameError.
package protocol
