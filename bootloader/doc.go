// Package bootloader moves memory images between the host and a ROM
// emulator over the page protocol.
//
// # Overview
//
// The Programmer drives a memory.Image window through a Transport one page
// at a time:
//   - ReadMemory pulls every page of the window into the image
//   - WriteMemory pushes every page of the window to the device
//   - Erase pushes a full image filled with 0xFF
//   - Verify reads the window back and compares it
//
// Every exchange is synchronous. Any transport read or write that moves a
// different number of bytes than the exchange requires aborts the whole
// operation. Pages are never retried, retrying is left to the caller.
//
// # Basic Usage
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//
//	img := memory.New()
//	img.Fill(0xFF)
//	if err := ihex.DecodeFile("firmware.hex", img.Store); err != nil {
//	    return err
//	}
//
//	origin, size, _ := img.Touched()
//	begin, length := bootloader.AlignWindow(origin, size)
//	if err := img.SetWindow(begin, length); err != nil {
//	    return err
//	}
//
//	prog := bootloader.New(port)
//	err = prog.WriteMemory(ctx, img)
//
// # Page Alignment
//
// Windows passed to the Programmer must start on a page boundary and span
// whole pages, otherwise ErrUnalignedWindow is returned. AlignWindow widens
// an arbitrary range, for example 0x10+0x50 becomes 0x00+0x80. Bytes inside
// the widened window that the record file did not set are sent as the
// image holds them, so images should be pre-filled.
//
// # Configuration Options
//
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithLogger(logger),
//	    bootloader.WithTimeout(500*time.Millisecond),
//	    bootloader.WithAckMode(protocol.AckChecksum),
//	    bootloader.WithVerifyAfterWrite(true),
//	)
//
// # Error Handling
//
// The package provides structured error types:
//   - SerialIOError: a transport read or write moved the wrong number of bytes
//   - ReplyError: the device reply has the right length but invalid content
//   - VerificationError: memory read back differs from the image
//
// Cancellation of the context is checked before every page.
package bootloader
