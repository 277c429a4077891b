// Package serial provides the bootloader transport on a POSIX serial port.
//
// The port is opened in raw mode at 115200 baud with even parity, which is
// the line setting of the ROM emulator bootloader:
//
//	port, err := serial.Open("/dev/ttyUSB0")
//	if err != nil {
//	    return err
//	}
//	defer port.Close()
//
//	prog := bootloader.New(port)
//
// Read blocks until the whole buffer is filled or the timeout elapses. A
// timeout returns the bytes received so far together with ErrTimeout.
package serial
