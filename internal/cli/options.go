package cli

import (
	"fmt"
	"time"

	"github.com/rksdna/emrom/bootloader"
	"github.com/rksdna/emrom/ihex"
	"github.com/rksdna/emrom/protocol"
	"github.com/rksdna/emrom/serial"
)

// Options holds the command line flags.
type Options struct {
	Baud    int
	Timeout time.Duration
	Width   int
	Fill    uint8
	Ack     string
	Verify  bool
	Retries int
	Reset   bool

	Debug bool
	Quiet bool
}

// DefaultOptions returns the flag defaults.
func DefaultOptions() Options {
	return Options{
		Baud:    serial.DefaultBaud,
		Timeout: bootloader.DefaultTimeout,
		Width:   ihex.DefaultRecordWidth,
		Fill:    0xFF,
		Ack:     protocol.AckEcho.String(),
	}
}

// ackMode returns the parsed acknowledgement mode.
func (o Options) ackMode() (protocol.AckMode, error) {
	return protocol.ParseAckMode(o.Ack)
}

// validate checks option values that the flag parser cannot.
func (o Options) validate() error {
	if o.Baud <= 0 {
		return &UsageError{msg: fmt.Sprintf("invalid baud rate %d", o.Baud)}
	}
	if o.Timeout <= 0 {
		return &UsageError{msg: fmt.Sprintf("invalid timeout %s", o.Timeout)}
	}
	if o.Width < 1 || o.Width > ihex.MaxRecordWidth {
		return &UsageError{msg: fmt.Sprintf("record width must be 1-%d, got %d", ihex.MaxRecordWidth, o.Width)}
	}
	if o.Retries < 0 {
		return &UsageError{msg: fmt.Sprintf("invalid retry count %d", o.Retries)}
	}
	if _, err := o.ackMode(); err != nil {
		return &UsageError{msg: err.Error()}
	}
	return nil
}
