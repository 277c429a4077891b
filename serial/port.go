//go:build !windows

package serial

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/term"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Port is an open serial device.
//
// Port is not safe for concurrent use.
type Port struct {
	name string
	term *term.Term

	// read timeout currently programmed into the line discipline
	timeout time.Duration
}

// Open opens the serial device at name in raw mode.
//
// Example:
//
//	port, err := serial.Open("/dev/ttyUSB0", serial.WithBaud(57600))
func Open(name string, opts ...Option) (*Port, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	t, err := term.Open(name, term.RawMode, term.Speed(cfg.baud))
	if err != nil {
		return nil, &OpenError{Name: name, Err: err}
	}

	// raw mode clears the parity bits, so parity is applied afterwards
	if err := setParity(name, cfg.evenParity); err != nil {
		_ = t.Close()
		return nil, &OpenError{Name: name, Err: err}
	}

	return &Port{
		name: name,
		term: t,
	}, nil
}

// Name returns the device path the port was opened with.
func (p *Port) Name() string {
	return p.name
}

// Write sends all of b. A partial write is reported with an error.
func (p *Port) Write(b []byte) (int, error) {
	if p.term == nil {
		return 0, ErrClosed
	}
	return p.term.Write(b)
}

// Read fills b completely. If timeout elapses first it returns the number
// of bytes received so far and ErrTimeout.
func (p *Port) Read(b []byte, timeout time.Duration) (int, error) {
	if p.term == nil {
		return 0, ErrClosed
	}

	deadline := time.Now().Add(timeout)
	total := 0
	for total < len(b) {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return total, ErrTimeout
		}
		if err := p.setTimeout(remaining); err != nil {
			return total, fmt.Errorf("set read timeout: %w", err)
		}

		n, err := p.term.Read(b[total:])
		total += n
		if errors.Is(err, io.EOF) {
			// the line discipline timer expired without data
			return total, ErrTimeout
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SetLineControl drives the RTS and DTR modem lines.
func (p *Port) SetLineControl(rts, dtr bool) error {
	if p.term == nil {
		return ErrClosed
	}
	if err := p.term.SetRTS(rts); err != nil {
		return fmt.Errorf("set RTS: %w", err)
	}
	if err := p.term.SetDTR(dtr); err != nil {
		return fmt.Errorf("set DTR: %w", err)
	}
	return nil
}

// Purge discards data received but not read and data written but not
// transmitted.
func (p *Port) Purge() error {
	if p.term == nil {
		return ErrClosed
	}
	return p.term.Flush()
}

// Sleep pauses for d. It lets line control changes settle on the device.
func (p *Port) Sleep(d time.Duration) {
	time.Sleep(d)
}

// Close closes the device. Closing a closed port is a no-op.
func (p *Port) Close() error {
	if p.term == nil {
		return nil
	}
	err := p.term.Close()
	p.term = nil
	return err
}

// setTimeout programs the inter-read timeout, skipping the system call when
// it is unchanged. The line discipline counts in tenths of a second.
func (p *Port) setTimeout(d time.Duration) error {
	d = d.Round(100 * time.Millisecond)
	if d < 100*time.Millisecond {
		d = 100 * time.Millisecond
	}
	if d == p.timeout {
		return nil
	}
	if err := p.term.SetReadTimeout(d); err != nil {
		return err
	}
	p.timeout = d
	return nil
}

// setParity edits the terminal attributes through a second descriptor on
// the same device. Attributes belong to the device, not the descriptor.
// The modem status lines are ignored and parity errors are dropped.
func setParity(name string, even bool) error {
	f, err := os.OpenFile(name, os.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	var attr unix.Termios
	if err := termios.Tcgetattr(f.Fd(), &attr); err != nil {
		return fmt.Errorf("get attributes: %w", err)
	}

	attr.Cflag &^= unix.PARODD | unix.CSIZE
	attr.Cflag |= unix.CS8 | unix.CLOCAL | unix.CREAD
	attr.Iflag |= unix.IGNBRK | unix.IGNPAR
	if even {
		attr.Cflag |= unix.PARENB
	} else {
		attr.Cflag &^= unix.PARENB
	}

	if err := termios.Tcsetattr(f.Fd(), termios.TCSANOW, &attr); err != nil {
		return fmt.Errorf("set parity: %w", err)
	}
	return nil
}
