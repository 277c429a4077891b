package serial

import (
	"errors"
	"time"
)

// Port is an open serial device. Serial devices are not supported on
// Windows, so Open always fails and a Port is never usable.
type Port struct {
	name string
}

// Open reports that serial devices are unsupported on this platform.
func Open(name string, opts ...Option) (*Port, error) {
	return nil, &OpenError{Name: name, Err: errors.ErrUnsupported}
}

// Name returns the device path the port was opened with.
func (p *Port) Name() string {
	return p.name
}

func (p *Port) Write(b []byte) (int, error) {
	return 0, ErrClosed
}

func (p *Port) Read(b []byte, timeout time.Duration) (int, error) {
	return 0, ErrClosed
}

func (p *Port) SetLineControl(rts, dtr bool) error {
	return ErrClosed
}

func (p *Port) Purge() error {
	return ErrClosed
}

// Sleep pauses for d.
func (p *Port) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (p *Port) Close() error {
	return nil
}
