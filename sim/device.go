package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/rksdna/emrom/protocol"
)

// ErrTimeout is returned by Read when no complete reply is pending.
var ErrTimeout = errors.New("simulated device did not reply in time")

// ErrClosed is returned by operations on a closed device.
var ErrClosed = errors.New("simulated device is closed")

// FaultKind selects how an exchange misbehaves.
type FaultKind int

const (
	// ShortWrite accepts only half of the request
	ShortWrite FaultKind = iota + 1

	// ShortReply sends only half of the reply
	ShortReply

	// CorruptReply replaces part of the reply content while keeping its length
	CorruptReply

	// NoReply accepts the request and never answers
	NoReply
)

func (k FaultKind) String() string {
	switch k {
	case ShortWrite:
		return "short write"
	case ShortReply:
		return "short reply"
	case CorruptReply:
		return "corrupt reply"
	case NoReply:
		return "no reply"
	default:
		return fmt.Sprintf("FaultKind(%d)", int(k))
	}
}

// Exchange records one request received by the device.
type Exchange struct {
	Address uint32
	Write   bool
}

// Device is a simulated ROM emulator with 64 KiB of memory.
//
// Device is not safe for concurrent use.
type Device struct {
	memory    []byte
	ackMode   protocol.AckMode
	latency   time.Duration
	faults    map[int]FaultKind
	exchanges []Exchange
	pending   []byte
	closed    bool

	rts, dtr bool
	purges   int
}

// Option configures a Device.
type Option func(*Device)

// WithAckMode selects how written pages are acknowledged. Default is
// protocol.AckEcho.
func WithAckMode(mode protocol.AckMode) Option {
	return func(d *Device) {
		d.ackMode = mode
	}
}

// WithLatency delays every reply by d.
func WithLatency(d time.Duration) Option {
	return func(dev *Device) {
		dev.latency = d
	}
}

// WithFault makes the exchange with the given zero-based index misbehave.
func WithFault(exchange int, kind FaultKind) Option {
	return func(d *Device) {
		d.faults[exchange] = kind
	}
}

// WithMemory preloads the device memory. Bytes past 64 KiB are ignored.
func WithMemory(data []byte) Option {
	return func(d *Device) {
		copy(d.memory, data)
	}
}

// New creates a device whose memory reads as zero.
func New(opts ...Option) *Device {
	d := &Device{
		memory:  make([]byte, protocol.AddressSpace),
		ackMode: protocol.AckEcho,
		faults:  make(map[int]FaultKind),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Write receives one request frame and prepares its reply.
func (d *Device) Write(p []byte) (int, error) {
	if d.closed {
		return 0, ErrClosed
	}

	index := len(d.exchanges)
	fault := d.faults[index]
	d.pending = nil

	if fault == ShortWrite {
		d.exchanges = append(d.exchanges, Exchange{})
		return len(p) / 2, nil
	}

	address, page, err := protocol.ParseRequest(p)
	if err != nil {
		// a real device ignores what it cannot parse and stays silent
		return len(p), nil
	}
	d.exchanges = append(d.exchanges, Exchange{Address: address, Write: page != nil})

	if address%protocol.PageSize != 0 {
		return len(p), nil
	}
	memPage := d.memory[address : address+protocol.PageSize]

	var reply []byte
	if page != nil {
		copy(memPage, page)
		reply = protocol.BuildAck(d.ackMode, address, page)
	} else {
		reply, err = protocol.BuildReadReply(address, memPage)
		if err != nil {
			return len(p), err
		}
	}

	switch fault {
	case ShortReply:
		reply = reply[:len(reply)/2]
	case CorruptReply:
		reply = corrupt(reply)
	case NoReply:
		reply = nil
	}
	d.pending = reply

	return len(p), nil
}

// Read returns pending reply bytes. If fewer than len(p) bytes are pending
// it returns what there is together with ErrTimeout.
func (d *Device) Read(p []byte, timeout time.Duration) (int, error) {
	if d.closed {
		return 0, ErrClosed
	}
	if d.latency > 0 {
		time.Sleep(min(d.latency, timeout))
	}

	n := copy(p, d.pending)
	d.pending = d.pending[n:]
	if n < len(p) || d.latency > timeout {
		return n, ErrTimeout
	}
	return n, nil
}

// SetLineControl records the state of the modem lines.
func (d *Device) SetLineControl(rts, dtr bool) error {
	if d.closed {
		return ErrClosed
	}
	d.rts, d.dtr = rts, dtr
	return nil
}

// LineControl returns the last RTS and DTR state set.
func (d *Device) LineControl() (rts, dtr bool) {
	return d.rts, d.dtr
}

// Purge discards any pending reply.
func (d *Device) Purge() error {
	if d.closed {
		return ErrClosed
	}
	d.pending = nil
	d.purges++
	return nil
}

// Purges returns how many times Purge was called.
func (d *Device) Purges() int {
	return d.purges
}

// Sleep does nothing, the simulated device settles instantly.
func (d *Device) Sleep(time.Duration) {}

// Close marks the device closed. Closing twice is a no-op.
func (d *Device) Close() error {
	d.closed = true
	d.pending = nil
	return nil
}

// Closed reports whether Close was called.
func (d *Device) Closed() bool {
	return d.closed
}

// Memory returns the device memory. Changes through the slice are visible
// to subsequent reads.
func (d *Device) Memory() []byte {
	return d.memory
}

// Exchanges returns the requests received so far, in order.
func (d *Device) Exchanges() []Exchange {
	return d.exchanges
}

// Addresses returns the page addresses of the requests received so far.
func (d *Device) Addresses() []uint32 {
	addresses := make([]uint32, len(d.exchanges))
	for i, e := range d.exchanges {
		addresses[i] = e.Address
	}
	return addresses
}

// ResetExchanges forgets the recorded requests. Fault indexes count from
// the reset.
func (d *Device) ResetExchanges() {
	d.exchanges = nil
}

// corrupt returns a copy of reply with its last content byte damaged.
func corrupt(reply []byte) []byte {
	damaged := append([]byte(nil), reply...)
	if len(damaged) == protocol.ChecksumReplySize {
		damaged[0] ^= 0xFF
		return damaged
	}
	// the character before the end marker is a hex digit in every frame
	damaged[len(damaged)-2] = 'G'
	return damaged
}
