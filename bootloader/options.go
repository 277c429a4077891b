package bootloader

import (
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/rksdna/emrom/protocol"
)

// DefaultTimeout is the time allowed for the device to send a complete reply.
const DefaultTimeout = 250 * time.Millisecond

// Config holds the programmer configuration.
type Config struct {
	// ProgressCallback is called after every page (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger *log.Logger

	// Timeout bounds every reply read from the transport
	Timeout time.Duration

	// AckMode selects how the device acknowledges written pages
	AckMode protocol.AckMode

	// VerifyAfterWrite reads every written page back and compares it
	VerifyAfterWrite bool
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Timeout: DefaultTimeout,
		AckMode: protocol.AckEcho,
	}
}

// Option is a functional option for configuring the Programmer.
type Option func(*Config)

// WithProgressCallback sets a callback function to track transfer progress.
//
// Example:
//
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(func(p bootloader.Progress) {
//	        fmt.Print(".")
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the programmer operations.
//
// Example:
//
//	prog := bootloader.New(port, bootloader.WithLogger(logger))
func WithLogger(logger *log.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTimeout sets the reply timeout. Non-positive values are ignored.
//
// Example:
//
//	prog := bootloader.New(port, bootloader.WithTimeout(time.Second))
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithAckMode selects the write acknowledgement framing. Default is
// protocol.AckEcho.
//
// Example:
//
//	prog := bootloader.New(port, bootloader.WithAckMode(protocol.AckChecksum))
func WithAckMode(mode protocol.AckMode) Option {
	return func(c *Config) {
		c.AckMode = mode
	}
}

// WithVerifyAfterWrite enables or disables reading back every window after
// it was written. Default is false.
//
// Example:
//
//	prog := bootloader.New(port, bootloader.WithVerifyAfterWrite(true))
func WithVerifyAfterWrite(verify bool) Option {
	return func(c *Config) {
		c.VerifyAfterWrite = verify
	}
}
