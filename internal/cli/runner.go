package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/rksdna/emrom/bootloader"
	"github.com/rksdna/emrom/ihex"
	"github.com/rksdna/emrom/memory"
	"github.com/rksdna/emrom/serial"
)

// resetPulse is how long DTR is held to reset the device, and how long the
// device is given to start afterwards.
const resetPulse = 100 * time.Millisecond

// Port is the serial connection used by a session.
type Port interface {
	bootloader.Transport
	SetLineControl(rts, dtr bool) error
	Purge() error
	Sleep(d time.Duration)
	Close() error
}

// OpenFunc opens the port named on the command line.
type OpenFunc func(name string, opts Options) (Port, error)

// OpenSerial opens a serial device.
func OpenSerial(name string, opts Options) (Port, error) {
	return serial.Open(name, serial.WithBaud(opts.Baud))
}

// Runner executes the commands of a session in order and owns the port
// between connect and disconnect.
type Runner struct {
	opts   Options
	logger *log.Logger
	out    io.Writer
	open   OpenFunc
	port   Port
}

// NewRunner creates a runner. Progress and results are printed to out.
func NewRunner(opts Options, logger *log.Logger, out io.Writer, open OpenFunc) *Runner {
	return &Runner{
		opts:   opts,
		logger: logger,
		out:    out,
		open:   open,
	}
}

// Run executes commands in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, commands []Command) error {
	for _, cmd := range commands {
		if err := r.execute(ctx, cmd); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
	}
	return nil
}

// Close closes the port if a session left it open.
func (r *Runner) Close() error {
	if r.port == nil {
		return nil
	}
	err := r.port.Close()
	r.port = nil
	return err
}

// Connected reports whether a port is open.
func (r *Runner) Connected() bool {
	return r.port != nil
}

func (r *Runner) execute(ctx context.Context, cmd Command) error {
	var err error

	switch cmd.Kind {
	case Connect:
		r.status("Connect %q...", cmd.Arg)
		err = r.connect(cmd.Arg)
	case Read:
		r.status("Reading to %q...", cmd.Arg)
		err = r.withRetries(ctx, cmd, func() error { return r.read(ctx, cmd.Arg) })
	case Write:
		r.status("Writing from %q...", cmd.Arg)
		err = r.withRetries(ctx, cmd, func() error { return r.write(ctx, cmd.Arg) })
	case Erase:
		r.status("Erasing...")
		err = r.withRetries(ctx, cmd, func() error { return r.erase(ctx) })
	case Disconnect:
		r.status("Disconnecting...")
		err = r.Close()
	case Help:
		r.printf("%s", Usage())
		return nil
	default:
		return fmt.Errorf("unsupported command kind %d", int(cmd.Kind))
	}

	if err != nil {
		r.status(" FAILED [%d]\n", ExitCode(err))
		return err
	}
	r.status(" done\n")
	return nil
}

func (r *Runner) connect(name string) error {
	if r.port != nil {
		return ErrAlreadyConnected
	}

	port, err := r.open(name, r.opts)
	if err != nil {
		return err
	}

	if r.opts.Reset {
		if err := pulseReset(port); err != nil {
			_ = port.Close()
			return err
		}
	}
	if err := port.Purge(); err != nil {
		_ = port.Close()
		return fmt.Errorf("purge: %w", err)
	}

	r.port = port
	r.logger.Debug("port opened", log.String("port", name), log.Int("baud", r.opts.Baud))
	return nil
}

func pulseReset(port Port) error {
	if err := port.SetLineControl(false, true); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	port.Sleep(resetPulse)
	if err := port.SetLineControl(false, false); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	port.Sleep(resetPulse)
	return nil
}

// read dumps the full device memory to a record file.
func (r *Runner) read(ctx context.Context, path string) error {
	prog, err := r.programmer()
	if err != nil {
		return err
	}

	img := memory.New()
	if err := prog.ReadMemory(ctx, img); err != nil {
		return err
	}
	return ihex.EncodeFile(path, img.Load, img.Origin(), img.Size(), r.opts.Width)
}

// write programs the pages covered by a record file.
func (r *Runner) write(ctx context.Context, path string) error {
	prog, err := r.programmer()
	if err != nil {
		return err
	}

	img := memory.New()
	img.Fill(r.opts.Fill)
	if err := ihex.DecodeFile(path, img.Store); err != nil {
		return err
	}

	origin, size, ok := img.Touched()
	if !ok {
		r.logger.Warn("record file contains no data", log.String("file", path))
		return nil
	}

	begin, length := bootloader.AlignWindow(origin, size)
	if err := img.SetWindow(begin, length); err != nil {
		return err
	}
	r.logger.Debug("writing window",
		log.Hex("origin", begin),
		log.Hex("size", length))

	return prog.WriteMemory(ctx, img)
}

func (r *Runner) erase(ctx context.Context) error {
	prog, err := r.programmer()
	if err != nil {
		return err
	}
	return prog.Erase(ctx)
}

// withRetries repeats op after serial I/O errors, purging the port first.
func (r *Runner) withRetries(ctx context.Context, cmd Command, op func() error) error {
	err := op()
	for attempt := 1; attempt <= r.opts.Retries; attempt++ {
		var ioErr *bootloader.SerialIOError
		if !errors.As(err, &ioErr) || ctx.Err() != nil {
			return err
		}

		r.logger.Warn("retrying after serial error",
			log.String("command", cmd.String()),
			log.Int("attempt", attempt),
			log.Err(err))
		if perr := r.port.Purge(); perr != nil {
			return errors.Join(err, perr)
		}
		err = op()
	}
	return err
}

func (r *Runner) programmer() (*bootloader.Programmer, error) {
	if r.port == nil {
		return nil, ErrNotConnected
	}

	mode, err := r.opts.ackMode()
	if err != nil {
		return nil, &UsageError{err: err}
	}

	return bootloader.New(r.port,
		bootloader.WithTimeout(r.opts.Timeout),
		bootloader.WithAckMode(mode),
		bootloader.WithVerifyAfterWrite(r.opts.Verify),
		bootloader.WithLogger(r.logger),
		bootloader.WithProgressCallback(r.progress),
	), nil
}

// progress prints one dot per page.
func (r *Runner) progress(p bootloader.Progress) {
	if p.Phase == bootloader.PhaseComplete {
		return
	}
	r.status(".")
}

// status prints session progress unless quiet output was requested.
func (r *Runner) status(format string, args ...any) {
	if !r.opts.Quiet {
		r.printf(format, args...)
	}
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
