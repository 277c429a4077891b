package bootloader

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"

	"github.com/rksdna/emrom/memory"
	"github.com/rksdna/emrom/protocol"
)

// Transport is the byte channel to the device.
//
// Write sends the whole buffer or returns an error. Read fills the whole
// buffer within timeout, or returns the number of bytes received so far
// together with an error.
type Transport interface {
	Write(p []byte) (int, error)
	Read(p []byte, timeout time.Duration) (int, error)
}

// Programmer moves memory images between the host and the device one page
// at a time. Exchanges are strictly sequential: a request is written, its
// reply is read, and only then does the next page start.
//
// Programmer is not safe for concurrent use.
type Programmer struct {
	transport Transport
	config    Config

	// reply buffer, sized for the longest reply
	reply []byte
}

// New creates a new Programmer with the given transport and options.
//
// Example:
//
//	port, _ := serial.Open("/dev/ttyUSB0")
//	prog := bootloader.New(port,
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithTimeout(500*time.Millisecond),
//	)
func New(transport Transport, opts ...Option) *Programmer {
	if transport == nil {
		panic("transport cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Programmer{
		transport: transport,
		config:    cfg,
		reply:     make([]byte, protocol.ReadReplySize),
	}
}

// AlignWindow expands the range [origin, origin+size) outwards to page
// boundaries. An empty range stays empty.
//
// Example:
//
//	begin, size := bootloader.AlignWindow(0x10, 0x50) // 0x00, 0x80
func AlignWindow(origin, size uint32) (begin, alignedSize uint32) {
	if size == 0 {
		return origin / protocol.PageSize * protocol.PageSize, 0
	}
	begin = origin / protocol.PageSize * protocol.PageSize
	end := (uint64(origin) + uint64(size) + protocol.PageSize - 1) / protocol.PageSize * protocol.PageSize
	return begin, uint32(end - uint64(begin))
}

// ReadMemory reads every page of the image window from the device into
// the image. On failure the pages read so far remain in the image.
//
// Example:
//
//	img := memory.New()
//	if err := prog.ReadMemory(ctx, img); err != nil {
//	    return err
//	}
func (p *Programmer) ReadMemory(ctx context.Context, img *memory.Image) error {
	if err := checkWindow(img); err != nil {
		return err
	}

	return p.transfer(ctx, PhaseReading, img, p.readPage)
}

// WriteMemory writes every page of the image window to the device. The
// window must be page aligned, see AlignWindow. If verification is enabled
// the window is read back afterwards and compared.
func (p *Programmer) WriteMemory(ctx context.Context, img *memory.Image) error {
	return p.write(ctx, PhaseWriting, img)
}

// Erase writes 0xFF to every byte of the device memory.
func (p *Programmer) Erase(ctx context.Context) error {
	img := memory.New()
	img.Fill(0xFF)

	return p.write(ctx, PhaseErasing, img)
}

// Verify reads every page of the image window back from the device and
// compares it with the image. The first difference is returned as a
// *VerificationError.
func (p *Programmer) Verify(ctx context.Context, img *memory.Image) error {
	if err := checkWindow(img); err != nil {
		return err
	}

	page := make([]byte, protocol.PageSize)
	return p.transfer(ctx, PhaseVerifying, img, func(address uint32, expected []byte) error {
		if err := p.readPage(address, page); err != nil {
			return err
		}
		for i := range page {
			if page[i] != expected[i] {
				p.logDebug("verification mismatch",
					log.Hex("address", address+uint32(i)),
					log.Hex("expected", expected[i]),
					log.Hex("got", page[i]))
				return &VerificationError{
					Address:  address + uint32(i),
					Expected: expected[i],
					Actual:   page[i],
				}
			}
		}
		return nil
	})
}

func (p *Programmer) write(ctx context.Context, phase string, img *memory.Image) error {
	if err := checkWindow(img); err != nil {
		return err
	}

	if err := p.transfer(ctx, phase, img, p.writePage); err != nil {
		return err
	}

	if !p.config.VerifyAfterWrite {
		return nil
	}
	if err := p.Verify(ctx, img); err != nil {
		return fmt.Errorf("verify after write: %w", err)
	}
	return nil
}

// transfer runs exchange once per page of the image window, stopping at
// the first error.
func (p *Programmer) transfer(ctx context.Context, phase string, img *memory.Image,
	exchange func(address uint32, page []byte) error) error {

	startTime := time.Now()
	origin := img.Origin()
	window := img.Bytes()
	totalPages := len(window) / protocol.PageSize

	p.logDebug("transfer started",
		log.String("phase", phase),
		log.Hex("origin", origin),
		log.Int("pages", totalPages))

	for i := range totalPages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("cancelled: %w", err)
		}

		address := origin + uint32(i*protocol.PageSize)
		page := window[i*protocol.PageSize : (i+1)*protocol.PageSize]

		if err := exchange(address, page); err != nil {
			p.logDebug("page exchange failed",
				log.String("phase", phase),
				log.Hex("address", address),
				log.Err(err))
			return fmt.Errorf("%s page 0x%04X: %w", phase, address, err)
		}

		p.reportProgress(Progress{
			Phase:            phase,
			CurrentPage:      i + 1,
			TotalPages:       totalPages,
			Address:          address,
			Percentage:       float64(i+1) / float64(totalPages) * 100,
			BytesTransferred: (i + 1) * protocol.PageSize,
			ElapsedTime:      time.Since(startTime),
		})
	}

	p.reportProgress(Progress{
		Phase:            PhaseComplete,
		CurrentPage:      totalPages,
		TotalPages:       totalPages,
		Percentage:       100,
		BytesTransferred: len(window),
		ElapsedTime:      time.Since(startTime),
	})

	p.logInfo("transfer complete",
		log.String("phase", phase),
		log.Int("pages", totalPages),
		log.String("elapsed", time.Since(startTime).String()))

	return nil
}

// readPage performs one read-page exchange and decodes the reply into page.
func (p *Programmer) readPage(address uint32, page []byte) error {
	if err := p.send(address, protocol.BuildReadRequest(address)); err != nil {
		return err
	}

	reply := p.reply[:protocol.ReadReplySize]
	if err := p.receive(address, reply); err != nil {
		return err
	}

	if err := protocol.ParseReadReply(reply, page); err != nil {
		return &ReplyError{Address: address, Err: err}
	}
	return nil
}

// writePage performs one write-page exchange and checks the acknowledgement.
func (p *Programmer) writePage(address uint32, page []byte) error {
	frame, err := protocol.BuildWriteRequest(address, page)
	if err != nil {
		return err
	}
	if err := p.send(address, frame); err != nil {
		return err
	}

	ack := p.reply[:p.config.AckMode.ReplySize()]
	if err := p.receive(address, ack); err != nil {
		return err
	}

	if p.config.AckMode == protocol.AckChecksum {
		if expected := protocol.PageChecksum(page); ack[0] != expected {
			return &ReplyError{
				Address: address,
				Err:     fmt.Errorf("acknowledgement 0x%02X does not match page checksum 0x%02X", ack[0], expected),
			}
		}
	}
	return nil
}

// send writes frame and requires the transport to accept all of it.
func (p *Programmer) send(address uint32, frame []byte) error {
	n, err := p.transport.Write(frame)
	if err != nil || n != len(frame) {
		return &SerialIOError{
			Op:       "write",
			Address:  address,
			Expected: len(frame),
			Actual:   n,
			Err:      err,
		}
	}
	return nil
}

// receive fills buf from the transport within the configured timeout.
func (p *Programmer) receive(address uint32, buf []byte) error {
	n, err := p.transport.Read(buf, p.config.Timeout)
	if err != nil || n != len(buf) {
		return &SerialIOError{
			Op:       "read",
			Address:  address,
			Expected: len(buf),
			Actual:   n,
			Err:      err,
		}
	}
	return nil
}

func checkWindow(img *memory.Image) error {
	if img == nil {
		return fmt.Errorf("image cannot be nil")
	}
	if img.Origin()%protocol.PageSize != 0 || img.Size()%protocol.PageSize != 0 {
		return fmt.Errorf("%w: origin 0x%04X, size 0x%X", ErrUnalignedWindow, img.Origin(), img.Size())
	}
	return nil
}

// reportProgress calls the progress callback if configured.
func (p *Programmer) reportProgress(progress Progress) {
	if p.config.ProgressCallback != nil {
		p.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (p *Programmer) logDebug(msg string, fields ...log.Field) {
	if p.config.Logger != nil {
		p.config.Logger.Debug(msg, fields...)
	}
}

// logInfo logs an info message if a logger is configured.
func (p *Programmer) logInfo(msg string, fields ...log.Field) {
	if p.config.Logger != nil {
		p.config.Logger.Info(msg, fields...)
	}
}
