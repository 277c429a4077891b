// Package memory provides the owned image of the 64 KiB device address space.
//
// An Image always carries a full 64 KiB buffer. The window, an (origin, size)
// pair, selects the sub-range that a single operation works on. Loads and
// stores outside the window fail with a RangeError.
//
//	img := memory.New()
//	img.Fill(0xFF)
//	if err := img.Store(0x1234, 0xAA); err != nil {
//	    log.Fatal(err)
//	}
//	origin, size, ok := img.Touched()
//
// An Image is owned by the operation that created it and must not be shared
// between goroutines.
package memory
