package memory

// Capacity is the size of the device address space in bytes.
const Capacity = 0x10000

// Image is a 64 KiB memory buffer with a logical (origin, size) window.
type Image struct {
	origin uint32
	size   uint32
	data   []byte

	// lowest and highest addresses stored since the last reset
	lo, hi  uint32
	touched bool
}

// New creates an image whose window covers the full address space.
// The buffer starts zeroed.
func New() *Image {
	return &Image{
		size: Capacity,
		data: make([]byte, Capacity),
	}
}

// Origin returns the first address of the window.
func (m *Image) Origin() uint32 {
	return m.origin
}

// Size returns the number of bytes in the window.
func (m *Image) Size() uint32 {
	return m.size
}

// SetWindow selects the sub-range used by subsequent operations.
// The buffer content is left untouched.
func (m *Image) SetWindow(origin, size uint32) error {
	if uint64(origin)+uint64(size) > Capacity {
		return &WindowError{Origin: origin, Size: size}
	}
	m.origin = origin
	m.size = size
	return nil
}

// Contains reports whether address lies inside the window.
func (m *Image) Contains(address uint32) bool {
	return address >= m.origin && uint64(address) < uint64(m.origin)+uint64(m.size)
}

// Load returns the byte at address.
func (m *Image) Load(address uint32) (byte, error) {
	if !m.Contains(address) {
		return 0, m.rangeError(address)
	}
	return m.data[address], nil
}

// Store sets the byte at address and extends the touched range.
func (m *Image) Store(address uint32, value byte) error {
	if !m.Contains(address) {
		return m.rangeError(address)
	}
	m.data[address] = value

	if !m.touched {
		m.lo, m.hi, m.touched = address, address, true
	} else if address < m.lo {
		m.lo = address
	} else if address > m.hi {
		m.hi = address
	}
	return nil
}

// Fill sets every byte of the window to value and clears the touched range.
func (m *Image) Fill(value byte) {
	window := m.Bytes()
	for i := range window {
		window[i] = value
	}
	m.ResetTouched()
}

// Bytes returns the window as a slice of the underlying buffer.
// Writes through the slice are not recorded in the touched range.
func (m *Image) Bytes() []byte {
	return m.data[m.origin : m.origin+m.size]
}

// Slice returns n bytes starting at address, which must lie inside the window.
func (m *Image) Slice(address, n uint32) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	if !m.Contains(address) {
		return nil, m.rangeError(address)
	}
	if !m.Contains(address + n - 1) {
		return nil, m.rangeError(address + n - 1)
	}
	return m.data[address : address+n], nil
}

// Touched returns the smallest range containing every address stored since
// the image was created, filled or reset. ok is false if nothing was stored.
func (m *Image) Touched() (origin, size uint32, ok bool) {
	if !m.touched {
		return 0, 0, false
	}
	return m.lo, m.hi - m.lo + 1, true
}

// ResetTouched forgets the touched range.
func (m *Image) ResetTouched() {
	m.lo, m.hi, m.touched = 0, 0, false
}

func (m *Image) rangeError(address uint32) error {
	return &RangeError{Address: address, Origin: m.origin, Size: m.size}
}
