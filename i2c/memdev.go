package i2c

// A small byte-addressable memory behind a slave, in the spirit of the
// 24-series EEPROMs. Every write transaction stores one byte at the
// file pointer, every read transaction serves one byte from it; the
// pointer advances after each access and wraps at the end of the array
type MemDevice struct {
	Slave *Slave
	Mem   []uint8
	Ptr   int // file pointer
}

// Returns a new memory device of `size` bytes wired to `slv`
func NewMemDevice(slv *Slave, size int) *MemDevice {
	if size <= 0 {
		panicFmt("memdev: invalid size %d", size)
	}

	dev := &MemDevice{
		Slave: slv,
		Mem:   make([]uint8, size),
	}
	slv.Callback = dev.put
	slv.ReadSource = dev.get
	return dev
}

// Rewinds the file pointer
func (dev *MemDevice) Seek(p int) {
	dev.Ptr = p % len(dev.Mem)
}

func (dev *MemDevice) put(b uint8) {
	dev.Mem[dev.Ptr] = b
	dev.Ptr = (dev.Ptr + 1) % len(dev.Mem)
}

func (dev *MemDevice) get() uint8 {
	b := dev.Mem[dev.Ptr]
	dev.Ptr = (dev.Ptr + 1) % len(dev.Mem)
	return b
}
