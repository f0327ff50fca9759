package i2c

// Holds transaction requests issued while the master is busy
type RequestFIFO struct {
	Buffer   [16]Request
	WritePtr uint8 // Write pointer (4 bits and carry)
	ReadPtr  uint8 // Read pointer (4 bits and carry)
}

// Returns a new request FIFO instance
func NewRequestFIFO() *RequestFIFO {
	return &RequestFIFO{}
}

// Returns true if the FIFO is empty
func (fifo *RequestFIFO) IsEmpty() bool {
	// if the read and write pointers are the same, the FIFO is empty
	return fifo.WritePtr == fifo.ReadPtr
}

// Returns true if the FIFO is full
func (fifo *RequestFIFO) IsFull() bool {
	// if both pointers point to the same address, but have a different
	// carry
	return fifo.WritePtr == fifo.ReadPtr^0x10
}

// Resets the FIFO
func (fifo *RequestFIFO) Clear() {
	fifo.ReadPtr = 0
	fifo.WritePtr = 0
}

// Pushes a request to the FIFO
func (fifo *RequestFIFO) Push(req Request) {
	fifo.Buffer[fifo.WritePtr&0xf] = req
	fifo.WritePtr = (fifo.WritePtr + 1) & 0x1f
}

// Increments the read pointer of the FIFO and returns the request at
// that pointer
func (fifo *RequestFIFO) Pop() Request {
	idx := fifo.ReadPtr & 0xf
	fifo.ReadPtr = (fifo.ReadPtr + 1) & 0x1f
	return fifo.Buffer[idx]
}

// Returns the amount of pending requests in the FIFO
func (fifo *RequestFIFO) Length() uint8 {
	return (fifo.WritePtr - fifo.ReadPtr) & 0x1f
}
