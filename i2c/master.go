package i2c

type MasterState uint8

const (
	MASTER_IDLE     MasterState = iota // Bus released, waiting for a request
	MASTER_START    MasterState = iota // Generating the START condition
	MASTER_ADDR     MasterState = iota // Shifting out address + direction
	MASTER_ACK_ADDR MasterState = iota // Sampling the address acknowledge
	MASTER_DATA     MasterState = iota // Shifting the data byte either way
	MASTER_ACK_DATA MasterState = iota // One high plateau after the data byte
	MASTER_STOP     MasterState = iota // Generating the STOP condition
)

// Direction of a transaction as seen from the master
type Direction uint8

const (
	DIR_WRITE Direction = 0
	DIR_READ  Direction = 1
)

// A single-byte transaction request
type Request struct {
	Addr uint8     // 7 bit target address
	Dir  Direction // Transfer direction
	Data uint8     // Outgoing byte, used only for writes
}

// Outcome of a finished transaction
type Result struct {
	Data uint8 // Incoming byte, valid only for reads
	Err  bool  // True if the address phase was not acknowledged
}

// The master transaction engine. It owns the phase clock, drives the
// clock line, frames every transaction with START/STOP and shifts the
// address and data bytes
type Master struct {
	State MasterState
	Clock *PhaseClock

	// Latched outputs of the last finished transaction. Completed is
	// cleared when the next request is taken off the queue
	Completed bool
	Err       bool
	RxByte    uint8

	// Running count of finished transactions
	Finished uint64

	// Called once per finished transaction, if set
	Done func(Result)

	Queue *RequestFIFO

	shift  uint8 // address + direction shift register
	data   uint8 // data shift register (tx for writes, rx for reads)
	dir    Direction
	bit    int  // index of the next bit to assert or sample
	nack   bool // sampled address acknowledge was high
	sdaLow bool // current data line drive request

	scl    *Line
	sda    *Line
	sclDrv int
	sdaDrv int
}

// Returns a new master attached to the given clock and data lines
func NewMaster(scl, sda *Line, period uint32) *Master {
	return &Master{
		Clock:  NewPhaseClock(period),
		Queue:  NewRequestFIFO(),
		scl:    scl,
		sda:    sda,
		sclDrv: scl.Attach(),
		sdaDrv: sda.Attach(),
	}
}

// Queues a transaction request. Requests issued while the master is
// busy are taken in order once the bus frees up. Returns false if the
// queue is full and the request was dropped
func (m *Master) Start(req Request) bool {
	if m.Queue.IsFull() {
		return false
	}
	m.Queue.Push(req)
	return true
}

// Returns true while a transaction is in flight
func (m *Master) Busy() bool {
	return m.State != MASTER_IDLE
}

// Advances the master by one tick of the host timebase. The engine only
// acts on quarter boundaries of its own bus clock
func (m *Master) Step() {
	if m.State == MASTER_IDLE && !m.Queue.IsEmpty() {
		m.begin(m.Queue.Pop())
	}

	if tick, q := m.Clock.Advance(); tick {
		m.onQuarter(q)
	}

	m.scl.Post(m.sclDrv, !m.Clock.Level())
	m.sda.Post(m.sdaDrv, m.sdaLow)
}

// Latches a request and starts the bus clock
func (m *Master) begin(req Request) {
	m.shift = req.Addr<<1 | uint8(req.Dir)
	m.data = req.Data
	m.dir = req.Dir
	m.nack = false
	m.sdaLow = false
	m.Completed = false
	m.Err = false
	m.State = MASTER_START
	m.Clock.Start()
}

// Handles one quarter boundary of the bus clock. `q` is the quarter
// being entered
func (m *Master) onQuarter(q uint8) {
	switch m.State {
	case MASTER_START:
		switch q {
		case QUARTER_HIGH:
			// falling edge on the data line while the clock is high:
			// the START condition
			m.sdaLow = true
		case QUARTER_LOW:
			// start held through the low-transition quarter, shift out
			// the first address bit
			m.State = MASTER_ADDR
			m.bit = 6
			m.sdaLow = !bitAt(m.shift, 7)
		}

	case MASTER_ADDR:
		if q == QUARTER_FALLING {
			if m.bit >= 0 {
				m.sdaLow = !bitAt(m.shift, m.bit)
				m.bit--
			} else {
				// all 8 bits out, release the line for the acknowledge
				m.sdaLow = false
				m.State = MASTER_ACK_ADDR
			}
		}

	case MASTER_ACK_ADDR:
		switch q {
		case QUARTER_RISING:
			m.nack = m.sda.High()
		case QUARTER_FALLING:
			if m.nack {
				// nobody home: latch the error and abort through STOP
				// so the bus is never left mid-frame
				m.Err = true
				m.State = MASTER_STOP
				m.sdaLow = true
			} else if m.dir == DIR_WRITE {
				m.State = MASTER_DATA
				m.bit = 6
				m.sdaLow = !bitAt(m.data, 7)
			} else {
				m.State = MASTER_DATA
				m.bit = 7
				m.data = 0
				m.sdaLow = false
			}
		}

	case MASTER_DATA:
		if m.dir == DIR_WRITE {
			if q == QUARTER_FALLING {
				if m.bit >= 0 {
					m.sdaLow = !bitAt(m.data, m.bit)
					m.bit--
				} else {
					m.sdaLow = false
					m.State = MASTER_ACK_DATA
				}
			}
		} else {
			switch q {
			case QUARTER_RISING:
				if m.bit >= 0 {
					m.data = m.data<<1 | oneIfTrue(m.sda.High())
					m.bit--
				}
			case QUARTER_FALLING:
				if m.bit < 0 {
					// line stays released: the terminating NACK of a
					// single-byte read
					m.State = MASTER_ACK_DATA
				}
			}
		}

	case MASTER_ACK_DATA:
		// the acknowledge value is not sampled here: a data-phase NACK
		// is not treated as an error
		if q == QUARTER_FALLING {
			m.State = MASTER_STOP
			m.sdaLow = true
		}

	case MASTER_STOP:
		switch q {
		case QUARTER_HIGH:
			// rising edge on the data line while the clock is high:
			// the STOP condition
			m.sdaLow = false
		case QUARTER_FALLING:
			// completion is only declared once the line actually read
			// high during the plateau; a stuck-low line keeps the
			// transaction pending forever
			if m.sda.High() {
				m.finish()
			}
		}
	}
}

// Declares the transaction complete and returns the bus to idle
func (m *Master) finish() {
	m.State = MASTER_IDLE
	m.Completed = true
	m.Finished++
	if m.dir == DIR_READ && !m.Err {
		m.RxByte = m.data
	}
	m.Clock.Stop()

	if m.Done != nil {
		m.Done(Result{Data: m.RxByte, Err: m.Err})
	}
}
