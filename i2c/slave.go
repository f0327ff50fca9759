package i2c

type SlaveState uint8

const (
	SLAVE_IDLE     SlaveState = iota // Not participating
	SLAVE_ADDR_RX  SlaveState = iota // Shifting in address + direction
	SLAVE_ACK_ADDR SlaveState = iota // Acknowledging a matched address
	SLAVE_DATA_RX  SlaveState = iota // Shifting in the data byte
	SLAVE_DATA_TX  SlaveState = iota // Shifting out the outgoing byte
	SLAVE_ACK_TX   SlaveState = iota // Acknowledging received data
	SLAVE_ACK_RX   SlaveState = iota // Waiting out the master's NACK
)

// The slave transaction engine. It has no clock source in common with
// the master: both bus lines are synchronized to the local timebase and
// every action hangs off a recovered clock edge
type Slave struct {
	State   SlaveState
	Address uint8 // Configured 7 bit address

	SCL Trace // Synchronized bus clock line
	SDA Trace // Synchronized bus data line

	// Outputs. DataValid and ReadRequest stay up until the next START
	// condition so a polling caller cannot miss them
	ReceivedByte uint8
	DataValid    bool
	ReadRequest  bool

	// OutgoingByte is sampled when the engine enters DATA_TX. If
	// ReadSource is set it is consulted at that point instead
	OutgoingByte uint8
	ReadSource   func() uint8

	// Called on every received byte, if set
	Callback func(uint8)

	Match bool      // Last received address matched ours
	Dir   Direction // Requested direction of the current transaction

	shift  uint8
	count  int
	sdaLow bool // current data line drive request

	sclLine *Line
	sdaLine *Line
	sdaDrv  int
}

// Returns a new slave listening on the given lines at `address`
func NewSlave(scl, sda *Line, address uint8) *Slave {
	return &Slave{
		Address: address & 0x7f,
		SCL:     NewTrace(),
		SDA:     NewTrace(),
		sclLine: scl,
		sdaLine: sda,
		sdaDrv:  sda.Attach(),
	}
}

// Advances the slave by one tick of the host timebase
func (slv *Slave) Step() {
	slv.SCL.Tick(slv.sclLine.High())
	slv.SDA.Tick(slv.sdaLine.High())

	// check for START and STOP before anything else: a data line edge
	// while the clock is high overrides whatever state we are in
	if slv.SCL.Hi() && slv.SDA.Falling() {
		slv.onStart()
	} else if slv.SCL.Hi() && slv.SDA.Rising() {
		slv.State = SLAVE_IDLE
		slv.sdaLow = false
	} else if slv.SCL.Rising() {
		slv.onRising()
	} else if slv.SCL.Falling() {
		slv.onFalling()
	}

	slv.sdaLine.Post(slv.sdaDrv, slv.sdaLow)
}

// Handles a START condition. Forced from any state, so a repeated or
// aborted frame can never leave stale counters behind
func (slv *Slave) onStart() {
	slv.State = SLAVE_ADDR_RX
	slv.shift = 0
	slv.count = 0
	slv.Match = false
	slv.DataValid = false
	slv.ReadRequest = false
	slv.sdaLow = false
}

// Handles a recovered rising edge of the bus clock: sampling points
func (slv *Slave) onRising() {
	switch slv.State {
	case SLAVE_ADDR_RX:
		slv.shift = slv.shift<<1 | oneIfTrue(slv.SDA.Hi())
		slv.count++
		if slv.count == 8 {
			slv.Dir = Direction(slv.shift & 1)
			slv.Match = slv.shift>>1 == slv.Address
			if slv.Match && slv.Dir == DIR_READ {
				slv.ReadRequest = true
			}
		}

	case SLAVE_DATA_RX:
		slv.shift = slv.shift<<1 | oneIfTrue(slv.SDA.Hi())
		slv.count++
		if slv.count == 8 {
			slv.ReceivedByte = slv.shift
			slv.DataValid = true
			if slv.Callback != nil {
				slv.Callback(slv.shift)
			}
		}
	}
}

// Handles a recovered falling edge of the bus clock: the points where
// the data line may change
func (slv *Slave) onFalling() {
	switch slv.State {
	case SLAVE_ADDR_RX:
		if slv.count == 8 {
			slv.State = SLAVE_ACK_ADDR
			// pull low only for our own address; a mismatch is silent
			slv.sdaLow = slv.Match
		}

	case SLAVE_ACK_ADDR:
		slv.sdaLow = false
		switch {
		case slv.Match && slv.Dir == DIR_READ:
			slv.State = SLAVE_DATA_TX
			if slv.ReadSource != nil {
				slv.OutgoingByte = slv.ReadSource()
			}
			slv.shift = slv.OutgoingByte
			slv.sdaLow = !bitAt(slv.shift, 7)
			slv.count = 1
		case slv.Match && slv.Dir == DIR_WRITE:
			slv.State = SLAVE_DATA_RX
			slv.shift = 0
			slv.count = 0
		default:
			slv.State = SLAVE_IDLE
		}

	case SLAVE_DATA_RX:
		if slv.count == 8 {
			slv.State = SLAVE_ACK_TX
			slv.sdaLow = true
		}

	case SLAVE_DATA_TX:
		if slv.count < 8 {
			slv.sdaLow = !bitAt(slv.shift, 7-slv.count)
			slv.count++
		} else {
			slv.sdaLow = false
			slv.State = SLAVE_ACK_RX
		}

	case SLAVE_ACK_TX:
		// acknowledge pulse held for one full clock cycle
		slv.sdaLow = false
		slv.State = SLAVE_IDLE

	case SLAVE_ACK_RX:
		// the master terminates a read with a NACK; any level is
		// accepted here
		slv.State = SLAVE_IDLE
	}
}
