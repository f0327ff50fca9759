package i2c

// Quarters of one SCL period. The two low quarters are where data is
// allowed to change, the two high quarters are where data is sampled
const (
	QUARTER_LOW     uint8 = 0 // Q0: low plateau
	QUARTER_RISING  uint8 = 1 // Q1: line went high at the Q0->Q1 boundary
	QUARTER_HIGH    uint8 = 2 // Q2: high plateau
	QUARTER_FALLING uint8 = 3 // Q3: line went low at the Q2->Q3 boundary
)

// Free-running counter owned by the master. It divides a fixed period
// into four quarters and reports every quarter boundary. While the
// master is idle the counter is held at reset and the generated clock
// line is forced high
type PhaseClock struct {
	Period  uint32 // ticks per full SCL period, >= 8 and divisible by 4
	Counter uint32 // position inside the current period
	Quarter uint8  // current quarter (Q0..Q3)
	Running bool   // counting only while a transaction is active
}

// Returns a new phase clock with the given period in ticks
func NewPhaseClock(period uint32) *PhaseClock {
	if period < 8 || period%4 != 0 {
		panicFmt("clock: invalid period %d (must be >= 8 and divisible by 4)", period)
	}
	return &PhaseClock{Period: period}
}

// Starts the clock from its reset position
func (clk *PhaseClock) Start() {
	clk.Reset()
	clk.Running = true
}

// Stops the clock and holds it at reset. The clock line reads high again
func (clk *PhaseClock) Stop() {
	clk.Running = false
	clk.Reset()
}

// Holds the counter and quarter at their reset values
func (clk *PhaseClock) Reset() {
	clk.Counter = 0
	clk.Quarter = QUARTER_LOW
}

// Advances the clock by one tick. Returns true exactly once per quarter
// transition, together with the new quarter index. Suppressed while the
// clock is stopped
func (clk *PhaseClock) Advance() (bool, uint8) {
	if !clk.Running {
		return false, clk.Quarter
	}

	clk.Counter++
	if clk.Counter == clk.Period {
		clk.Counter = 0
	}

	if clk.Counter%(clk.Period/4) == 0 {
		clk.Quarter = (clk.Quarter + 1) & 3
		return true, clk.Quarter
	}
	return false, clk.Quarter
}

// Returns the level of the generated clock line. High while idle, and
// during the Q1/Q2 plateau while running
func (clk *PhaseClock) Level() bool {
	if !clk.Running {
		return true
	}
	return clk.Quarter == QUARTER_RISING || clk.Quarter == QUARTER_HIGH
}
