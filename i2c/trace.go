package i2c

// Synchronizes an observed bus line to the local timebase and keeps
// enough history to derive edge pulses from it. The slave has no clock
// source in common with the master, so every line it watches goes
// through one of these
type Trace struct {
	prev bool
	cur  bool
}

// Returns a new trace resting at the idle (high) level
func NewTrace() Trace {
	return Trace{prev: true, cur: true}
}

// Records the line level for the current tick
func (t *Trace) Tick(level bool) {
	t.prev = t.cur
	t.cur = level
}

// Returns true if the synchronized level is high
func (t *Trace) Hi() bool {
	return t.cur
}

// Returns true if the synchronized level is low
func (t *Trace) Lo() bool {
	return !t.cur
}

// Returns true for the one tick where the level went low to high
func (t *Trace) Rising() bool {
	return !t.prev && t.cur
}

// Returns true for the one tick where the level went high to low
func (t *Trace) Falling() bool {
	return t.prev && !t.cur
}
