package i2c

// Records the resolved levels of both bus lines once per tick, like a
// two-channel logic analyzer clipped to the bus
type Probe struct {
	SCL []bool
	SDA []bool
	Max int // capture limit in samples, 0 = unlimited
}

// Returns a new probe with a capture limit of `max` samples
func NewProbe(max int) *Probe {
	return &Probe{Max: max}
}

// Appends one sample of both lines. Once the capture limit is reached
// the oldest samples are dropped
func (p *Probe) Sample(scl, sda bool) {
	p.SCL = append(p.SCL, scl)
	p.SDA = append(p.SDA, sda)
	if p.Max > 0 && len(p.SCL) > p.Max {
		p.SCL = p.SCL[len(p.SCL)-p.Max:]
		p.SDA = p.SDA[len(p.SDA)-p.Max:]
	}
}

// Returns the amount of captured samples
func (p *Probe) Length() int {
	return len(p.SCL)
}

// Drops all captured samples
func (p *Probe) Clear() {
	p.SCL = p.SCL[:0]
	p.SDA = p.SDA[:0]
}
