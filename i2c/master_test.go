package i2c

import "testing"

// Scans a capture and counts data line edges that happened while the
// clock line was high: these are exactly the START and STOP conditions
func countFramingEdges(p *Probe) (falls, rises int) {
	for i := 1; i < p.Length(); i++ {
		if !p.SCL[i-1] || !p.SCL[i] {
			continue
		}
		if p.SDA[i-1] && !p.SDA[i] {
			falls++
		}
		if !p.SDA[i-1] && p.SDA[i] {
			rises++
		}
	}
	return falls, rises
}

func TestFramingWrite(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	sim := NewSim(DefaultPeriod)
	sim.AttachSlave(0x50)
	sim.Probe = NewProbe(0)

	_, ok := sim.RunTransaction(Request{Addr: 0x50, Dir: DIR_WRITE, Data: 0x3d})
	assert(ok)

	// data may only change while the clock is low, except for exactly
	// one START and one STOP
	falls, rises := countFramingEdges(sim.Probe)
	assert(falls == 1)
	assert(rises == 1)
}

func TestFramingRead(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	sim := NewSim(DefaultPeriod)
	slv := sim.AttachSlave(0x50)
	slv.OutgoingByte = 0x81
	sim.Probe = NewProbe(0)

	res, ok := sim.RunTransaction(Request{Addr: 0x50, Dir: DIR_READ})
	assert(ok && res.Data == 0x81)

	falls, rises := countFramingEdges(sim.Probe)
	assert(falls == 1)
	assert(rises == 1)
}

func TestFramingNACKAbort(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	sim := NewSim(DefaultPeriod)
	sim.Probe = NewProbe(0)

	// nobody on the bus at all: the frame must still be terminated
	// properly before completion is reported
	res, ok := sim.RunTransaction(Request{Addr: 0x44, Dir: DIR_WRITE, Data: 0x00})
	assert(ok && res.Err)

	falls, rises := countFramingEdges(sim.Probe)
	assert(falls == 1)
	assert(rises == 1)
	assert(sim.SDA.High() && sim.SCL.High())
}

func TestMasterRxByteOnlyForReads(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	sim := NewSim(DefaultPeriod)
	slv := sim.AttachSlave(0x50)
	slv.OutgoingByte = 0x7e

	res, ok := sim.RunTransaction(Request{Addr: 0x50, Dir: DIR_READ})
	assert(ok && res.Data == 0x7e)

	// a following write must not clobber the latched byte
	_, ok = sim.RunTransaction(Request{Addr: 0x50, Dir: DIR_WRITE, Data: 0x01})
	assert(ok)
	assert(sim.Master.RxByte == 0x7e)
}

func TestMasterErrLatchedUntilNextRequest(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	sim := NewSim(DefaultPeriod)
	sim.AttachSlave(0x50)

	res, ok := sim.RunTransaction(Request{Addr: 0x31, Dir: DIR_WRITE, Data: 0x00})
	assert(ok && res.Err)
	assert(sim.Master.Err)

	// stays up through idle ticks
	sim.StepN(5 * DefaultPeriod)
	assert(sim.Master.Err && sim.Master.Completed)

	res, ok = sim.RunTransaction(Request{Addr: 0x50, Dir: DIR_WRITE, Data: 0x00})
	assert(ok && !res.Err)
	assert(!sim.Master.Err)
}
