package i2c

// DefaultPeriod is the default length of one SCL period in host ticks
const DefaultPeriod = 40

// The bus simulation: one master and any number of slaves contending
// for the same pair of open-drain lines. Both engines are stepped once
// per tick and the lines resolve strictly after all drive requests have
// been posted, so neither side ever observes a half-updated bus
type Sim struct {
	SCL    *Line
	SDA    *Line
	Master *Master
	Slaves []*Slave
	Probe  *Probe // optional waveform capture
	Ticks  uint64
}

// Returns a new simulation with a master clocked at `period` ticks per
// SCL cycle
func NewSim(period uint32) *Sim {
	scl := NewLine("SCL")
	sda := NewLine("SDA")
	return &Sim{
		SCL:    scl,
		SDA:    sda,
		Master: NewMaster(scl, sda, period),
	}
}

// Attaches a new slave listening at `address` to the bus
func (sim *Sim) AttachSlave(address uint8) *Slave {
	slv := NewSlave(sim.SCL, sim.SDA, address)
	sim.Slaves = append(sim.Slaves, slv)
	return slv
}

// Advances the whole bus by one tick
func (sim *Sim) Step() {
	sim.Master.Step()
	for _, slv := range sim.Slaves {
		slv.Step()
	}

	scl := sim.SCL.Resolve()
	sda := sim.SDA.Resolve()
	if sim.Probe != nil {
		sim.Probe.Sample(scl, sda)
	}
	sim.Ticks++
}

// Advances the bus by `n` ticks
func (sim *Sim) StepN(n int) {
	for i := 0; i < n; i++ {
		sim.Step()
	}
}

// Queues a request and steps the bus until the master reports it
// complete. Returns false if the bus did not complete the transaction
// within a generous deadline (a stuck-low line, for instance)
func (sim *Sim) RunTransaction(req Request) (Result, bool) {
	if !sim.Master.Start(req) {
		return Result{}, false
	}

	// wait out any requests queued ahead of ours
	target := sim.Master.Finished + uint64(sim.Master.Queue.Length())
	if sim.Master.Busy() {
		target++
	}

	// a single-byte transaction spans about 20 SCL periods; anything
	// past the deadline means the bus is wedged
	deadline := (target - sim.Master.Finished) * 64 * uint64(sim.Master.Clock.Period)
	for i := uint64(0); i < deadline; i++ {
		sim.Step()
		if sim.Master.Finished == target {
			return Result{Data: sim.Master.RxByte, Err: sim.Master.Err}, true
		}
	}
	return Result{}, false
}
