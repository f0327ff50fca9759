package main

import (
	"flag"
	"log"

	"github.com/30designmonster/I2C-Master-Slave-System/i2c"
)

func main() {
	// parse arguments
	addr := flag.Uint("addr", 0x50, "7 bit target address")
	slaveAddr := flag.Uint("slave", 0x50, "7 bit address of the attached slave")
	data := flag.Uint("data", 0x55, "byte to write")
	read := flag.Bool("read", false, "read a byte instead of writing one")
	out := flag.Uint("out", 0xcc, "byte the slave serves on reads")
	period := flag.Uint("period", i2c.DefaultPeriod, "SCL period in host ticks")
	view := flag.Bool("view", false, "show the captured waveform when done")
	flag.Parse()

	// build the bus
	sim := i2c.NewSim(uint32(*period))
	slv := sim.AttachSlave(uint8(*slaveAddr))
	slv.OutgoingByte = uint8(*out)

	if *view {
		sim.Probe = i2c.NewProbe(0)
	}

	req := i2c.Request{Addr: uint8(*addr), Dir: i2c.DIR_WRITE, Data: uint8(*data)}
	if *read {
		req.Dir = i2c.DIR_READ
	}

	res, ok := sim.RunTransaction(req)
	if !ok {
		log.Fatalf("bus wedged after %d ticks, transaction never completed", sim.Ticks)
	}

	switch {
	case res.Err:
		log.Printf("address 0x%02x: no acknowledge (NACK)", req.Addr)
	case req.Dir == i2c.DIR_READ:
		log.Printf("read 0x%02x from 0x%02x in %d ticks", res.Data, req.Addr, sim.Ticks)
	default:
		log.Printf("wrote 0x%02x to 0x%02x in %d ticks (slave received 0x%02x)",
			req.Data, req.Addr, sim.Ticks, slv.ReceivedByte)
	}

	if *view {
		if err := sim.Probe.NewWaveformViewer().Run(); err != nil {
			panic(err)
		}
	}
}
