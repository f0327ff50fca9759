package i2c

// An open-drain bus line shared by any number of drivers. Every driver
// may only request to pull the line low or to release it; the resolved
// level is low if at least one driver pulls, high otherwise (the pull-up)
type Line struct {
	Name  string
	Pulls []bool // pending drive-low requests, one slot per driver
	Level bool   // resolved level, true = high
}

// Returns a new bus line resting at the idle (high) level
func NewLine(name string) *Line {
	return &Line{
		Name:  name,
		Level: true,
	}
}

// Registers a new driver on the line and returns its id
func (line *Line) Attach() int {
	line.Pulls = append(line.Pulls, false)
	return len(line.Pulls) - 1
}

// Posts the drive request of one driver for the current tick. Requests
// carry over between ticks until the driver posts a different one
func (line *Line) Post(id int, low bool) {
	line.Pulls[id] = low
}

// Resolves the line level from all posted requests. Must be called once
// per tick, after every driver has posted
func (line *Line) Resolve() bool {
	level := true
	for _, low := range line.Pulls {
		if low {
			level = false
			break
		}
	}
	line.Level = level
	return level
}

// Returns true if the resolved level is high
func (line *Line) High() bool {
	return line.Level
}

// Returns true if the resolved level is low
func (line *Line) Low() bool {
	return !line.Level
}
