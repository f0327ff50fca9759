package i2c

import "testing"

func TestLineResolve(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	line := NewLine("SDA")
	assert(line.High())

	a := line.Attach()
	b := line.Attach()
	c := line.Attach()

	// nobody pulls: the pull-up wins
	assert(line.Resolve())
	assert(line.High())
	assert(!line.Low())

	// any single driver pulls the line low
	line.Post(b, true)
	assert(!line.Resolve())
	assert(line.Low())

	// wired-AND: the line stays low until every driver releases
	line.Post(a, true)
	line.Post(c, true)
	line.Post(b, false)
	assert(!line.Resolve())
	line.Post(a, false)
	assert(!line.Resolve())
	line.Post(c, false)
	assert(line.Resolve())
}

func TestLineRequestsCarryOver(t *testing.T) {
	assert := func(v bool) {
		if !v {
			t.Error("assert failed")
		}
	}

	line := NewLine("SCL")
	a := line.Attach()

	line.Post(a, true)
	assert(!line.Resolve())
	// no new post: the request holds
	assert(!line.Resolve())
	line.Post(a, false)
	assert(line.Resolve())
}
