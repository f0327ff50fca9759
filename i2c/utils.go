package i2c

import "fmt"

// Formatted panic()
func panicFmt(format string, a ...interface{}) {
	panic(fmt.Sprintf(format, a...))
}

func oneIfTrue(val bool) uint8 {
	if val {
		return 1
	}
	return 0
}

// Returns bit `i` of `val` as a bool
func bitAt(val uint8, i int) bool {
	return (val>>uint(i))&1 != 0
}
