// Package cycles reads the processor's cycle counter.
//
// The counter is read directly with no calibration: on amd64 it is the
// time-stamp counter (RDTSC), on arm64 the virtual counter (CNTVCT_EL0).
// Other architectures have no supported counter and New fails.
package cycles

import (
	"errors"
	"runtime"
)

// ErrUnsupported is returned by New when the platform has no cycle counter.
var ErrUnsupported = errors.New("cycles: no cycle counter on " + runtime.GOARCH)

// Counter samples a monotonic cycle count.
type Counter interface {
	Sample() uint64
}

// Timer is the hardware Counter. It holds no state.
type Timer struct{}

// New returns the hardware timer, or ErrUnsupported where none exists.
func New() (Timer, error) {
	if !available {
		return Timer{}, ErrUnsupported
	}
	return Timer{}, nil
}

// Sample reads the counter.
func (Timer) Sample() uint64 {
	return readCounter()
}

// Elapsed returns end - start. Both samples must come from the same core.
func Elapsed(start, end uint64) uint64 {
	return end - start
}
