package cycles

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PinThread locks the calling goroutine to its OS thread and restricts that
// thread to a single CPU, the lowest one it is currently allowed on, so that
// paired samples read the same core's counter. release restores the previous
// affinity and unlocks the thread.
func PinThread() (release func(), err error) {
	runtime.LockOSThread()

	var prev unix.CPUSet
	if err := unix.SchedGetaffinity(0, &prev); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cycles: read affinity: %w", err)
	}

	cpu := -1
	for i := 0; i < 8*int(unsafe.Sizeof(prev)); i++ {
		if prev.IsSet(i) {
			cpu = i
			break
		}
	}
	if cpu < 0 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cycles: empty affinity mask")
	}

	var one unix.CPUSet
	one.Zero()
	one.Set(cpu)
	if err := unix.SchedSetaffinity(0, &one); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("cycles: pin to cpu %d: %w", cpu, err)
	}

	return func() {
		_ = unix.SchedSetaffinity(0, &prev)
		runtime.UnlockOSThread()
	}, nil
}
