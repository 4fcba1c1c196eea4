//go:build !linux

package cycles

import "runtime"

// PinThread locks the calling goroutine to its OS thread. CPU affinity is
// only set on Linux.
func PinThread() (release func(), err error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, nil
}
