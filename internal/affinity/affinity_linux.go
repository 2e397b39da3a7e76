//go:build linux

// File: internal/affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package affinity

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCurrentThread locks the calling goroutine to its OS thread and binds
// that thread to cpu via sched_setaffinity. cpu < 0 unlocks the goroutine
// from its OS thread; the thread's CPU affinity mask is left unchanged.
func PinCurrentThread(cpu int) error {
	if cpu < 0 {
		runtime.UnlockOSThread()
		return nil
	}
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
