//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore binds the calling OS thread to one logical CPU.
// The caller must hold runtime.LockOSThread. Out-of-range ids wrap around NumCPU.
func pinToCore(cpuID int) (int, error) {
	cpuID = wrap(cpuID)

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return 0, err
	}
	return cpuID, nil
}

// PinWorker locks the calling goroutine to its OS thread and pins that thread
// to CPU workerID mod NumCPU. The returned func releases the thread lock.
func PinWorker(workerID int) (release func(), err error) {
	runtime.LockOSThread()
	_, err = pinToCore(workerID)
	return runtime.UnlockOSThread, err
}
