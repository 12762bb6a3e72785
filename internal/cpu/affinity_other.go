//go:build !linux && !darwin && !windows

package cpu

import "runtime"

// PinWorker locks the calling goroutine to its OS thread; no core is selected.
func PinWorker(workerID int) (release func(), err error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, nil
}
