//go:build darwin

package cpu

import "runtime"

// PinWorker locks the calling goroutine to its OS thread.
// macOS has no thread affinity API, so no core is selected.
func PinWorker(workerID int) (release func(), err error) {
	runtime.LockOSThread()
	return runtime.UnlockOSThread, nil
}
