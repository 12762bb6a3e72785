//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinToCore sets the affinity mask of the current thread to a single CPU.
// The caller must hold runtime.LockOSThread.
func pinToCore(cpuID int) (int, error) {
	cpuID = wrap(cpuID)

	handle, _, _ := getCurrentThread.Call()
	prev, _, err := setThreadAffinityMask.Call(handle, uintptr(1)<<uint(cpuID))
	if prev == 0 {
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
