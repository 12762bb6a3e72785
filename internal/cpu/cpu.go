// Package cpu pins pool workers to logical CPUs where the platform allows it.
package cpu

import "runtime"

// NumCPU returns the number of logical CPUs usable by the process.
func NumCPU() int {
	return runtime.NumCPU()
}

func wrap(cpuID int) int {
	n := NumCPU()
	if cpuID < 0 {
		cpuID = -cpuID
	}
	return cpuID % n
}
