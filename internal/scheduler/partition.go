package scheduler

import (
	"encoding/binary"
	"sync/atomic"
)

// Partitioner decides which worker queue a keyed task is sent to.
//
// Assign must return a value in [0, workers); the strategy wraps anything
// outside that range back into it.
type Partitioner interface {
	Assign(key int64, workers int) int
}

// PartitionerFunc adapts a plain function to the Partitioner interface.
type PartitionerFunc func(key int64, workers int) int

func (f PartitionerFunc) Assign(key int64, workers int) int {
	return f(key, workers)
}

// ModuloPartitioner routes key to worker key mod workers.
// It is static and data-independent, so it balances load only when every task costs the same.
type ModuloPartitioner struct{}

func (ModuloPartitioner) Assign(key int64, workers int) int {
	return wrapIndex(key, workers)
}

// RoundRobinPartitioner ignores the key and cycles through the workers in submission order.
type RoundRobinPartitioner struct {
	next atomic.Int64
}

func (p *RoundRobinPartitioner) Assign(_ int64, workers int) int {
	return wrapIndex(p.next.Add(1)-1, workers)
}

// HashPartitioner scatters keys with FNV-1a, breaking up strided key patterns
// that would pile onto a few workers under plain modulo.
type HashPartitioner struct{}

func (HashPartitioner) Assign(key int64, workers int) int {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(key))

	hash := uint32(offset32)
	for _, b := range buf {
		hash ^= uint32(b)
		hash *= prime32
	}
	return int(hash % uint32(workers))
}

func wrapIndex(key int64, workers int) int {
	if workers <= 0 {
		return 0
	}
	w := key % int64(workers)
	if w < 0 {
		w += int64(workers)
	}
	return int(w)
}
