package pool

import (
	"github.com/utkarsh5026/matpool/internal/algorithms"
	"github.com/utkarsh5026/matpool/internal/scheduler"
	"github.com/utkarsh5026/matpool/internal/types"
)

// ProcessFunc processes a single task. The context is cancelled when the pool stops
// and carries the id of the executing worker (see WorkerID).
type ProcessFunc[T any, R any] = types.ProcessFunc[T, R]

// Future is the single-use reply slot of one submitted task, keyed by the task key.
type Future[R any] = types.Future[R, int64]

// Partitioner routes a task key to a worker index in [0, workers).
type Partitioner = scheduler.Partitioner

// PartitionerFunc adapts a function to Partitioner.
type PartitionerFunc = scheduler.PartitionerFunc

// ModuloPartitioner sends key to worker key mod workers.
type ModuloPartitioner = scheduler.ModuloPartitioner

// RoundRobinPartitioner ignores keys and cycles through workers in submission order.
type RoundRobinPartitioner = scheduler.RoundRobinPartitioner

// HashPartitioner scatters keys over workers with FNV-1a.
type HashPartitioner = scheduler.HashPartitioner

// SchedulingStrategyType selects how tasks reach workers.
type SchedulingStrategyType = scheduler.SchedulingStrategyType

const (
	SchedulingPartitioned = scheduler.SchedulingPartitioned
	SchedulingShared      = scheduler.SchedulingShared
)

// BackoffType selects the delay curve between retries.
type BackoffType = algorithms.BackoffType

const (
	BackoffExponential  = algorithms.BackoffExponential
	BackoffJittered     = algorithms.BackoffJittered
	BackoffDecorrelated = algorithms.BackoffDecorrelated
	BackoffConstant     = algorithms.BackoffConstant
)
