package scheduler

import (
	"log/slog"
	"time"

	"github.com/utkarsh5026/matpool/internal/algorithms"
	"golang.org/x/time/rate"
)

type SchedulingStrategyType int

const (
	// SchedulingPartitioned gives every worker its own FIFO queue and routes
	// each task through the configured Partitioner.
	SchedulingPartitioned SchedulingStrategyType = iota
	// SchedulingShared feeds all workers from one queue; whichever worker is
	// idle takes the next task.
	SchedulingShared
)

// String returns the strategy name used in logs and benchmark tables.
func (s SchedulingStrategyType) String() string {
	switch s {
	case SchedulingPartitioned:
		return "partitioned"
	case SchedulingShared:
		return "shared"
	default:
		return "unknown"
	}
}

// ProcessorConfig holds all configuration for a pool of workers and task scheduling.
type ProcessorConfig[T, R any] struct {
	// Number of worker goroutines in the pool.
	WorkerCount int

	// Capacity of each worker queue.
	TaskBuffer int

	// Maximum number of processing attempts per task (for retry logic).
	MaxAttempts int

	// Optional token bucket rate limiter applied per task (may be nil).
	RateLimiter *rate.Limiter

	// If true, a failing task is reported through its future and the worker keeps serving its queue.
	ContinueOnErr bool

	// The scheduling strategy used for distributing tasks.
	SchedulingStrategy SchedulingStrategyType

	// Routes task keys to worker queues (SchedulingPartitioned only). Nil means key mod WorkerCount.
	Partitioner Partitioner

	// Hook called before a task starts (can be used for logging/tracing).
	BeforeTaskStart func(T)

	// Hook called after a task ends (receives the input, result, and error if any).
	OnTaskEnd func(T, R, error)

	// Hook called on retry with the task, current attempt, and last error.
	OnRetry func(T, int, error)

	// Backoff calculation strategy used between retries.
	BackoffStrategy algorithms.BackoffStrategy

	// If true, each worker locks its OS thread and pins it to a CPU.
	PinWorkers bool

	// Receives task failures and lifecycle events. Never nil after defaults are applied.
	Logger *slog.Logger

	// Upper bound on how long Submit may retry a full queue before giving up (0 = block).
	SubmitTimeout time.Duration
}

// ApplyDefaults fills zero fields with working values.
func (c *ProcessorConfig[T, R]) ApplyDefaults() {
	if c.WorkerCount <= 0 {
		c.WorkerCount = 1
	}
	if c.TaskBuffer <= 0 {
		c.TaskBuffer = c.WorkerCount
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Partitioner == nil {
		c.Partitioner = ModuloPartitioner{}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
}
