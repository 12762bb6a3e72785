package scheduler

import (
	"context"

	"github.com/utkarsh5026/matpool/internal/types"
)

// SchedulingStrategy defines how submitted tasks reach workers.
type SchedulingStrategy[T any, R any] interface {
	// Submit hands a task to the strategy. It blocks while the target queue is full,
	// and fails once the strategy is shut down, ctx is done or the submit timeout expires.
	Submit(ctx context.Context, task *types.SubmittedTask[T, R]) error

	// Shutdown stops accepting tasks and closes the worker queues.
	// Workers drain what is already queued, then exit. Safe to call more than once.
	Shutdown()

	// Worker runs the event loop of one worker until its queue is closed or ctx is done.
	Worker(ctx context.Context, workerID int64, executor types.ProcessFunc[T, R], resHandler types.ResultHandler[T, R]) error

	// Abandon completes every task still queued with err. Only meaningful after all workers exited.
	Abandon(err error) int
}

// CreateSchedulingStrategy builds the strategy selected by conf.
func CreateSchedulingStrategy[T, R any](conf *ProcessorConfig[T, R]) SchedulingStrategy[T, R] {
	switch conf.SchedulingStrategy {
	case SchedulingShared:
		return newSharedStrategy(conf)
	default:
		return newPartitionedStrategy(conf)
	}
}
